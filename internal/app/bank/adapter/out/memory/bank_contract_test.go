package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// 兩種記憶體實作必須滿足同一份 WireTransfers 契約，
// 以下共用劇本讓 MutexBank 與 SerialBank 跑完全相同的驗證

// assertFunds 小工具：驗證帳戶餘額
func assertFunds(t *testing.T, bank usecase.WireTransfers, account string, want int64) {
	t.Helper()
	if got := bank.GetFunds(context.Background(), account); got != want {
		t.Fatalf("GetFunds(%s)=%d want=%d", account, got, want)
	}
}

// runReferenceScenario 參考劇本：foo/bar 的設定與轉帳流程
func runReferenceScenario(t *testing.T, bank usecase.WireTransfers) {
	t.Helper()
	ctx := context.Background()

	// 從未設定過的帳戶餘額為 0
	assertFunds(t, bank, "foo", 0)

	bank.SetFunds(ctx, "foo", 100)
	assertFunds(t, bank, "foo", 100)
	bank.SetFunds(ctx, "bar", 150)
	assertFunds(t, bank, "bar", 150)

	if !bank.TransferFunds(ctx, 50, "bar", "foo") {
		t.Fatal("TransferFunds(50, bar, foo) should succeed")
	}
	assertFunds(t, bank, "foo", 150)
	assertFunds(t, bank, "bar", 100)

	// 沒有寫入時重複讀取結果不變
	assertFunds(t, bank, "foo", 150)
	assertFunds(t, bank, "foo", 150)
}

// runBoundaryScenario 邊界劇本：等額轉帳、超額轉帳、未設定帳戶、非法金額
func runBoundaryScenario(t *testing.T, bank usecase.WireTransfers) {
	t.Helper()
	ctx := context.Background()

	// 餘額恰好等於轉帳金額必須成功，轉出後歸零
	bank.SetFunds(ctx, "alice", 80)
	if !bank.TransferFunds(ctx, 80, "alice", "bob") {
		t.Fatal("equal-amount transfer should succeed")
	}
	assertFunds(t, bank, "alice", 0)
	assertFunds(t, bank, "bob", 80)

	// 超額轉帳失敗且雙方餘額不變
	if bank.TransferFunds(ctx, 81, "bob", "alice") {
		t.Fatal("over-balance transfer should fail")
	}
	assertFunds(t, bank, "bob", 80)
	assertFunds(t, bank, "alice", 0)

	// 從未設定的帳戶轉出 (餘額視為 0) 必須失敗
	if bank.TransferFunds(ctx, 1, "ghost", "bob") {
		t.Fatal("transfer from unset account should fail")
	}
	assertFunds(t, bank, "ghost", 0)
	assertFunds(t, bank, "bob", 80)

	// 金額為 0 時 0 >= 0 成立，即使帳戶從未設定也成功
	if !bank.TransferFunds(ctx, 0, "ghost", "bob") {
		t.Fatal("zero-amount transfer should succeed")
	}
	assertFunds(t, bank, "ghost", 0)
	assertFunds(t, bank, "bob", 80)

	// 負數金額的轉帳一律拒絕
	if bank.TransferFunds(ctx, -5, "bob", "alice") {
		t.Fatal("negative-amount transfer should fail")
	}
	assertFunds(t, bank, "bob", 80)
	assertFunds(t, bank, "alice", 0)

	// 負數金額的 SetFunds 直接忽略
	bank.SetFunds(ctx, "bob", -1)
	assertFunds(t, bank, "bob", 80)

	// 自我轉帳在餘額足夠時成功且淨值不變
	if !bank.TransferFunds(ctx, 10, "bob", "bob") {
		t.Fatal("self transfer should succeed")
	}
	assertFunds(t, bank, "bob", 80)
}

// runConcurrentScenario 併發劇本：
// 多個 goroutine 同時從同一帳戶轉出，
// 驗證餘額檢查與扣款是原子的 (不會有兩筆轉帳同時通過檢查)
func runConcurrentScenario(t *testing.T, bank usecase.WireTransfers) {
	t.Helper()
	ctx := context.Background()

	const initial = 100
	const workers = 20
	const attempts = 10 // 共 200 次嘗試，遠超過餘額

	bank.SetFunds(ctx, "hot", initial)

	var success int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sink := fmt.Sprintf("sink-%d", n)
			for j := 0; j < attempts; j++ {
				if bank.TransferFunds(ctx, 1, "hot", sink) {
					atomic.AddInt64(&success, 1)
				}
			}
		}(i)
	}
	wg.Wait()

	// 成功次數必須恰好等於初始餘額，帳戶不得透支
	if success != initial {
		t.Fatalf("success=%d want=%d", success, initial)
	}
	assertFunds(t, bank, "hot", 0)

	// 總額守恆
	total := bank.GetFunds(ctx, "hot")
	for i := 0; i < workers; i++ {
		total += bank.GetFunds(ctx, fmt.Sprintf("sink-%d", i))
	}
	if total != initial {
		t.Fatalf("total=%d want=%d", total, initial)
	}
}
