package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// MutexBank 是一個使用 Mutex 實現的銀行 (Level 1)
//
// 結構:
//
//	accounts: 帳戶資料 Map (帳戶 ID -> Account)
//	mu: RWMutex 用於保護帳戶資料與轉帳日誌
//	journal: 成功轉帳的流水紀錄
type MutexBank struct {
	accounts map[string]*domain.Account
	mu       sync.RWMutex
	// 成功的轉帳紀錄，僅存在記憶體
	journal []domain.Transfer
}

// NewMutexBank 建立一個新的 MutexBank 實例
//
// 參數:
//
//	accounts: 初始帳戶資料 Map (可為 nil，代表空銀行)
//
// 回傳:
//
//	*MutexBank: MutexBank 實例
func NewMutexBank(accounts map[string]*domain.Account) *MutexBank {
	if accounts == nil {
		accounts = make(map[string]*domain.Account)
	}
	return &MutexBank{
		accounts: accounts,
		mu:       sync.RWMutex{},
		journal:  make([]domain.Transfer, 0),
	}
}

// GetFunds 取得指定帳戶的當前餘額
//
// 參數:
//
//	ctx: 上下文
//	account: 帳戶 ID
//
// 回傳:
//
//	int64: 帳戶餘額，未設定過的帳戶回傳 0
func (m *MutexBank) GetFunds(ctx context.Context, account string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accounts[account]
	if !ok {
		return 0
	}
	return acc.Balance
}

// SetFunds 無條件覆寫帳戶餘額，首次設定時隱式建立帳戶
// 負數金額直接忽略：契約沒有錯誤通道，且餘額不得為負
func (m *MutexBank) SetFunds(ctx context.Context, account string, amount int64) {
	if amount < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getOrCreateLocked(account).Balance = amount
}

// TransferFunds 處理轉帳請求 (Level 1: Mutex Lock)
// 檢查餘額與扣款/入帳在同一臨界區內完成，
// 避免兩筆併發轉帳同時通過餘額檢查的 lost-update
//
// 參數:
//
//	ctx: 上下文
//	amount: 金額
//	from, to: 來源與目標帳戶 ID
//
// 回傳:
//
//	bool: from 餘額 >= amount 時執行並回傳 true，否則 false 且餘額不變
func (m *MutexBank) TransferFunds(ctx context.Context, amount int64, from, to string) bool {
	if amount < 0 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.getOrCreateLocked(from)
	if err := src.Withdraw(amount); err != nil {
		return false
	}
	if err := m.getOrCreateLocked(to).Deposit(amount); err != nil {
		src.Deposit(amount)
		return false
	}

	m.journal = append(m.journal, domain.NewTransfer(from, to, amount))
	return true
}

// History 回傳指定帳戶參與過的轉帳紀錄 (值拷貝)
func (m *MutexBank) History(ctx context.Context, account string) []domain.Transfer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Transfer, 0)
	for _, tr := range m.journal {
		if tr.From == account || tr.To == account {
			out = append(out, tr)
		}
	}
	return out
}

// getOrCreateLocked 取得帳戶，不存在時以餘額 0 建立
// 呼叫端必須持有寫鎖
func (m *MutexBank) getOrCreateLocked(account string) *domain.Account {
	acc, ok := m.accounts[account]
	if !ok {
		acc = domain.NewAccount(account, 0)
		m.accounts[account] = acc
	}
	return acc
}

var _ usecase.WireTransfers = (*MutexBank)(nil)
