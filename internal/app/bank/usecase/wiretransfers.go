package usecase

import (
	"context"
)

// WireTransfers 是資金調撥的介面
// 契約刻意不回傳 error：未知帳戶一律視為餘額 0，
// 轉帳失敗 (餘額不足) 以 false 表達
type WireTransfers interface {
	// GetFunds 取得帳戶餘額，未設定過的帳戶回傳 0
	GetFunds(ctx context.Context, account string) int64
	// SetFunds 無條件覆寫帳戶餘額 (首次呼叫時隱式建立帳戶)
	SetFunds(ctx context.Context, account string, amount int64)
	// TransferFunds 原子性轉帳：from 餘額 >= amount 才會執行並回傳 true
	TransferFunds(ctx context.Context, amount int64, from, to string) bool
}
