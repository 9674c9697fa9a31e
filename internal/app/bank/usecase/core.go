package usecase

import (
	"context"
)

// BankUseCase 是核心業務邏輯層
// 只依賴 WireTransfers 抽象，具體實作於組裝時注入
type BankUseCase struct {
	bank WireTransfers
}

func NewBankUseCase(bank WireTransfers) *BankUseCase {
	return &BankUseCase{
		bank: bank,
	}
}

// GetFunds 取得帳戶餘額
func (b *BankUseCase) GetFunds(ctx context.Context, account string) int64 {
	return b.bank.GetFunds(ctx, account)
}

// SetFunds 設定帳戶餘額
func (b *BankUseCase) SetFunds(ctx context.Context, account string, amount int64) {
	b.bank.SetFunds(ctx, account, amount)
}

// TransferFunds 執行轉帳
func (b *BankUseCase) TransferFunds(ctx context.Context, amount int64, from, to string) bool {
	return b.bank.TransferFunds(ctx, amount, from, to)
}
