package domain

// Account 帳戶實體
// 餘額使用 int64 (最小貨幣單位)，避免浮點誤差
type Account struct {
	ID      string
	Balance int64
}

func NewAccount(id string, balance int64) *Account {
	return &Account{
		ID:      id,
		Balance: balance,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount int64) error {
	if amount < 0 {
		return ErrAmountMustBePositive
	}

	a.Balance = a.Balance + amount
	return nil
}

// Withdraw 提款
// 餘額恰好等於 amount 時允許提領 (提領後歸零)
func (a *Account) Withdraw(amount int64) error {
	if amount < 0 {
		return ErrAmountMustBePositive
	}

	if a.Balance < amount {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance - amount
	return nil
}
