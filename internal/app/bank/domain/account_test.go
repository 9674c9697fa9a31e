package domain

import (
	"errors"
	"testing"
)

// TestAccountDepositWithdraw 驗證存提款的基本行為
func TestAccountDepositWithdraw(t *testing.T) {
	acc := NewAccount("foo", 100)

	if err := acc.Deposit(50); err != nil {
		t.Fatalf("Deposit(50) err=%v", err)
	}
	if acc.Balance != 150 {
		t.Fatalf("balance=%d want=150", acc.Balance)
	}

	if err := acc.Withdraw(70); err != nil {
		t.Fatalf("Withdraw(70) err=%v", err)
	}
	if acc.Balance != 80 {
		t.Fatalf("balance=%d want=80", acc.Balance)
	}
}

// TestAccountWithdrawAll 餘額恰好等於提領金額時必須成功，提領後歸零
func TestAccountWithdrawAll(t *testing.T) {
	acc := NewAccount("foo", 100)
	if err := acc.Withdraw(100); err != nil {
		t.Fatalf("Withdraw(100) err=%v", err)
	}
	if acc.Balance != 0 {
		t.Fatalf("balance=%d want=0", acc.Balance)
	}
}

// TestAccountInsufficientFunds 超額提領必須失敗且餘額不變
func TestAccountInsufficientFunds(t *testing.T) {
	acc := NewAccount("foo", 30)
	if err := acc.Withdraw(31); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if acc.Balance != 30 {
		t.Fatalf("balance=%d want=30", acc.Balance)
	}
}

// TestAccountNegativeAmount 負數金額一律拒絕
func TestAccountNegativeAmount(t *testing.T) {
	acc := NewAccount("foo", 10)
	if err := acc.Deposit(-1); !errors.Is(err, ErrAmountMustBePositive) {
		t.Fatalf("Deposit(-1): want ErrAmountMustBePositive, got %v", err)
	}
	if err := acc.Withdraw(-1); !errors.Is(err, ErrAmountMustBePositive) {
		t.Fatalf("Withdraw(-1): want ErrAmountMustBePositive, got %v", err)
	}
	if acc.Balance != 10 {
		t.Fatalf("balance=%d want=10", acc.Balance)
	}
}
