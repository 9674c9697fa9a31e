package domain

import "errors"

var (
	// ErrAmountMustBePositive 金額必須為正數
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelectTransferFailed 查詢轉帳紀錄失敗
	ErrSelectTransferFailed = errors.New("select transfer failed")
)
