package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transfer 一筆成功的轉帳紀錄
// 注意欄位排序以避免 Padding
type Transfer struct {
	// From, To: 帳戶 ID (不透明字串)
	From string
	To   string
	// Amount: 金額
	Amount int64
	// CreatedAt: 轉帳時間 (Unix milli)
	CreatedAt int64
	// TransferID: 追蹤號 (UUID)，由銀行內部產生
	TransferID uuid.UUID
}

// NewTransfer 建立一筆轉帳紀錄並配發 UUID
func NewTransfer(from, to string, amount int64) Transfer {
	return Transfer{
		From:       from,
		To:         to,
		Amount:     amount,
		CreatedAt:  time.Now().UnixMilli(),
		TransferID: uuid.New(),
	}
}

// LockIDs 回傳需要鎖定的帳號 ID，並確保順序以避免死鎖
func (t *Transfer) LockIDs() (ids []string) {
	// 預先宣告一個容量為 2 的 slice，避免多次分配
	ids = make([]string, 0, 2)
	if t.From == t.To {
		ids = append(ids, t.From)
		return ids
	}
	if t.From < t.To {
		ids = append(ids, t.From, t.To)
	} else {
		ids = append(ids, t.To, t.From)
	}
	return ids
}
