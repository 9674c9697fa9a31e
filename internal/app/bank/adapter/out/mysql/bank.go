package mysql

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/mysql"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	ID        string `gorm:"primaryKey;size:64"`
	Balance   int64
	UpdatedAt int64 `gorm:"autoUpdateTime:milli"` // 自動更新時間
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// sqlTransfer 對應資料庫的 transfers 表
type sqlTransfer struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	RefID       []byte `gorm:"column:ref_id;type:binary(16);uniqueIndex"` // 對應 domain.TransferID
	FromAccount string `gorm:"size:64;index"`
	ToAccount   string `gorm:"size:64;index"`
	Amount      int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli"` // 自動寫入時間
}

func (*sqlTransfer) TableName() string {
	return "transfers"
}

// MySQLBank 是 MySQL 實現的銀行 (Level 0)
// WireTransfers 契約沒有錯誤通道，基礎設施錯誤一律記 log
// 並回傳零值 (GetFunds) 或 false (TransferFunds)
type MySQLBank struct {
	client *mysql.Client
}

func NewMySQLBank(client *mysql.Client) *MySQLBank {
	return &MySQLBank{
		client: client,
	}
}

// Migrate 建立 accounts 與 transfers 表
func (b *MySQLBank) Migrate() error {
	return b.client.DB().AutoMigrate(&sqlAccount{}, &sqlTransfer{})
}

// GetFunds 取得帳戶餘額，帳戶不存在或查詢失敗時回傳 0
func (b *MySQLBank) GetFunds(ctx context.Context, account string) int64 {
	var acc sqlAccount
	err := b.client.DB().WithContext(ctx).Where("id = ?", account).First(&acc).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("mysql bank: get funds %q: %v", account, err)
		}
		return 0
	}
	return acc.Balance
}

// SetFunds 無條件覆寫帳戶餘額 (Upsert)，負數金額直接忽略
func (b *MySQLBank) SetFunds(ctx context.Context, account string, amount int64) {
	if amount < 0 {
		return
	}
	acc := sqlAccount{ID: account, Balance: amount}
	err := b.client.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance"}),
	}).Create(&acc).Error
	if err != nil {
		log.Printf("mysql bank: set funds %q: %v", account, err)
	}
}

// TransferFunds 處理轉帳請求 (Level 0: 悲觀鎖)
// 以 FOR UPDATE 鎖定雙方帳戶列，鎖定順序依帳戶 ID 排序以避免死鎖，
// 餘額檢查與更新在同一個資料庫交易內完成
func (b *MySQLBank) TransferFunds(ctx context.Context, amount int64, from, to string) bool {
	if amount < 0 {
		return false
	}
	tr := domain.NewTransfer(from, to, amount)

	err := b.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 取得鎖定帳號 以及lockID 悲觀鎖
		lockIDs := tr.LockIDs()
		var accs []sqlAccount
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", lockIDs).
			Find(&accs).Error; err != nil {
			return err
		}
		accMap := make(map[string]*sqlAccount, len(accs))
		for i := range accs {
			accMap[accs[i].ID] = &accs[i]
		}

		// 未設定過的帳戶視為餘額 0
		var fromBalance int64
		if acc, ok := accMap[from]; ok {
			fromBalance = acc.Balance
		}
		if fromBalance < amount {
			return domain.ErrInsufficientFunds
		}

		// 建立缺少的帳戶列，讓後續更新走同一條路徑
		for _, id := range lockIDs {
			if _, ok := accMap[id]; !ok {
				acc := &sqlAccount{ID: id}
				if err := tx.Create(acc).Error; err != nil {
					return err
				}
				accMap[id] = acc
			}
		}

		accMap[from].Balance -= amount
		accMap[to].Balance += amount
		for _, id := range lockIDs {
			if err := tx.Save(accMap[id]).Error; err != nil {
				return err
			}
		}

		// 建立轉帳紀錄
		rec := sqlTransfer{
			RefID:       tr.TransferID[:],
			FromAccount: from,
			ToAccount:   to,
			Amount:      amount,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			log.Printf("mysql bank: transfer %d from %q to %q: %v", amount, from, to, err)
		}
		return false
	}
	return true
}

// History 回傳指定帳戶參與過的轉帳紀錄
func (b *MySQLBank) History(ctx context.Context, account string) ([]domain.Transfer, error) {
	var recs []sqlTransfer
	err := b.client.DB().WithContext(ctx).
		Where("from_account = ? OR to_account = ?", account, account).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, domain.ErrSelectTransferFailed
	}

	out := make([]domain.Transfer, 0, len(recs))
	for _, rec := range recs {
		refID, err := uuid.FromBytes(rec.RefID)
		if err != nil {
			return nil, domain.ErrSelectTransferFailed
		}
		out = append(out, domain.Transfer{
			From:       rec.FromAccount,
			To:         rec.ToAccount,
			Amount:     rec.Amount,
			CreatedAt:  rec.CreatedAt,
			TransferID: refID,
		})
	}
	return out, nil
}

// LoadAllAccounts 載入系統所有帳戶資料，供記憶體銀行在啟動時暖機
func (b *MySQLBank) LoadAllAccounts(ctx context.Context) (map[string]*domain.Account, error) {
	var accs []sqlAccount
	if err := b.client.DB().WithContext(ctx).Find(&accs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Account, len(accs))
	for _, acc := range accs {
		out[acc.ID] = domain.NewAccount(acc.ID, acc.Balance)
	}
	return out, nil
}

var _ usecase.WireTransfers = (*MySQLBank)(nil)
