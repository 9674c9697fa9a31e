package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

type opType uint8

const (
	opGetFunds opType = iota + 1
	opSetFunds
	opTransferFunds
	opHistory
)

// bankRequest 操作請求包裝channel，讓呼叫端可以等待結果
type bankRequest struct {
	Op      opType
	Account string
	From    string
	To      string
	Amount  int64
	Result  chan bankResult // 呼叫端等這個 channel
}

// bankResult 單一結果型別，依 Op 取用對應欄位
type bankResult struct {
	Balance   int64
	OK        bool
	Transfers []domain.Transfer
}

// SerialBank 是單一寫入者迴圈實現的銀行 (Level 2)
// 所有操作 (含讀取) 都送進同一條輸送帶，由單一 goroutine 依序處理，
// 因此不需要任何鎖；讀取也走迴圈以避免與寫入產生資料競爭
type SerialBank struct {
	accounts map[string]*domain.Account
	journal  []domain.Transfer
	// 輸送帶 負責接收操作請求
	requestChan chan *bankRequest
	// Pool 減少 GC 壓力
	requestPool sync.Pool
}

// NewSerialBank 建立一個新的 SerialBank 實例
// 使用前必須先呼叫 Start 啟動處理迴圈
//
// 參數:
//
//	accounts: 初始帳戶資料 Map (可為 nil，代表空銀行)
//
// 回傳:
//
//	*SerialBank: SerialBank 實例
func NewSerialBank(accounts map[string]*domain.Account) *SerialBank {
	if accounts == nil {
		accounts = make(map[string]*domain.Account)
	}
	return &SerialBank{
		accounts:    accounts, // 直接引用傳入的 Map
		journal:     make([]domain.Transfer, 0),
		requestChan: make(chan *bankRequest, 1000), // Buffer 1000
		requestPool: sync.Pool{
			New: func() interface{} {
				return &bankRequest{
					Result: make(chan bankResult, 1),
				}
			},
		},
	}
}

// Start 啟動核心迴圈 (非同步)
func (s *SerialBank) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *SerialBank) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的請求處理完
			s.drain()
			return
		case req := <-s.requestChan:
			s.process(req)
		}
	}
}

func (s *SerialBank) drain() {
	for {
		select {
		case req := <-s.requestChan:
			s.process(req)
		default:
			return
		}
	}
}

// GetFunds 取得指定帳戶的當前餘額，未設定過的帳戶回傳 0
func (s *SerialBank) GetFunds(ctx context.Context, account string) int64 {
	req := s.acquire()
	req.Op = opGetFunds
	req.Account = account
	return s.submit(req).Balance
}

// SetFunds 無條件覆寫帳戶餘額，負數金額直接忽略
func (s *SerialBank) SetFunds(ctx context.Context, account string, amount int64) {
	if amount < 0 {
		return
	}
	req := s.acquire()
	req.Op = opSetFunds
	req.Account = account
	req.Amount = amount
	s.submit(req)
}

// TransferFunds 處理轉帳請求
//
// TransferFunds(等待) -> Channel -> Run Loop (核心) -> Map Update -> Result Channel -> TransferFunds(收到結果)
func (s *SerialBank) TransferFunds(ctx context.Context, amount int64, from, to string) bool {
	if amount < 0 {
		return false
	}
	req := s.acquire()
	req.Op = opTransferFunds
	req.From = from
	req.To = to
	req.Amount = amount
	return s.submit(req).OK
}

// History 回傳指定帳戶參與過的轉帳紀錄 (值拷貝)
func (s *SerialBank) History(ctx context.Context, account string) []domain.Transfer {
	req := s.acquire()
	req.Op = opHistory
	req.Account = account
	return s.submit(req).Transfers
}

// acquire 從 Pool 取出請求物件 (使用 sync.Pool 減少 GC)
func (s *SerialBank) acquire() *bankRequest {
	req := s.requestPool.Get().(*bankRequest)
	// 清空 Channel (雖然理論上應該是空的，但保險起見)
	select {
	case <-req.Result:
	default:
	}
	return req
}

// submit 放入輸送帶並等待結果
func (s *SerialBank) submit(req *bankRequest) bankResult {
	s.requestChan <- req
	res := <-req.Result
	s.requestPool.Put(req)
	return res
}

// process 處理單筆請求並回傳結果
// 只在 run loop 內執行 (單執行緒)，存取 accounts/journal 無需鎖
func (s *SerialBank) process(req *bankRequest) {
	var res bankResult
	switch req.Op {
	case opGetFunds:
		if acc, ok := s.accounts[req.Account]; ok {
			res.Balance = acc.Balance
		}
	case opSetFunds:
		s.getOrCreate(req.Account).Balance = req.Amount
		res.OK = true
	case opTransferFunds:
		res.OK = s.handleTransfer(req.From, req.To, req.Amount)
	case opHistory:
		res.Transfers = s.historyOf(req.Account)
	}
	req.Result <- res
}

func (s *SerialBank) handleTransfer(from, to string, amount int64) bool {
	src := s.getOrCreate(from)
	if err := src.Withdraw(amount); err != nil {
		return false
	}
	if err := s.getOrCreate(to).Deposit(amount); err != nil {
		src.Deposit(amount)
		return false
	}
	s.journal = append(s.journal, domain.NewTransfer(from, to, amount))
	return true
}

func (s *SerialBank) historyOf(account string) []domain.Transfer {
	out := make([]domain.Transfer, 0)
	for _, tr := range s.journal {
		if tr.From == account || tr.To == account {
			out = append(out, tr)
		}
	}
	return out
}

func (s *SerialBank) getOrCreate(account string) *domain.Account {
	acc, ok := s.accounts[account]
	if !ok {
		acc = domain.NewAccount(account, 0)
		s.accounts[account] = acc
	}
	return acc
}

var _ usecase.WireTransfers = (*SerialBank)(nil)
