package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	memory_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/mysql"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/mysql"
)

// BankLevel 選擇使用哪種 WireTransfers 實作
type BankLevel int32

const (
	BankLevel_Level0_MySQL BankLevel = iota
	BankLevel_Level1_Memory_Mutex
	BankLevel_Level2_Memory_Serial
)

type BankConfig struct {
	// Level: 0 = MySQL, 1 = Memory (Mutex), 2 = Memory (Serial)
	Level BankLevel `yaml:"level"`
	// WarmStart: 記憶體銀行啟動時是否從 MySQL 載入帳戶
	WarmStart bool `yaml:"warm_start"`
}

type Config struct {
	Bank  BankConfig   `yaml:"bank"`
	MySQL mysql.Config `yaml:"mysql"`
}

func main() {
	// 1. 載入設定
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. 需要 MySQL 的情境：Level 0 本身，或記憶體銀行要暖機
	var dbBank *mysql_adapter.MySQLBank
	if cfg.Bank.Level == BankLevel_Level0_MySQL || cfg.Bank.WarmStart {
		dbClient, err := mysql.NewClient(cfg.MySQL)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer dbClient.Close()
		log.Println("Connected to MySQL successfully")

		dbBank = mysql_adapter.NewMySQLBank(dbClient)
		if err := dbBank.Migrate(); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
	}

	// 3. 暖機：把 MySQL 的帳戶載入記憶體
	var accounts map[string]*domain.Account
	if dbBank != nil && cfg.Bank.Level != BankLevel_Level0_MySQL {
		var err error
		accounts, err = dbBank.LoadAllAccounts(ctx)
		if err != nil {
			log.Fatalf("Failed to load all accounts: %v", err)
		}
		log.Printf("Loaded %d accounts", len(accounts))
	}

	// 4. 選擇實作並注入 UseCase
	var usedBank usecase.WireTransfers
	switch cfg.Bank.Level {
	case BankLevel_Level0_MySQL:
		usedBank = dbBank
	case BankLevel_Level1_Memory_Mutex:
		usedBank = memory_adapter.NewMutexBank(accounts)
	case BankLevel_Level2_Memory_Serial:
		serialBank := memory_adapter.NewSerialBank(accounts)
		serialBank.Start(ctx)
		usedBank = serialBank
	default:
		log.Fatalf("Invalid bank level: %d", cfg.Bank.Level)
	}

	core := usecase.NewBankUseCase(usedBank)
	runDemo(ctx, core)
}

// runDemo 跑一段示範的資金調撥流程
func runDemo(ctx context.Context, core *usecase.BankUseCase) {
	log.Printf("foo balance: %d", core.GetFunds(ctx, "foo"))

	core.SetFunds(ctx, "foo", 100)
	core.SetFunds(ctx, "bar", 150)
	log.Printf("foo balance: %d, bar balance: %d",
		core.GetFunds(ctx, "foo"), core.GetFunds(ctx, "bar"))

	ok := core.TransferFunds(ctx, 50, "bar", "foo")
	log.Printf("transfer 50 bar -> foo: %v", ok)
	log.Printf("foo balance: %d, bar balance: %d",
		core.GetFunds(ctx, "foo"), core.GetFunds(ctx, "bar"))

	// 餘額不足的轉帳不會動到任何帳戶
	ok = core.TransferFunds(ctx, 1000, "bar", "foo")
	log.Printf("transfer 1000 bar -> foo: %v", ok)
}

func loadConfig() Config {
	// .env 可覆寫敏感設定 (檔案不存在就略過)
	_ = godotenv.Load()

	cfgData, err := os.ReadFile("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	if pw := os.Getenv("MYSQL_PASSWORD"); pw != "" {
		cfg.MySQL.Password = pw
	}

	// 補全 MySQL 預設配置 (如果 yaml 沒寫)
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 100
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 10
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 30 * time.Minute
	}
	return cfg
}
