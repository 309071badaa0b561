package database

import (
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

const (
	connectAttempts = 5
	retryDelay      = 5 * time.Second
)

var DB *gorm.DB

// Config builds the driver settings from DB_* variables
func Config() *mysqldriver.Config {
	cfg := mysqldriver.NewConfig()
	cfg.User = env.GetEnv("DB_USER", "gritgym")
	cfg.Passwd = env.GetEnv("DB_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(env.GetEnv("DB_HOST", "127.0.0.1"), env.GetEnv("DB_PORT", "3306"))
	cfg.DBName = env.GetEnv("DB_NAME", "gritgym_db")
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// DSN is the connection string for Config
func DSN() string {
	return Config().FormatDSN()
}

// SetupDatabase connects with retries, since MySQL often starts after the app in compose.
// It panics when every attempt failed.
func SetupDatabase() {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if env.IsDev() {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                      DSN(),
			DefaultStringSize:        256,
			DisableDatetimePrecision: true,
			DontSupportRenameIndex:   true,
			DontSupportRenameColumn:  true,
		}), gormCfg)
		if err == nil {
			break
		}
		log.Warnf("[Database] Connect attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		panic(err)
	}

	if env.GetEnvBool("DB_AUTO_MIGRATE", env.IsDev()) {
		if err := AutoMigrate(DB); err != nil {
			log.Errorf("[Database] AutoMigrate failed: %v", err)
		}
	}
}

// AutoMigrate creates or extends the tables for dev setups without golang-migrate
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProviderAccount{},
		&models.PaymentApplication{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
