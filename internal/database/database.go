package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"edge-gdt-validator/internal/config"
	"edge-gdt-validator/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Поддерживаемые драйверы
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB глобальная переменная для подключения к базе данных
var DB *gorm.DB

// Dialector выбирает драйвер gorm по конфигурации
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	db := cfg.Database
	switch db.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode,
		)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(db.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// Open открывает подключение с тихим логгером gorm
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Connect подключается к базе данных из конфигурации
func Connect(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	DB, err = Open(dialector)
	if err != nil {
		return err
	}

	// Настройка пула соединений
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Database.Driver == DriverSQLite {
		// sqlite допускает одного писателя
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// AutoMigrate создает таблицы прогонов и результатов
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ValidationRun{}, &model.CheckResult{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Migrate выполняет автомиграции
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return AutoMigrate(DB)
}

// Close закрывает соединение с базой данных
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck проверяет состояние подключения к базе данных
func HealthCheck() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
