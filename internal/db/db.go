package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gestaotemplate/internal/config"
	"gestaotemplate/internal/models"
	console "gestaotemplate/internal/utils/logger"
)

var DB *gorm.DB
var log = console.New("DB")

// dialector picks the gorm driver for DB_DRIVER.
func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// GormConfig is shared by every connection, tests included.
func GormConfig(logSQL bool) *gorm.Config {
	level := logger.Warn
	if logSQL {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
		AllowGlobalUpdate:                        false,
	}
}

// Connect opens the database, retrying while it comes up, and migrates it.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	log.Info("Connecting to %s database %s@%s:%d...", cfg.Database.Driver, cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(dial, GormConfig(cfg.Database.LogSQL))
		if err == nil {
			log.Success("Connected to database")

			// Configure connection pool
			sqlDB, err := DB.DB()
			if err != nil {
				return nil, log.Error("Failed to get underlying *sql.DB instance", err)
			}

			// Set connection pool settings
			sqlDB.SetMaxOpenConns(100)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxLifetime(time.Hour)
			sqlDB.SetConnMaxIdleTime(time.Minute * 30)

			// Run migrations
			if err := Migrate(DB); err != nil {
				return nil, log.Error("Failed to run migrations", err)
			}

			log.Success("Migrations completed")

			return DB, nil
		}
		log.Warn("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Second * 5)
	}
	return nil, log.Error("Failed to connect to database", fmt.Errorf("gave up after %d attempts: %w", maxRetries, err))
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	log.Info("Running migrations...")

	tables := []interface{}{
		// Base models without foreign keys
		&models.Loja{},
		&models.Template{},
		&models.Categoria{},
		&models.Produto{},
		&models.User{},
		&models.AuthTransaction{},
		&models.Tarefa{},
	}
	tables = append(tables, models.Entities()...)

	return db.AutoMigrate(tables...)
}

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

func GetDB() *gorm.DB {
	return DB
}
