package database

import (
	"fmt"
	"time"

	"github.com/yukikurage/procms-api/internal/config"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteDSN keeps the store in process memory. Every connection of the
// pool shares the same database.
const DefaultSQLiteDSN = "file::memory:?cache=shared"

var DB *gorm.DB

// Connect opens the store selected by cfg.DBDriver.
func Connect(cfg *config.Config) error {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DBDriver == "sqlite" {
		db, err = OpenSQLite(cfg.DBDSN)
	} else {
		var dialector gorm.Dialector
		dialector, err = dialectorFor(cfg)
		if err != nil {
			return err
		}
		db, err = gorm.Open(dialector, gormConfig())
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	logging.Logger.WithField("driver", cfg.DBDriver).Info("database connection established")
	return nil
}

// OpenSQLite opens a SQLite store limited to one connection. SQLite
// serializes writers, and an in-memory database lives only as long as its
// connection. An empty dsn selects DefaultSQLiteDSN.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DBDSN
	switch cfg.DBDriver {
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				portOr(cfg.DBPort, "3306"),
				cfg.DBName,
			)
		}
		return mysql.Open(dsn), nil
	case "postgres":
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				portOr(cfg.DBPort, "5432"),
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBName,
			)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func portOr(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Client{},
		&models.Employee{},
		&models.Project{},
		&models.KanbanColumn{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskCommentReply{},
		&models.Subscription{},
		&models.EODReport{},
	}
}

// Migrate creates or updates the schema on db.
func Migrate(db *gorm.DB) error {
	logging.Logger.Info("running database migrations")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return err
	}
	logging.Logger.Info("database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
