package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studiocrm/internal/config"
	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/fieldcrypt"
)

// NewCipher picks the configured field encryption key, deriving one from the
// JWT secret when none is set.
func NewCipher(cfg *config.Config, log *zap.Logger) (*fieldcrypt.Cipher, error) {
	if cfg.FieldEncryptionKey != "" {
		return fieldcrypt.NewCipher(cfg.FieldEncryptionKey)
	}
	log.Warn("FIELD_ENCRYPTION_KEY not set, deriving the credential encryption key from JWT_SECRET")
	return fieldcrypt.DeriveCipher(cfg.JWTSecret)
}

// newGormLogger sends gorm's query errors through zap. Missing rows are an
// ordinary lookup result and are not logged.
func newGormLogger(log *zap.Logger) gormlogger.Interface {
	writer, err := zap.NewStdLogAt(log.Named("gorm"), zapcore.ErrorLevel)
	if err != nil {
		writer = zap.NewStdLog(log.Named("gorm"))
	}
	return gormlogger.New(writer, gormlogger.Config{
		LogLevel:                  gormlogger.Error,
		IgnoreRecordNotFoundError: true,
	})
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         newGormLogger(zap.L()),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// OpenDatabase connects with the configured driver. The cipher is registered
// as the "encrypted" serializer before any model is parsed.
func OpenDatabase(cfg *config.Config, cipher *fieldcrypt.Cipher) (*gorm.DB, error) {
	fieldcrypt.Register(cipher)

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.PostgresURL), gormConfig())
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenSQLiteMemory opens a named shared in-memory database, mostly for tests.
func OpenSQLiteMemory(name string, cipher *fieldcrypt.Cipher) (*gorm.DB, error) {
	fieldcrypt.Register(cipher)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(db_models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Database connection closed")
	}
}

// WithTransaction runs fn in one transaction, rolling back when it returns an error.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
