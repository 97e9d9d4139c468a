package database

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/oairepo/internal/infra/database/models"
)

// SQLitePrefix selects the sqlite driver in a DSN, e.g. sqlite:/var/lib/oai.db.
const SQLitePrefix = "sqlite:"

func newLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)
}

// Open connects to postgres, or to sqlite when dsn carries SQLitePrefix.
func Open(dsn string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		return NewSQLite(path)
	}
	return NewPostgres(dsn)
}

func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(),
	})
	return db, err
}

func NewSQLite(path string) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(path+sep+"_foreign_keys=1"), &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(),
	})
	return db, err
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Asset{},
		&models.ItemSet{},
		&models.Item{},
		&models.Value{},
		&models.Media{},
		&models.ResumptionToken{},
	)
}

// NewRedis connects to the token store server and checks it is reachable.
func NewRedis(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "redis %s unreachable", addr)
	}
	return rdb, nil
}

func NewMemcached(addr string) (*memcache.Client, error) {
	mc := memcache.New(addr)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrapf(err, "memcached %s unreachable", addr)
	}
	return mc, nil
}
