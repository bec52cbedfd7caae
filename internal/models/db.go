package models

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite" // pure Go sqlite (modernc.org/sqlite)
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB global database handle
var DB *gorm.DB

// DBPoolConfig connection pool settings
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// OpenDB opens a gorm handle for the given driver.
func OpenDB(driver, dsn string, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(logLevel),
		NowFunc: NowUTC,
	})
}

// NowUTC timestamps are stored in UTC so text comparisons on sqlite stay ordered
func NowUTC() time.Time {
	return time.Now().UTC()
}

// InitDB opens the global handle and applies the pool settings.
func InitDB(driver, dsn string, pool DBPoolConfig) error {
	db, err := OpenDB(driver, dsn, gormlogger.Warn)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	applyDBPool(sqlDB, pool)
	DB = db
	return nil
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// AllModels every migrated table, in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&Admin{},
		&Section{},
		&Subsection{},
		&Category{},
		&Tag{},
		&Article{},
		&ArticleView{},
		&ArticleReaction{},
		&Review{},
		&ShortURL{},
		&URLRedirection{},
		&RobotsTxt{},
		&SiteInfo{},
		&DefaultPage{},
		&VideoPost{},
		&SpecialTitle{},
		&SpecialArticle{},
		&ArticleSeo{},
		&SectionSeo{},
		&SubsectionSeo{},
		&AuthorCategory{},
		&AuthorRole{},
		&Author{},
		&Setting{},
		&RoleAuditLog{},
	}
}

// AutoMigrate migrates every table on the global handle
func AutoMigrate() error {
	return MigrateAll(DB)
}

// MigrateAll migrates every table on db
func MigrateAll(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}
	return db.AutoMigrate(AllModels()...)
}
