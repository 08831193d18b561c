package models

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) Category {
	t.Helper()
	c := Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, cat Category, name, price string, stock int, createdAt time.Time) Product {
	t.Helper()
	p := Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: cat.ID,
		Stock:      stock,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}
