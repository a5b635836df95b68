// Package postgres implements a storage backend over a PostgreSQL table,
// for deployments that want the key-value state in a shared database.
package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key   string `gorm:"column:k;primaryKey;size:255"`
	Value string `gorm:"column:v"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// Backend stores each key as a row in the kv_entries table.
type Backend struct {
	db *gorm.DB
}

// Open connects to PostgreSQL using GORM, verifies the connection and
// migrates the kv_entries table.
func Open(connStr string) (*Backend, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &Backend{db: db}, nil
}

// Close closes the underlying database connection.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (b *Backend) GetItem(key string) (string, bool, error) {
	var entry kvEntry
	err := b.db.First(&entry, "k = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (b *Backend) SetItem(key, value string) error {
	entry := kvEntry{Key: key, Value: value}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v"}),
	}).Create(&entry).Error
}

func (b *Backend) RemoveItem(key string) error {
	return b.db.Delete(&kvEntry{}, "k = ?", key).Error
}

func (b *Backend) Clear() error {
	return b.db.Where("1 = 1").Delete(&kvEntry{}).Error
}

func (b *Backend) Len() (int, error) {
	var n int64
	if err := b.db.Model(&kvEntry{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
