package kvstore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key/value pair of the profile store.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key" json:"key"`
	Value string `gorm:"not null"              json:"value"`
}

func (Entry) TableName() string { return "profile_entries" }

// Gorm persists the profile store in a database: an sqlite file for a
// single local profile, or postgres when several storefront processes
// share one profile. Writes are last-write-wins, like two browser tabs
// over one localStorage.
type Gorm struct {
	db *gorm.DB
}

func OpenGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("не удалось выполнить миграцию: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(key string) (string, bool) {
	var e Entry
	if err := g.db.Where("key = ?", key).First(&e).Error; err != nil {
		return "", false
	}
	return e.Value, true
}

func (g *Gorm) Set(key, value string) error {
	e := Entry{Key: key, Value: value}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&e).Error
}

func (g *Gorm) Remove(key string) {
	g.db.Where("key = ?", key).Delete(&Entry{})
}
