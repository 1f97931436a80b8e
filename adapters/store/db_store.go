package store

import (
	"errors"
	"log/slog"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore keeps keys as rows of models.StoreEntry
type DBStore struct {
	log ports.Logger
	db  ports.DB
}

// NewDBStore requires migrated models.StoreEntry
func NewDBStore(log ports.Logger, db ports.DB) (*DBStore, error) {
	log = log.With(slog.String("entity", "DBStore"))
	s := &DBStore{
		log: log,
		db:  db,
	}
	var count int64
	err := db.Model(new(models.StoreEntry)).Count(&count).Error
	return s, err
}

func (s *DBStore) Get(key string) (string, bool, error) {
	var entry models.StoreEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, ports.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *DBStore) Set(key, value string) error {
	entry := &models.StoreEntry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
	if err == nil {
		s.log.Debug("set", slog.String("key", key), slog.Int("size", len(value)))
	}
	return err
}

func (s *DBStore) Delete(key string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("key = ?", key).Delete(new(models.StoreEntry)).Error
	})
}

// Size returns size of stored value or zero
func (s *DBStore) Size(key string) int64 {
	value, _, _ := s.Get(key)
	return int64(len(value))
}

// Keys returns stored keys in storage order
func (s *DBStore) Keys() ([]string, error) {
	keys := []string{}
	err := iterateAll(s.db, func(entry *models.StoreEntry) (bool, error) {
		keys = append(keys, entry.Key)
		return true, nil
	})
	return keys, err
}
