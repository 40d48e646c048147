package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"radcon-schedule/internal/models"
)

// KVStore keeps favorites records in the kv_records table.
type KVStore struct {
	db *gorm.DB
}

func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(key string) ([]byte, bool, error) {
	var rec models.KVRecord
	err := s.db.Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(rec.Value), true, nil
}

// Put overwrites the whole record.
func (s *KVStore) Put(key string, value []byte) error {
	rec := models.KVRecord{Key: key, Value: string(value)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
