package models

import "time"

// KVRecord is one durable key/value record, e.g. a visitor's favorites list.
type KVRecord struct {
	Key       string    `gorm:"column:record_key;primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default pluralization
func (KVRecord) TableName() string {
	return "kv_records"
}
