package models

import (
	"github.com/jinzhu/gorm"
)

// SaveRecord is one key of the durable key-value store
type SaveRecord struct {
	gorm.Model
	SaveKey string `gorm:"column:save_key;unique_index"`
	Payload string `gorm:"column:payload;type:text"`
}

// TableName sets the table name for SaveRecord
func (SaveRecord) TableName() string {
	return "save_records"
}
