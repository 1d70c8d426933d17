package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"thepass/internal/models"
)

// KVStore keeps save records in a SQL table, one row per key
type KVStore struct {
	db *gorm.DB
}

// NewKVStore migrates the save table and returns a store over it
func NewKVStore(db *gorm.DB) (*KVStore, error) {
	if err := db.AutoMigrate(&models.SaveRecord{}).Error; err != nil {
		return nil, fmt.Errorf("failed to migrate save records: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Get returns the payload stored under key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var rec models.SaveRecord
	err := s.db.Where("save_key = ?", key).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(rec.Payload), true, nil
}

// Put writes value under key, replacing any previous payload
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var rec models.SaveRecord
	err := tx.Where("save_key = ?", key).First(&rec).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		err = tx.Create(&models.SaveRecord{SaveKey: key, Payload: string(value)}).Error
	case err == nil:
		err = tx.Model(&rec).Update("payload", string(value)).Error
	}
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return tx.Commit().Error
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// hard delete so the unique key can be written again
	err := s.db.Unscoped().Where("save_key = ?", key).Delete(&models.SaveRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
