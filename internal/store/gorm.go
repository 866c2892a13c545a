package store

import (
	"errors"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 将记录落到 MySQL 的 stored_records 表，按设备档案隔离键空间。
// 读失败（连接问题等）按 absent 处理并记日志，不向上传播。
type GormStore struct {
	db      *gorm.DB
	profile string
}

func NewGormStore(db *gorm.DB, profile string) *GormStore {
	return &GormStore{db: db, profile: profile}
}

func (s *GormStore) Read(key string) (string, bool) {
	var rec model.StoredRecord
	err := s.db.Where("profile = ? AND record_key = ?", s.profile, key).First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("record store read failed, treating as absent",
				zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return rec.Value, true
}

func (s *GormStore) Write(key, value string) error {
	rec := model.StoredRecord{
		Profile:   s.profile,
		RecordKey: key,
		Value:     value,
	}
	// 无条件覆盖，后写者胜
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}, {Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *GormStore) Remove(key string) {
	err := s.db.Where("profile = ? AND record_key = ?", s.profile, key).
		Delete(&model.StoredRecord{}).Error
	if err != nil {
		logger.Log.Warn("record store remove failed",
			zap.String("key", key), zap.Error(err))
	}
}
