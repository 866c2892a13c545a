package model

import "time"

// StoredRecord 记录存储的 MySQL 落地形态。profile 对应一台设备的
// 浏览器档案，键空间互不可见；value 是原始字符串（多为 JSON 块），
// 不做任何 schema 约束。
type StoredRecord struct {
	Profile   string    `gorm:"primaryKey;size:64" json:"profile"`
	RecordKey string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:longtext" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
