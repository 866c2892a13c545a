package model

import (
	"time"
)

type UserRole string

const (
	Parent    UserRole = "parent"
	Student   UserRole = "student"
	Volunteer UserRole = "volunteer"
	Admin     UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:100;not null" json:"name"`
	Username       string    `gorm:"size:100;unique;not null" json:"username"`
	Email          string    `gorm:"size:100;index" json:"email,omitempty"`
	Phone          string    `gorm:"size:30;index" json:"phone,omitempty"`
	Password       string    `gorm:"size:100;not null" json:"-"`
	Role           UserRole  `gorm:"type:enum('parent','student','volunteer','admin');default:'parent'" json:"role"`
	GuardianName   string    `gorm:"size:100" json:"guardianName,omitempty"`
	School         string    `gorm:"size:150" json:"school,omitempty"`
	Points         int       `gorm:"default:0" json:"points"` // 完成作业累积的积分
	VolunteerHours float64   `gorm:"default:0" json:"volunteerHours,omitempty"`
	Language       string    `gorm:"size:10;default:'en'" json:"language"`
	Verified       bool      `gorm:"default:false" json:"verified"`
	Disabled       bool      `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
