package repository

import (
	"reach_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByIdentifier 按邮箱/手机号/用户名任意一种定位账号，
// 对应登录页三种登录方式共用一个入口的行为
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := r.DB.
		Where("email = ? OR phone = ? OR username = ?", identifier, identifier, identifier).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) AddPoints(userID uint, points int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).
		Error
}

func (r *UserRepository) FindTopByPoints(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("disabled = ?", false).
		Order("points DESC").Limit(limit).Find(&users).Error
	return users, err
}
