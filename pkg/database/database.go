package database

import (
	"reach_edu_backend/internal/config"
	"reach_edu_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.StoredRecord{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 首次启动写入演示账号；真实身份体系不在范围内
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		seed := []struct {
			user     model.User
			password string
		}{
			{
				user: model.User{
					Name:         "Emma Chen",
					Username:     "emma_parent",
					Email:        "parent@example.com",
					Phone:        "+852 9876 5432",
					Role:         model.Parent,
					GuardianName: "Mrs. Chen",
					School:       "REACH K3",
					Verified:     true,
				},
				password: "password123",
			},
			{
				user: model.User{
					Name:     "Test User",
					Username: "testuser",
					Email:    "test@example.com",
					Role:     model.Volunteer,
					Verified: true,
				},
				password: "test123",
			},
			{
				user: model.User{
					Name:     "REACH Admin",
					Username: "reach_admin",
					Email:    "admin@reach.org.hk",
					Role:     model.Admin,
					Verified: true,
				},
				password: "admin123",
			},
		}
		for _, s := range seed {
			hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			s.user.Password = string(hashed)
			db.Create(&s.user)
		}
	}

	return db, nil
}
