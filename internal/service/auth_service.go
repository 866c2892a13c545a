package service

import (
	"time"

	"reach_edu_backend/internal/config"
	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/repository"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Login 邮箱/手机号/用户名三种标识共用一个登录入口。
// 找不到账号和密码错误返回同一个错误，不泄露账号是否存在。
func (s *AuthService) Login(identifier, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByIdentifier(identifier)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	// 登录时间没记上不影响登录
	_ = s.UserRepo.Update(user)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// TokenFor 注册向导完成后直接签发令牌，免去一次登录
func (s *AuthService) TokenFor(user *model.User) (string, error) {
	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
