package services

import (
	"errors"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
	"homes-http-service/utils"
)

// InterfaceAdminService defines the admin service interface
type InterfaceAdminService interface {
	Authenticate(username, password string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员账号相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Authenticate 校验管理员用户名和密码
func (s *AdminService) Authenticate(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrPasswordIncorrect
	}
	return &admin, nil
}

// 2 GetByID 根据ID获取管理员
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3 EnsureDefaultAdmin 系统中没有管理员时创建默认管理员
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.Admin{
		Username: "admin",
		Password: s.Config.DefaultAdminPassword,
	}
	if err := s.DB.Create(admin).Error; err != nil {
		return err
	}
	config.Info("已创建默认管理员账号: %s", admin.Username)
	return nil
}
