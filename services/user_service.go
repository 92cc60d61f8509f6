package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
	"homes-http-service/utils"
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	List(p models.PaginationQuery) ([]models.User, int64, error)
	Delete(id uint) error
}

// UserService 提供用户账号相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Register 注册新用户，邮箱唯一
func (s *UserService) Register(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	errs := ValidationErrors{}
	if email == "" || !strings.Contains(email, "@") {
		errs["email"] = "邮箱格式不正确"
	}
	if len(password) < 6 {
		errs["password"] = "密码长度不能少于6位"
	} else if len(password) > 72 {
		// bcrypt只处理前72字节
		errs["password"] = "密码长度不能超过72位"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExist
	}

	user := &models.User{Email: email, Password: password}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// 2 Authenticate 校验邮箱和密码
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrPasswordIncorrect
	}
	return &user, nil
}

// 3 GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 4 List 获取全部用户，供管理员查看，按注册时间倒序分页。不加载密码哈希。
func (s *UserService) List(p models.PaginationQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Select("id", "email", "created_at", "updated_at").
		Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// 5 Delete 删除用户，级联删除资料、房源、需求和联系人
func (s *UserService) Delete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PropertyListing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PropertyRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
