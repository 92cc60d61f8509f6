package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// InterfaceLookingForCategoryService defines the looking-for category service interface
type InterfaceLookingForCategoryService interface {
	GetAll(p models.PaginationQuery) ([]models.LookingForCategory, int64, error)
	Search(query string, p models.PaginationQuery) ([]models.LookingForCategory, int64, error)
	GetByID(id uint) (*models.LookingForCategory, error)
	Create(name string) (*models.LookingForCategory, error)
	Update(id uint, name string) (*models.LookingForCategory, error)
	Delete(id uint) error
}

// LookingForCategoryService 提供求购类别参考数据的服务
type LookingForCategoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewLookingForCategoryService 创建一个新的求购类别服务
func NewLookingForCategoryService(db *gorm.DB, cfg *config.Config) InterfaceLookingForCategoryService {
	return &LookingForCategoryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAll 获取所有求购类别，按创建时间倒序
func (s *LookingForCategoryService) GetAll(p models.PaginationQuery) ([]models.LookingForCategory, int64, error) {
	var categories []models.LookingForCategory
	var total int64
	if err := s.DB.Model(&models.LookingForCategory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// 2 Search 按名称做忽略大小写的子串搜索
func (s *LookingForCategoryService) Search(query string, p models.PaginationQuery) ([]models.LookingForCategory, int64, error) {
	var categories []models.LookingForCategory
	var total int64
	pattern := "%" + strings.ToLower(query) + "%"
	base := s.DB.Model(&models.LookingForCategory{}).Where("LOWER(name) LIKE ?", pattern)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// 3 GetByID 根据ID获取求购类别
func (s *LookingForCategoryService) GetByID(id uint) (*models.LookingForCategory, error) {
	var category models.LookingForCategory
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	return &category, nil
}

// 4 Create 创建新求购类别，名称忽略大小写唯一
func (s *LookingForCategoryService) Create(name string) (*models.LookingForCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.LookingForCategory{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	category := &models.LookingForCategory{Name: name}
	if err := s.DB.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// 5 Update 更新求购类别名称，同样检查唯一性
func (s *LookingForCategoryService) Update(id uint, name string) (*models.LookingForCategory, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.LookingForCategory{}).
		Where("LOWER(name) = ? AND id != ?", strings.ToLower(name), id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	if err := s.DB.Model(category).Update("name", name).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// 6 Delete 删除求购类别。不检查是否仍被需求引用。
func (s *LookingForCategoryService) Delete(id uint) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(category).Error
}
