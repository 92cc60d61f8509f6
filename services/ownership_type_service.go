package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// InterfaceOwnershipTypeService defines the ownership type service interface
type InterfaceOwnershipTypeService interface {
	GetAll(p models.PaginationQuery) ([]models.OwnershipType, int64, error)
	Search(query string, p models.PaginationQuery) ([]models.OwnershipType, int64, error)
	GetByID(id uint) (*models.OwnershipType, error)
	Create(name string) (*models.OwnershipType, error)
	Update(id uint, name string) (*models.OwnershipType, error)
	Delete(id uint) error
}

// OwnershipTypeService 提供产权类型参考数据的服务
type OwnershipTypeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOwnershipTypeService 创建一个新的产权类型服务
func NewOwnershipTypeService(db *gorm.DB, cfg *config.Config) InterfaceOwnershipTypeService {
	return &OwnershipTypeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAll 获取所有产权类型，按创建时间倒序
func (s *OwnershipTypeService) GetAll(p models.PaginationQuery) ([]models.OwnershipType, int64, error) {
	var types []models.OwnershipType
	var total int64
	if err := s.DB.Model(&models.OwnershipType{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&types).Error; err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

// 2 Search 按名称做忽略大小写的子串搜索
func (s *OwnershipTypeService) Search(query string, p models.PaginationQuery) ([]models.OwnershipType, int64, error) {
	var types []models.OwnershipType
	var total int64
	pattern := "%" + strings.ToLower(query) + "%"
	base := s.DB.Model(&models.OwnershipType{}).Where("LOWER(name) LIKE ?", pattern)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&types).Error; err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

// 3 GetByID 根据ID获取产权类型
func (s *OwnershipTypeService) GetByID(id uint) (*models.OwnershipType, error) {
	var ownershipType models.OwnershipType
	if err := s.DB.First(&ownershipType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	return &ownershipType, nil
}

// 4 Create 创建新产权类型，名称忽略大小写唯一
func (s *OwnershipTypeService) Create(name string) (*models.OwnershipType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.OwnershipType{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	ownershipType := &models.OwnershipType{Name: name}
	if err := s.DB.Create(ownershipType).Error; err != nil {
		return nil, err
	}
	return ownershipType, nil
}

// 5 Update 更新产权类型名称，同样检查唯一性
func (s *OwnershipTypeService) Update(id uint, name string) (*models.OwnershipType, error) {
	ownershipType, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.OwnershipType{}).
		Where("LOWER(name) = ? AND id != ?", strings.ToLower(name), id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	if err := s.DB.Model(ownershipType).Update("name", name).Error; err != nil {
		return nil, err
	}
	return ownershipType, nil
}

// 6 Delete 删除产权类型。不检查是否仍被房源引用。
func (s *OwnershipTypeService) Delete(id uint) error {
	ownershipType, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(ownershipType).Error
}
