package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// InterfacePropertyTypeService defines the property type service interface
type InterfacePropertyTypeService interface {
	GetAll(p models.PaginationQuery) ([]models.PropertyType, int64, error)
	Search(query string, p models.PaginationQuery) ([]models.PropertyType, int64, error)
	GetByID(id uint) (*models.PropertyType, error)
	Create(name string) (*models.PropertyType, error)
	Update(id uint, name string) (*models.PropertyType, error)
	Delete(id uint) error
}

// PropertyTypeService 提供房源类型参考数据的服务
type PropertyTypeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPropertyTypeService 创建一个新的房源类型服务
func NewPropertyTypeService(db *gorm.DB, cfg *config.Config) InterfacePropertyTypeService {
	return &PropertyTypeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAll 获取所有房源类型，按创建时间倒序
func (s *PropertyTypeService) GetAll(p models.PaginationQuery) ([]models.PropertyType, int64, error) {
	var types []models.PropertyType
	var total int64
	if err := s.DB.Model(&models.PropertyType{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&types).Error; err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

// 2 Search 按名称做忽略大小写的子串搜索
func (s *PropertyTypeService) Search(query string, p models.PaginationQuery) ([]models.PropertyType, int64, error) {
	var types []models.PropertyType
	var total int64
	pattern := "%" + strings.ToLower(query) + "%"
	base := s.DB.Model(&models.PropertyType{}).Where("LOWER(name) LIKE ?", pattern)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&types).Error; err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

// 3 GetByID 根据ID获取房源类型
func (s *PropertyTypeService) GetByID(id uint) (*models.PropertyType, error) {
	var propertyType models.PropertyType
	if err := s.DB.First(&propertyType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}
	return &propertyType, nil
}

// 4 Create 创建新房源类型，名称忽略大小写唯一
func (s *PropertyTypeService) Create(name string) (*models.PropertyType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.PropertyType{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	propertyType := &models.PropertyType{Name: name}
	if err := s.DB.Create(propertyType).Error; err != nil {
		return nil, err
	}
	return propertyType, nil
}

// 5 Update 更新房源类型名称，同样检查唯一性
func (s *PropertyTypeService) Update(id uint, name string) (*models.PropertyType, error) {
	propertyType, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "名称不能为空"}
	}

	var count int64
	if err := s.DB.Model(&models.PropertyType{}).
		Where("LOWER(name) = ? AND id != ?", strings.ToLower(name), id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReferenceNameTaken
	}

	if err := s.DB.Model(propertyType).Update("name", name).Error; err != nil {
		return nil, err
	}
	return propertyType, nil
}

// 6 Delete 删除房源类型。不检查是否仍被房源引用，引用方保留悬空外键。
func (s *PropertyTypeService) Delete(id uint) error {
	propertyType, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(propertyType).Error
}
