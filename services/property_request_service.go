package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// PropertyRequestInput 创建/更新求购需求时可由客户端提交的字段
type PropertyRequestInput struct {
	PropertyTypeID       uint   `json:"property_type_id"`
	LookingForCategoryID uint   `json:"looking_for_category_id"`
	Location             string `json:"location"`
}

// RequestWithDistance 附带与查询点距离的需求
type RequestWithDistance struct {
	models.PropertyRequest
	DistanceKm float64 `json:"distance_km"`
}

// InterfacePropertyRequestService defines the property request service interface
type InterfacePropertyRequestService interface {
	Create(ownerID uint, input PropertyRequestInput) (*models.PropertyRequest, error)
	Update(id uint, input PropertyRequestInput) (*models.PropertyRequest, error)
	Delete(id uint) error
	GetByID(id uint) (*models.PropertyRequest, error)
	ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.PropertyRequest, int64, error)
	ListAll(p models.PaginationQuery) ([]models.PropertyRequest, int64, error)
	SearchNearby(ownerID uint, address string, radiusKm float64, p models.PaginationQuery) ([]RequestWithDistance, int64, error)
	BroadSearch(location, propertyTypeName, categoryName string) ([]models.PropertyRequest, error)
	MapMarkers(requests []models.PropertyRequest) []models.MapMarker
	MarkersByOwner(ownerID uint) ([]models.MapMarker, error)
}

// PropertyRequestService 提供求购/求租需求的存储与查询
type PropertyRequestService struct {
	DB       *gorm.DB
	Config   *config.Config
	Geocoder InterfaceGeocodeService
}

// NewPropertyRequestService 创建一个新的需求服务
func NewPropertyRequestService(db *gorm.DB, cfg *config.Config, geocoder InterfaceGeocodeService) InterfacePropertyRequestService {
	return &PropertyRequestService{
		DB:       db,
		Config:   cfg,
		Geocoder: geocoder,
	}
}

// validate 校验输入，返回按字段收集的错误
func (s *PropertyRequestService) validate(input PropertyRequestInput) ValidationErrors {
	errs := ValidationErrors{}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		errs["location"] = "地址不能为空"
	} else if n := utf8.RuneCountInString(location); n < 3 || n > 150 {
		errs["location"] = "地址长度需在3到150个字符之间"
	}

	if input.PropertyTypeID == 0 {
		errs["property_type_id"] = "房源类型不能为空"
	} else {
		var count int64
		if err := s.DB.Model(&models.PropertyType{}).Where("id = ?", input.PropertyTypeID).Count(&count).Error; err == nil && count == 0 {
			errs["property_type_id"] = "房源类型不存在"
		}
	}

	if input.LookingForCategoryID == 0 {
		errs["looking_for_category_id"] = "求购类别不能为空"
	} else {
		var count int64
		if err := s.DB.Model(&models.LookingForCategory{}).Where("id = ?", input.LookingForCategoryID).Count(&count).Error; err == nil && count == 0 {
			errs["looking_for_category_id"] = "求购类别不存在"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// geocodeLocation 同步调用地址解析，失败降级为unresolved
func (s *PropertyRequestService) geocodeLocation(location string) (*float64, *float64, models.GeocodeStatus) {
	lat, lon, err := s.Geocoder.Geocode(context.Background(), location)
	if err != nil {
		config.Warning("需求地址解析失败，坐标置空: %q: %v", location, err)
		return nil, nil, models.GeocodeUnresolved
	}
	return &lat, &lon, models.GeocodeResolved
}

// 1 Create 创建需求。归属无条件取ownerID。
func (s *PropertyRequestService) Create(ownerID uint, input PropertyRequestInput) (*models.PropertyRequest, error) {
	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	request := &models.PropertyRequest{
		UserID:               ownerID,
		PropertyTypeID:       input.PropertyTypeID,
		LookingForCategoryID: input.LookingForCategoryID,
		Location:             strings.TrimSpace(input.Location),
	}
	request.Latitude, request.Longitude, request.GeocodeStatus = s.geocodeLocation(request.Location)

	if err := s.DB.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// 2 Update 更新需求。user_id创建后不可变；仅当地址文本变化时重新解析。
func (s *PropertyRequestService) Update(id uint, input PropertyRequestInput) (*models.PropertyRequest, error) {
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	location := strings.TrimSpace(input.Location)
	updates := map[string]interface{}{
		"property_type_id":        input.PropertyTypeID,
		"looking_for_category_id": input.LookingForCategoryID,
		"location":                location,
	}

	if location != request.Location {
		lat, lon, status := s.geocodeLocation(location)
		updates["latitude"] = lat
		updates["longitude"] = lon
		updates["geocode_status"] = status
	}

	if err := s.DB.Model(request).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// 3 Delete 删除需求。归属校验由访问控制层负责。
func (s *PropertyRequestService) Delete(id uint) error {
	request, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(request).Error
}

// 4 GetByID 根据ID获取需求
func (s *PropertyRequestService) GetByID(id uint) (*models.PropertyRequest, error) {
	var request models.PropertyRequest
	if err := s.DB.Preload("PropertyType").Preload("LookingForCategory").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &request, nil
}

// 5 ListByOwner 获取某用户的所有需求，按创建时间倒序分页
func (s *PropertyRequestService) ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.PropertyRequest, int64, error) {
	var requests []models.PropertyRequest
	var total int64
	base := s.DB.Model(&models.PropertyRequest{}).Where("user_id = ?", ownerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Preload("PropertyType").Preload("LookingForCategory").
		Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// 6 ListAll 获取全部用户的需求，供管理员总览，按创建时间倒序分页
func (s *PropertyRequestService) ListAll(p models.PaginationQuery) ([]models.PropertyRequest, int64, error) {
	var requests []models.PropertyRequest
	var total int64
	if err := s.DB.Model(&models.PropertyRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("PropertyType").Preload("LookingForCategory").
		Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// 7 SearchNearby 附近搜索，半径内按距离升序
func (s *PropertyRequestService) SearchNearby(ownerID uint, address string, radiusKm float64, p models.PaginationQuery) ([]RequestWithDistance, int64, error) {
	queryLat, queryLon, err := s.Geocoder.Geocode(context.Background(), address)
	if err != nil {
		return nil, 0, err
	}

	var candidates []models.PropertyRequest
	if err := s.DB.Where("user_id = ? AND geocode_status = ?", ownerID, models.GeocodeResolved).
		Preload("PropertyType").Preload("LookingForCategory").
		Find(&candidates).Error; err != nil {
		return nil, 0, err
	}

	within := make([]RequestWithDistance, 0, len(candidates))
	for _, request := range candidates {
		if request.Latitude == nil || request.Longitude == nil {
			continue
		}
		distance := haversineKm(queryLat, queryLon, *request.Latitude, *request.Longitude)
		if distance <= radiusKm {
			within = append(within, RequestWithDistance{PropertyRequest: request, DistanceKm: distance})
		}
	}
	sort.Slice(within, func(i, j int) bool {
		return within[i].DistanceKm < within[j].DistanceKm
	})

	total := int64(len(within))
	start := p.Offset()
	if start > len(within) {
		start = len(within)
	}
	end := start + p.PerPage
	if end > len(within) {
		end = len(within)
	}
	return within[start:end], total, nil
}

// 8 BroadSearch 宽匹配搜索，三条件取并集，按三元组去重
func (s *PropertyRequestService) BroadSearch(location, propertyTypeName, categoryName string) ([]models.PropertyRequest, error) {
	var requests []models.PropertyRequest
	if err := s.DB.
		Joins("JOIN property_types ON property_types.id = property_requests.property_type_id").
		Joins("JOIN looking_for_categories ON looking_for_categories.id = property_requests.looking_for_category_id").
		Where("property_requests.location = ? OR property_types.name = ? OR looking_for_categories.name = ?",
			location, propertyTypeName, categoryName).
		Preload("PropertyType").Preload("LookingForCategory").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	type tripleKey struct {
		location       string
		propertyTypeID uint
		categoryID     uint
	}
	seen := make(map[tripleKey]bool, len(requests))
	deduped := make([]models.PropertyRequest, 0, len(requests))
	for _, request := range requests {
		key := tripleKey{request.Location, request.PropertyTypeID, request.LookingForCategoryID}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, request)
	}
	return deduped, nil
}

// 9 MapMarkers 生成地图标记数组
func (s *PropertyRequestService) MapMarkers(requests []models.PropertyRequest) []models.MapMarker {
	markers := make([]models.MapMarker, 0, len(requests))
	for i := range requests {
		if marker := requests[i].MapMarker(); marker != nil {
			markers = append(markers, *marker)
		}
	}
	return markers
}

// 10 MarkersByOwner 获取某用户全部需求的地图标记，不分页
func (s *PropertyRequestService) MarkersByOwner(ownerID uint) ([]models.MapMarker, error) {
	var requests []models.PropertyRequest
	if err := s.DB.Where("user_id = ? AND geocode_status = ?", ownerID, models.GeocodeResolved).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return s.MapMarkers(requests), nil
}
