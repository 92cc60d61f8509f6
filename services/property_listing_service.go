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

// PropertyListingInput 创建/更新房源时可由客户端提交的字段。
// 不含user_id与坐标：归属取自当前登录用户，坐标只由地址解析写入。
type PropertyListingInput struct {
	PropertyTypeID    uint   `json:"property_type_id"`
	OwnershipTypeID   uint   `json:"ownership_type_id"`
	Location          string `json:"location"`
	IsCurrentLocation bool   `json:"is_current_location"`
}

// ListingWithDistance 附带与查询点距离的房源
type ListingWithDistance struct {
	models.PropertyListing
	DistanceKm float64 `json:"distance_km"`
}

// InterfacePropertyListingService defines the property listing service interface
type InterfacePropertyListingService interface {
	Create(ownerID uint, input PropertyListingInput) (*models.PropertyListing, error)
	Update(id uint, input PropertyListingInput) (*models.PropertyListing, error)
	Delete(id uint) error
	GetByID(id uint) (*models.PropertyListing, error)
	ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.PropertyListing, int64, error)
	ListAll(p models.PaginationQuery) ([]models.PropertyListing, int64, error)
	SearchNearby(ownerID uint, address string, radiusKm float64, p models.PaginationQuery) ([]ListingWithDistance, int64, error)
	BroadSearch(location, propertyTypeName, ownershipTypeName string) ([]models.PropertyListing, error)
	MapMarkers(listings []models.PropertyListing) []models.MapMarker
	MarkersByOwner(ownerID uint) ([]models.MapMarker, error)
}

// PropertyListingService 提供自有房源的存储与查询
type PropertyListingService struct {
	DB       *gorm.DB
	Config   *config.Config
	Geocoder InterfaceGeocodeService
}

// NewPropertyListingService 创建一个新的房源服务
func NewPropertyListingService(db *gorm.DB, cfg *config.Config, geocoder InterfaceGeocodeService) InterfacePropertyListingService {
	return &PropertyListingService{
		DB:       db,
		Config:   cfg,
		Geocoder: geocoder,
	}
}

// validate 校验输入，返回按字段收集的错误；校验失败时不落库
func (s *PropertyListingService) validate(input PropertyListingInput) ValidationErrors {
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

	if input.OwnershipTypeID == 0 {
		errs["ownership_type_id"] = "产权类型不能为空"
	} else {
		var count int64
		if err := s.DB.Model(&models.OwnershipType{}).Where("id = ?", input.OwnershipTypeID).Count(&count).Error; err == nil && count == 0 {
			errs["ownership_type_id"] = "产权类型不存在"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// geocodeLocation 同步调用地址解析，单次尝试；失败降级为unresolved并只记日志
func (s *PropertyListingService) geocodeLocation(location string) (*float64, *float64, models.GeocodeStatus) {
	lat, lon, err := s.Geocoder.Geocode(context.Background(), location)
	if err != nil {
		config.Warning("房源地址解析失败，坐标置空: %q: %v", location, err)
		return nil, nil, models.GeocodeUnresolved
	}
	return &lat, &lon, models.GeocodeResolved
}

// 1 Create 创建房源。归属无条件取ownerID，忽略任何客户端提交的user_id。
func (s *PropertyListingService) Create(ownerID uint, input PropertyListingInput) (*models.PropertyListing, error) {
	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	listing := &models.PropertyListing{
		UserID:            ownerID,
		PropertyTypeID:    input.PropertyTypeID,
		OwnershipTypeID:   input.OwnershipTypeID,
		Location:          strings.TrimSpace(input.Location),
		IsCurrentLocation: input.IsCurrentLocation,
	}
	listing.Latitude, listing.Longitude, listing.GeocodeStatus = s.geocodeLocation(listing.Location)

	if err := s.DB.Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// 2 Update 更新房源。user_id创建后不可变；仅当地址文本变化时重新解析。
func (s *PropertyListingService) Update(id uint, input PropertyListingInput) (*models.PropertyListing, error) {
	listing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	location := strings.TrimSpace(input.Location)
	updates := map[string]interface{}{
		"property_type_id":    input.PropertyTypeID,
		"ownership_type_id":   input.OwnershipTypeID,
		"location":            location,
		"is_current_location": input.IsCurrentLocation,
	}

	if location != listing.Location {
		lat, lon, status := s.geocodeLocation(location)
		updates["latitude"] = lat
		updates["longitude"] = lon
		updates["geocode_status"] = status
	}

	if err := s.DB.Model(listing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// 3 Delete 删除房源。此处不校验归属，归属由访问控制层在调用前保证。
func (s *PropertyListingService) Delete(id uint) error {
	listing, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(listing).Error
}

// 4 GetByID 根据ID获取房源
func (s *PropertyListingService) GetByID(id uint) (*models.PropertyListing, error) {
	var listing models.PropertyListing
	if err := s.DB.Preload("PropertyType").Preload("OwnershipType").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// 5 ListByOwner 获取某用户的所有房源，按创建时间倒序分页
func (s *PropertyListingService) ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.PropertyListing, int64, error) {
	var listings []models.PropertyListing
	var total int64
	base := s.DB.Model(&models.PropertyListing{}).Where("user_id = ?", ownerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Preload("PropertyType").Preload("OwnershipType").
		Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// 6 ListAll 获取全部用户的房源，供管理员总览，按创建时间倒序分页
func (s *PropertyListingService) ListAll(p models.PaginationQuery) ([]models.PropertyListing, int64, error) {
	var listings []models.PropertyListing
	var total int64
	if err := s.DB.Model(&models.PropertyListing{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("PropertyType").Preload("OwnershipType").
		Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// 7 SearchNearby 附近搜索：解析查询地址后，返回半径内按距离升序的房源。
// 查询地址解析失败时返回ErrAddressUnresolved。
func (s *PropertyListingService) SearchNearby(ownerID uint, address string, radiusKm float64, p models.PaginationQuery) ([]ListingWithDistance, int64, error) {
	queryLat, queryLon, err := s.Geocoder.Geocode(context.Background(), address)
	if err != nil {
		return nil, 0, err
	}

	var candidates []models.PropertyListing
	if err := s.DB.Where("user_id = ? AND geocode_status = ?", ownerID, models.GeocodeResolved).
		Preload("PropertyType").Preload("OwnershipType").
		Find(&candidates).Error; err != nil {
		return nil, 0, err
	}

	within := make([]ListingWithDistance, 0, len(candidates))
	for _, listing := range candidates {
		if listing.Latitude == nil || listing.Longitude == nil {
			continue
		}
		distance := haversineKm(queryLat, queryLon, *listing.Latitude, *listing.Longitude)
		if distance <= radiusKm {
			within = append(within, ListingWithDistance{PropertyListing: listing, DistanceKm: distance})
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

// 8 BroadSearch 宽匹配搜索：地址、房源类型名、产权类型名三个条件取并集（OR）。
// 结果按(location, property_type_id, ownership_type_id)三元组去重。
func (s *PropertyListingService) BroadSearch(location, propertyTypeName, ownershipTypeName string) ([]models.PropertyListing, error) {
	var listings []models.PropertyListing
	if err := s.DB.
		Joins("JOIN property_types ON property_types.id = property_listings.property_type_id").
		Joins("JOIN ownership_types ON ownership_types.id = property_listings.ownership_type_id").
		Where("property_listings.location = ? OR property_types.name = ? OR ownership_types.name = ?",
			location, propertyTypeName, ownershipTypeName).
		Preload("PropertyType").Preload("OwnershipType").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	type tripleKey struct {
		location        string
		propertyTypeID  uint
		ownershipTypeID uint
	}
	seen := make(map[tripleKey]bool, len(listings))
	deduped := make([]models.PropertyListing, 0, len(listings))
	for _, listing := range listings {
		key := tripleKey{listing.Location, listing.PropertyTypeID, listing.OwnershipTypeID}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, listing)
	}
	return deduped, nil
}

// 9 MapMarkers 生成地图标记数组，未成功解析的房源被跳过
func (s *PropertyListingService) MapMarkers(listings []models.PropertyListing) []models.MapMarker {
	markers := make([]models.MapMarker, 0, len(listings))
	for i := range listings {
		if marker := listings[i].MapMarker(); marker != nil {
			markers = append(markers, *marker)
		}
	}
	return markers
}

// 10 MarkersByOwner 获取某用户全部房源的地图标记，不分页
func (s *PropertyListingService) MarkersByOwner(ownerID uint) ([]models.MapMarker, error) {
	var listings []models.PropertyListing
	if err := s.DB.Where("user_id = ? AND geocode_status = ?", ownerID, models.GeocodeResolved).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return s.MapMarkers(listings), nil
}
