package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// 名字只允许字母、点和空格
var firstNamePattern = regexp.MustCompile(`^[a-zA-Z.\s]+$`)

// ProfileInput 创建/更新用户资料时可由客户端提交的字段
type ProfileInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"date_of_birth"`
	Gender          string `json:"gender"`
	MobileNumber    string `json:"mobile_number"`
	AlternateNumber string `json:"alternate_number"`
	WorkLocation    string `json:"work_location"`
	Employer        string `json:"employer"`
}

// InterfaceProfileService defines the profile service interface
type InterfaceProfileService interface {
	GetByUserID(userID uint) (*models.Profile, error)
	Create(userID uint, input ProfileInput) (*models.Profile, error)
	Update(userID uint, input ProfileInput) (*models.Profile, error)
}

// ProfileService 提供用户资料相关的服务
type ProfileService struct {
	DB       *gorm.DB
	Config   *config.Config
	Geocoder InterfaceGeocodeService
}

// NewProfileService 创建一个新的用户资料服务
func NewProfileService(db *gorm.DB, cfg *config.Config, geocoder InterfaceGeocodeService) InterfaceProfileService {
	return &ProfileService{
		DB:       db,
		Config:   cfg,
		Geocoder: geocoder,
	}
}

// validate 校验输入，返回按字段收集的错误
func (s *ProfileService) validate(input ProfileInput) ValidationErrors {
	errs := ValidationErrors{}

	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		errs["first_name"] = "名字不能为空"
	} else if utf8.RuneCountInString(firstName) > 20 {
		errs["first_name"] = "名字长度不能超过20个字符"
	} else if !firstNamePattern.MatchString(firstName) {
		errs["first_name"] = "名字只能包含字母、点和空格"
	}

	if strings.TrimSpace(input.LastName) == "" {
		errs["last_name"] = "姓氏不能为空"
	}
	if strings.TrimSpace(input.MobileNumber) == "" {
		errs["mobile_number"] = "手机号不能为空"
	}
	if strings.TrimSpace(input.WorkLocation) == "" {
		errs["work_location"] = "工作地点不能为空"
	}
	if strings.TrimSpace(input.Employer) == "" {
		errs["employer"] = "雇主不能为空"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// geocodeWorkLocation 解析工作地点，失败降级为unresolved
func (s *ProfileService) geocodeWorkLocation(location string) (*float64, *float64, models.GeocodeStatus) {
	lat, lon, err := s.Geocoder.Geocode(context.Background(), location)
	if err != nil {
		config.Warning("工作地点解析失败，坐标置空: %q: %v", location, err)
		return nil, nil, models.GeocodeUnresolved
	}
	return &lat, &lon, models.GeocodeResolved
}

// 1 GetByUserID 获取用户的资料
func (s *ProfileService) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// 2 Create 创建用户资料，每个用户至多一份
func (s *ProfileService) Create(userID uint, input ProfileInput) (*models.Profile, error) {
	var count int64
	if err := s.DB.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProfileAlreadyExist
	}

	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	profile := &models.Profile{
		UserID:          userID,
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		DateOfBirth:     input.DateOfBirth,
		Gender:          input.Gender,
		MobileNumber:    strings.TrimSpace(input.MobileNumber),
		AlternateNumber: input.AlternateNumber,
		WorkLocation:    strings.TrimSpace(input.WorkLocation),
		Employer:        strings.TrimSpace(input.Employer),
	}
	profile.Latitude, profile.Longitude, profile.GeocodeStatus = s.geocodeWorkLocation(profile.WorkLocation)

	if err := s.DB.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// 3 Update 更新用户资料，仅当工作地点变化时重新解析
func (s *ProfileService) Update(userID uint, input ProfileInput) (*models.Profile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if errs := s.validate(input); errs != nil {
		return nil, errs
	}

	workLocation := strings.TrimSpace(input.WorkLocation)
	updates := map[string]interface{}{
		"first_name":       strings.TrimSpace(input.FirstName),
		"last_name":        strings.TrimSpace(input.LastName),
		"date_of_birth":    input.DateOfBirth,
		"gender":           input.Gender,
		"mobile_number":    strings.TrimSpace(input.MobileNumber),
		"alternate_number": input.AlternateNumber,
		"work_location":    workLocation,
		"employer":         strings.TrimSpace(input.Employer),
	}

	if workLocation != profile.WorkLocation {
		lat, lon, status := s.geocodeWorkLocation(workLocation)
		updates["latitude"] = lat
		updates["longitude"] = lon
		updates["geocode_status"] = status
	}

	if err := s.DB.Model(profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByUserID(userID)
}
