package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"homes-http-service/config"
)

// InterfaceGeocodeService defines the forward geocoding adapter
type InterfaceGeocodeService interface {
	Geocode(ctx context.Context, address string) (float64, float64, error)
}

// GeocodeService 调用Nominatim兼容接口做正向地址解析。
// 单次尝试，不重试，失败由调用方降级处理。
type GeocodeService struct {
	client   *resty.Client
	redis    *RedisService // 可为nil，无Redis时不缓存
	cacheTTL time.Duration
}

// nominatimResult Nominatim搜索接口的单条结果
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// geocodeCacheEntry 缓存的解析结果
type geocodeCacheEntry struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeocodeService 创建一个新的地址解析服务
func NewGeocodeService(cfg *config.Config, redisService *RedisService) InterfaceGeocodeService {
	client := resty.New().
		SetBaseURL(cfg.GeocoderBaseURL).
		SetTimeout(cfg.GeocoderTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "homes-http-service")

	return &GeocodeService{
		client:   client,
		redis:    redisService,
		cacheTTL: cfg.GeocodeCacheTTL,
	}
}

// Geocode 将自由文本地址解析为经纬度
func (s *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return 0, 0, ErrAddressUnresolved
	}

	cacheKey := "geocode:" + strings.ToLower(address)
	if s.redis != nil {
		var cached geocodeCacheEntry
		if err := s.redis.Get(cacheKey, &cached); err == nil {
			return cached.Latitude, cached.Longitude, nil
		}
	}

	var results []nominatimResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      address,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return 0, 0, err
	}
	if resp.IsError() {
		config.Warning("地址解析服务返回异常状态: %s", resp.Status())
		return 0, 0, ErrAddressUnresolved
	}
	if len(results) == 0 {
		return 0, 0, ErrAddressUnresolved
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, ErrAddressUnresolved
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, ErrAddressUnresolved
	}

	if s.redis != nil {
		if err := s.redis.Set(cacheKey, geocodeCacheEntry{Latitude: lat, Longitude: lon}, s.cacheTTL); err != nil {
			config.Warning("缓存地址解析结果失败: %v", err)
		}
	}

	return lat, lon, nil
}
