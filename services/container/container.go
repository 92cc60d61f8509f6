package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/services"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService *services.RedisService

	// 外部协作方
	geocodeService services.InterfaceGeocodeService

	// 业务服务
	userService               services.InterfaceUserService
	adminService              services.InterfaceAdminService
	profileService            services.InterfaceProfileService
	propertyTypeService       services.InterfacePropertyTypeService
	ownershipTypeService      services.InterfaceOwnershipTypeService
	lookingForCategoryService services.InterfaceLookingForCategoryService
	propertyListingService    services.InterfacePropertyListingService
	propertyRequestService    services.InterfacePropertyRequestService
	contactService            services.InterfaceContactService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}

	// 初始化地址解析服务（Redis可为nil，此时不缓存解析结果）
	c.geocodeService = services.NewGeocodeService(c.config, c.redisService)

	// 初始化业务服务
	c.userService = services.NewUserService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.profileService = services.NewProfileService(c.db, c.config, c.geocodeService)
	c.propertyTypeService = services.NewPropertyTypeService(c.db, c.config)
	c.ownershipTypeService = services.NewOwnershipTypeService(c.db, c.config)
	c.lookingForCategoryService = services.NewLookingForCategoryService(c.db, c.config)
	c.propertyListingService = services.NewPropertyListingService(c.db, c.config, c.geocodeService)
	c.propertyRequestService = services.NewPropertyRequestService(c.db, c.config, c.geocodeService)
	c.contactService = services.NewContactService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "geocode":
		return c.geocodeService
	case "user":
		return c.userService
	case "admin":
		return c.adminService
	case "profile":
		return c.profileService
	case "property_type":
		return c.propertyTypeService
	case "ownership_type":
		return c.ownershipTypeService
	case "looking_for_category":
		return c.lookingForCategoryService
	case "property_listing":
		return c.propertyListingService
	case "property_request":
		return c.propertyRequestService
	case "contact":
		return c.contactService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetRedisService 获取Redis服务，可能为nil
func (c *ServiceContainer) GetRedisService() *services.RedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}
