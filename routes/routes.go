package routes

import (
	"homes-http-service/config"
	"homes-http-service/controllers"
	_ "homes-http-service/docs"
	"homes-http-service/middleware"
	"homes-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, serviceContainer.GetRedisService())
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册注册用户路由
	registerUserRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/user/register", controllers.HandleJWTFunc(container, "register"))
	api.POST("/auth/user/login", controllers.HandleJWTFunc(container, "login"))
	api.POST("/auth/admin/login", controllers.HandleJWTFunc(container, "adminLogin"))

	// 参考数据只读路由，下拉选项无需登录
	api.GET("/property_types", controllers.HandlePropertyTypeFunc(container, "getPropertyTypes"))
	api.GET("/property_types/:id", controllers.HandlePropertyTypeFunc(container, "getPropertyType"))
	api.GET("/ownership_types", controllers.HandleOwnershipTypeFunc(container, "getOwnershipTypes"))
	api.GET("/ownership_types/:id", controllers.HandleOwnershipTypeFunc(container, "getOwnershipType"))
	api.GET("/looking_for_categories", controllers.HandleLookingForCategoryFunc(container, "getLookingForCategories"))
	api.GET("/looking_for_categories/:id", controllers.HandleLookingForCategoryFunc(container, "getLookingForCategory"))
}

// registerUserRoutes 注册需要用户登录的路由
func registerUserRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加用户认证中间件
	users := api.Group("/users")
	users.Use(middleware.AuthenticateUser())

	// 首页与账户
	users.GET("/dashboard", controllers.HandleDashboardFunc(container, "getDashboard"))
	users.DELETE("/account", controllers.HandleDashboardFunc(container, "deleteAccount"))

	// 用户资料路由
	users.GET("/profile", controllers.HandleProfileFunc(container, "getProfile"))
	users.POST("/profile", controllers.HandleProfileFunc(container, "createProfile"))
	users.PUT("/profile", controllers.HandleProfileFunc(container, "updateProfile"))

	// 房源路由
	users.GET("/property_listings", controllers.HandlePropertyListingFunc(container, "getPropertyListings"))
	users.GET("/property_listings/map", controllers.HandlePropertyListingFunc(container, "getPropertyListingMarkers"))
	users.POST("/property_listings/search", controllers.HandlePropertyListingFunc(container, "searchPropertyListings"))
	users.GET("/property_listings/:id", controllers.HandlePropertyListingFunc(container, "getPropertyListing"))
	users.POST("/property_listings", controllers.HandlePropertyListingFunc(container, "createPropertyListing"))
	users.PUT("/property_listings/:id", controllers.HandlePropertyListingFunc(container, "updatePropertyListing"))
	users.DELETE("/property_listings/:id", controllers.HandlePropertyListingFunc(container, "deletePropertyListing"))

	// 求购需求路由
	users.GET("/property_requests", controllers.HandlePropertyRequestFunc(container, "getPropertyRequests"))
	users.GET("/property_requests/map", controllers.HandlePropertyRequestFunc(container, "getPropertyRequestMarkers"))
	users.POST("/property_requests/search", controllers.HandlePropertyRequestFunc(container, "searchPropertyRequests"))
	users.GET("/property_requests/:id", controllers.HandlePropertyRequestFunc(container, "getPropertyRequest"))
	users.POST("/property_requests", controllers.HandlePropertyRequestFunc(container, "createPropertyRequest"))
	users.PUT("/property_requests/:id", controllers.HandlePropertyRequestFunc(container, "updatePropertyRequest"))
	users.DELETE("/property_requests/:id", controllers.HandlePropertyRequestFunc(container, "deletePropertyRequest"))

	// 通讯录路由
	users.GET("/contacts", controllers.HandleContactFunc(container, "getContacts"))
	users.POST("/contacts/import", controllers.HandleContactFunc(container, "importContacts"))
}

// registerAdminRoutes 注册需要管理员权限的路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加管理员认证中间件
	admin := api.Group("/admin")
	admin.Use(middleware.AuthenticateAdmin())

	// 管理员总览路由
	admin.GET("/dashboard", controllers.HandleAdminFunc(container, "getAdminDashboard"))
	admin.GET("/users", controllers.HandleAdminFunc(container, "getUsers"))

	// 房屋类型维护路由
	admin.POST("/property_types", controllers.HandlePropertyTypeFunc(container, "createPropertyType"))
	admin.PUT("/property_types/:id", controllers.HandlePropertyTypeFunc(container, "updatePropertyType"))
	admin.DELETE("/property_types/:id", controllers.HandlePropertyTypeFunc(container, "deletePropertyType"))

	// 产权类型维护路由
	admin.POST("/ownership_types", controllers.HandleOwnershipTypeFunc(container, "createOwnershipType"))
	admin.PUT("/ownership_types/:id", controllers.HandleOwnershipTypeFunc(container, "updateOwnershipType"))
	admin.DELETE("/ownership_types/:id", controllers.HandleOwnershipTypeFunc(container, "deleteOwnershipType"))

	// 求购类别维护路由
	admin.POST("/looking_for_categories", controllers.HandleLookingForCategoryFunc(container, "createLookingForCategory"))
	admin.PUT("/looking_for_categories/:id", controllers.HandleLookingForCategoryFunc(container, "updateLookingForCategory"))
	admin.DELETE("/looking_for_categories/:id", controllers.HandleLookingForCategoryFunc(container, "deleteLookingForCategory"))
}
