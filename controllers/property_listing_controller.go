package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/config"
	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/middleware"
	"homes-http-service/models"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// PropertyListingController 处理房源相关的请求
type PropertyListingController struct {
	BaseControllerImpl
}

// NewPropertyListingController 创建一个新的房源控制器
func (f *ControllerFactory) NewPropertyListingController(ctx *gin.Context) *PropertyListingController {
	return &PropertyListingController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// PropertyListingRequest 表示创建/更新房源的请求体
type PropertyListingRequest struct {
	PropertyTypeID    uint   `json:"property_type_id" binding:"required" example:"1"`
	OwnershipTypeID   uint   `json:"ownership_type_id" binding:"required" example:"1"`
	Location          string `json:"location" binding:"required" example:"Road Number 10, Banjara Hills, Hyderabad"`
	IsCurrentLocation bool   `json:"is_current_location" example:"false"`
}

// ListingSearchRequest 表示宽匹配搜索的请求体。各字段等值匹配，
// 任一命中即入选，结果按(位置,类型,产权)三元组去重。
type ListingSearchRequest struct {
	Location      string `json:"location" example:"Madhapur, Hyderabad"`
	PropertyType  string `json:"property_type" example:"Apartment"`
	OwnershipType string `json:"ownership_type" example:"Freehold"`
}

// getListingService 取房源服务
func (c *PropertyListingController) getListingService() services.InterfacePropertyListingService {
	return c.Container.GetService("property_listing").(services.InterfacePropertyListingService)
}

// ownedListing 加载房源并校验归属。失败时已写出响应。
func (c *PropertyListingController) ownedListing(id uint) (*models.PropertyListing, bool) {
	listing, err := c.getListingService().GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			response.Fail(c.Context, code.ErrListingNotFound, nil)
		} else {
			response.ServerError(c.Context)
		}
		return nil, false
	}
	if listing.UserID != middleware.CurrentUserID(c.Context) {
		response.Fail(c.Context, code.ErrListingNotOwner, nil)
		return nil, false
	}
	return listing, true
}

// failListing 将房源服务错误映射为响应
func (c *PropertyListingController) failListing(err error) {
	var verr services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		response.FailWithMessage(c.Context, code.ErrValidation, verr.Error(), verr)
	case errors.Is(err, services.ErrListingNotFound):
		response.Fail(c.Context, code.ErrListingNotFound, nil)
	default:
		response.ServerError(c.Context)
	}
}

// GetPropertyListings 获取当前用户的房源列表。
// 带addr参数时按解析后的坐标做半径过滤，按距离升序返回。
// @Summary      Get My Property Listings
// @Description  List the caller's property listings; with addr, filter to listings within the configured radius of the resolved address, nearest first
// @Tags         PropertyListing
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Param        addr query string false "Address to search around" example:"Hitech City, Hyderabad"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Address could not be resolved"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_listings [get]
// @Security     BearerAuth
func (c *PropertyListingController) GetPropertyListings() {
	p := c.pagination()
	ownerID := middleware.CurrentUserID(c.Context)
	svc := c.getListingService()

	if addr := c.Context.Query("addr"); addr != "" {
		cfg := c.Container.GetService("config").(*config.Config)
		results, total, err := svc.SearchNearby(ownerID, addr, cfg.SearchRadiusKm, p)
		if err != nil {
			if errors.Is(err, services.ErrAddressUnresolved) {
				response.ParamError(c.Context, "无法解析地址: "+addr)
			} else {
				response.ServerError(c.Context)
			}
			return
		}
		response.Success(c.Context, gin.H{
			"pagination": models.NewPaginationResult(total, p),
			"radius_km":  cfg.SearchRadiusKm,
			"data":       results,
		})
		return
	}

	listings, total, err := svc.ListByOwner(ownerID, p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       listings,
	})
}

// GetPropertyListing 获取单个房源详情，仅限归属用户
// @Summary      Get Property Listing By ID
// @Tags         PropertyListing
// @Produce      json
// @Param        id path int true "Property Listing ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse  "Listing belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_listings/{id} [get]
// @Security     BearerAuth
func (c *PropertyListingController) GetPropertyListing() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	listing, ok := c.ownedListing(id)
	if !ok {
		return
	}

	response.Success(c.Context, listing)
}

// CreatePropertyListing 发布新房源。归属强制为当前登录用户，
// 地址解析成功则写入坐标，失败不阻断保存。
// @Summary      Create Property Listing
// @Tags         PropertyListing
// @Accept       json
// @Produce      json
// @Param        request body PropertyListingRequest true "Listing fields"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed"
// @Router       /users/property_listings [post]
// @Security     BearerAuth
func (c *PropertyListingController) CreatePropertyListing() {
	var req PropertyListingRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	listing, err := c.getListingService().Create(middleware.CurrentUserID(c.Context), services.PropertyListingInput{
		PropertyTypeID:    req.PropertyTypeID,
		OwnershipTypeID:   req.OwnershipTypeID,
		Location:          req.Location,
		IsCurrentLocation: req.IsCurrentLocation,
	})
	if err != nil {
		c.failListing(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功发布房源",
		"data":    listing,
	})
}

// UpdatePropertyListing 更新房源，仅限归属用户。位置变化才重新解析地址。
// @Summary      Update Property Listing
// @Tags         PropertyListing
// @Accept       json
// @Produce      json
// @Param        id path int true "Property Listing ID" example:"1"
// @Param        request body PropertyListingRequest true "Updated listing fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse  "Listing belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_listings/{id} [put]
// @Security     BearerAuth
func (c *PropertyListingController) UpdatePropertyListing() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req PropertyListingRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	if _, ok := c.ownedListing(id); !ok {
		return
	}

	listing, err := c.getListingService().Update(id, services.PropertyListingInput{
		PropertyTypeID:    req.PropertyTypeID,
		OwnershipTypeID:   req.OwnershipTypeID,
		Location:          req.Location,
		IsCurrentLocation: req.IsCurrentLocation,
	})
	if err != nil {
		c.failListing(err)
		return
	}

	response.Success(c.Context, listing)
}

// DeletePropertyListing 删除房源，仅限归属用户
// @Summary      Delete Property Listing
// @Tags         PropertyListing
// @Produce      json
// @Param        id path int true "Property Listing ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse  "Listing belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_listings/{id} [delete]
// @Security     BearerAuth
func (c *PropertyListingController) DeletePropertyListing() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	if _, ok := c.ownedListing(id); !ok {
		return
	}

	if err := c.getListingService().Delete(id); err != nil {
		c.failListing(err)
		return
	}

	response.Success(c.Context, gin.H{"message": "成功删除房源"})
}

// SearchPropertyListings 宽匹配搜索全站房源
// @Summary      Broad Search Property Listings
// @Description  Search all listings by exact location, property type name or ownership type name; a match on any field qualifies, results deduplicated
// @Tags         PropertyListing
// @Accept       json
// @Produce      json
// @Param        request body ListingSearchRequest true "Search criteria"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_listings/search [post]
// @Security     BearerAuth
func (c *PropertyListingController) SearchPropertyListings() {
	var req ListingSearchRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	listings, err := c.getListingService().BroadSearch(req.Location, req.PropertyType, req.OwnershipType)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"total": len(listings),
		"data":  listings,
	})
}

// GetPropertyListingMarkers 获取当前用户房源的地图标记。
// 只有成功解析出坐标的房源才会生成标记。
// @Summary      Get Property Listing Map Markers
// @Tags         PropertyListing
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_listings/map [get]
// @Security     BearerAuth
func (c *PropertyListingController) GetPropertyListingMarkers() {
	ownerID := middleware.CurrentUserID(c.Context)
	svc := c.getListingService()

	markers, err := svc.MarkersByOwner(ownerID)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"markers": markers,
	})
}

// HandlePropertyListingFunc 返回一个处理房源请求的Gin处理函数
func HandlePropertyListingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPropertyListingController(ctx)

		switch method {
		case "getPropertyListings":
			controller.GetPropertyListings()
		case "getPropertyListing":
			controller.GetPropertyListing()
		case "createPropertyListing":
			controller.CreatePropertyListing()
		case "updatePropertyListing":
			controller.UpdatePropertyListing()
		case "deletePropertyListing":
			controller.DeletePropertyListing()
		case "searchPropertyListings":
			controller.SearchPropertyListings()
		case "getPropertyListingMarkers":
			controller.GetPropertyListingMarkers()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
