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

// PropertyRequestController 处理求购需求相关的请求
type PropertyRequestController struct {
	BaseControllerImpl
}

// NewPropertyRequestController 创建一个新的求购需求控制器
func (f *ControllerFactory) NewPropertyRequestController(ctx *gin.Context) *PropertyRequestController {
	return &PropertyRequestController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// PropertyRequestRequest 表示创建/更新求购需求的请求体
type PropertyRequestRequest struct {
	PropertyTypeID       uint   `json:"property_type_id" binding:"required" example:"1"`
	LookingForCategoryID uint   `json:"looking_for_category_id" binding:"required" example:"1"`
	Location             string `json:"location" binding:"required" example:"Gachibowli, Hyderabad"`
}

// RequestSearchRequest 表示求购需求宽匹配搜索的请求体
type RequestSearchRequest struct {
	Location           string `json:"location" example:"Kondapur, Hyderabad"`
	PropertyType       string `json:"property_type" example:"Apartment"`
	LookingForCategory string `json:"looking_for_category" example:"Rent"`
}

func (c *PropertyRequestController) getRequestService() services.InterfacePropertyRequestService {
	return c.Container.GetService("property_request").(services.InterfacePropertyRequestService)
}

// ownedRequest 加载求购需求并校验归属。失败时已写出响应。
func (c *PropertyRequestController) ownedRequest(id uint) (*models.PropertyRequest, bool) {
	request, err := c.getRequestService().GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			response.Fail(c.Context, code.ErrListingNotFound, nil)
		} else {
			response.ServerError(c.Context)
		}
		return nil, false
	}
	if request.UserID != middleware.CurrentUserID(c.Context) {
		response.Fail(c.Context, code.ErrListingNotOwner, nil)
		return nil, false
	}
	return request, true
}

func (c *PropertyRequestController) failRequest(err error) {
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

// GetPropertyRequests 获取当前用户的求购需求列表。
// 带addr参数时按解析后的坐标做半径过滤，按距离升序返回。
// @Summary      Get My Property Requests
// @Description  List the caller's wanted-property requests; with addr, filter to requests within the configured radius of the resolved address, nearest first
// @Tags         PropertyRequest
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Param        addr query string false "Address to search around" example:"Hitech City, Hyderabad"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Address could not be resolved"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_requests [get]
// @Security     BearerAuth
func (c *PropertyRequestController) GetPropertyRequests() {
	p := c.pagination()
	ownerID := middleware.CurrentUserID(c.Context)
	svc := c.getRequestService()

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

	requests, total, err := svc.ListByOwner(ownerID, p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       requests,
	})
}

// GetPropertyRequest 获取单个求购需求详情，仅限归属用户
// @Summary      Get Property Request By ID
// @Tags         PropertyRequest
// @Produce      json
// @Param        id path int true "Property Request ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse  "Request belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_requests/{id} [get]
// @Security     BearerAuth
func (c *PropertyRequestController) GetPropertyRequest() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	request, ok := c.ownedRequest(id)
	if !ok {
		return
	}

	response.Success(c.Context, request)
}

// CreatePropertyRequest 发布新求购需求，归属强制为当前登录用户
// @Summary      Create Property Request
// @Tags         PropertyRequest
// @Accept       json
// @Produce      json
// @Param        request body PropertyRequestRequest true "Request fields"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed"
// @Router       /users/property_requests [post]
// @Security     BearerAuth
func (c *PropertyRequestController) CreatePropertyRequest() {
	var req PropertyRequestRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	request, err := c.getRequestService().Create(middleware.CurrentUserID(c.Context), services.PropertyRequestInput{
		PropertyTypeID:       req.PropertyTypeID,
		LookingForCategoryID: req.LookingForCategoryID,
		Location:             req.Location,
	})
	if err != nil {
		c.failRequest(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功发布求购需求",
		"data":    request,
	})
}

// UpdatePropertyRequest 更新求购需求，仅限归属用户。位置变化才重新解析地址。
// @Summary      Update Property Request
// @Tags         PropertyRequest
// @Accept       json
// @Produce      json
// @Param        id path int true "Property Request ID" example:"1"
// @Param        request body PropertyRequestRequest true "Updated request fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse  "Request belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_requests/{id} [put]
// @Security     BearerAuth
func (c *PropertyRequestController) UpdatePropertyRequest() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req PropertyRequestRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	if _, ok := c.ownedRequest(id); !ok {
		return
	}

	request, err := c.getRequestService().Update(id, services.PropertyRequestInput{
		PropertyTypeID:       req.PropertyTypeID,
		LookingForCategoryID: req.LookingForCategoryID,
		Location:             req.Location,
	})
	if err != nil {
		c.failRequest(err)
		return
	}

	response.Success(c.Context, request)
}

// DeletePropertyRequest 删除求购需求，仅限归属用户
// @Summary      Delete Property Request
// @Tags         PropertyRequest
// @Produce      json
// @Param        id path int true "Property Request ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse  "Request belongs to another user"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/property_requests/{id} [delete]
// @Security     BearerAuth
func (c *PropertyRequestController) DeletePropertyRequest() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	if _, ok := c.ownedRequest(id); !ok {
		return
	}

	if err := c.getRequestService().Delete(id); err != nil {
		c.failRequest(err)
		return
	}

	response.Success(c.Context, gin.H{"message": "成功删除求购需求"})
}

// SearchPropertyRequests 宽匹配搜索全站求购需求
// @Summary      Broad Search Property Requests
// @Description  Search all requests by exact location, property type name or looking-for category name; a match on any field qualifies, results deduplicated
// @Tags         PropertyRequest
// @Accept       json
// @Produce      json
// @Param        request body RequestSearchRequest true "Search criteria"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_requests/search [post]
// @Security     BearerAuth
func (c *PropertyRequestController) SearchPropertyRequests() {
	var req RequestSearchRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	requests, err := c.getRequestService().BroadSearch(req.Location, req.PropertyType, req.LookingForCategory)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"total": len(requests),
		"data":  requests,
	})
}

// GetPropertyRequestMarkers 获取当前用户求购需求的地图标记
// @Summary      Get Property Request Map Markers
// @Tags         PropertyRequest
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/property_requests/map [get]
// @Security     BearerAuth
func (c *PropertyRequestController) GetPropertyRequestMarkers() {
	ownerID := middleware.CurrentUserID(c.Context)
	svc := c.getRequestService()

	markers, err := svc.MarkersByOwner(ownerID)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"markers": markers,
	})
}

// HandlePropertyRequestFunc 返回一个处理求购需求请求的Gin处理函数
func HandlePropertyRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPropertyRequestController(ctx)

		switch method {
		case "getPropertyRequests":
			controller.GetPropertyRequests()
		case "getPropertyRequest":
			controller.GetPropertyRequest()
		case "createPropertyRequest":
			controller.CreatePropertyRequest()
		case "updatePropertyRequest":
			controller.UpdatePropertyRequest()
		case "deletePropertyRequest":
			controller.DeletePropertyRequest()
		case "searchPropertyRequests":
			controller.SearchPropertyRequests()
		case "getPropertyRequestMarkers":
			controller.GetPropertyRequestMarkers()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
