package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/middleware"
	"homes-http-service/models"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// DashboardController 处理用户首页聚合数据与账户操作
type DashboardController struct {
	BaseControllerImpl
}

// NewDashboardController 创建一个新的首页控制器
func (f *ControllerFactory) NewDashboardController(ctx *gin.Context) *DashboardController {
	return &DashboardController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetDashboard 获取用户首页聚合数据：参考数据下拉项、
// 当前用户的房源与求购需求首页（每页条数用默认值）。
// @Summary      Get Dashboard
// @Description  Aggregate view for the landing page: reference data for dropdowns plus the caller's first page of listings and requests
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/dashboard [get]
// @Security     BearerAuth
func (c *DashboardController) GetDashboard() {
	ownerID := middleware.CurrentUserID(c.Context)
	p := models.NewPaginationQuery(1, 0)
	full := models.NewPaginationQuery(1, models.MaxPerPage)

	propertyTypes, _, err := c.Container.GetService("property_type").(services.InterfacePropertyTypeService).GetAll(full)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	ownershipTypes, _, err := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService).GetAll(full)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	categories, _, err := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService).GetAll(full)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	listingService := c.Container.GetService("property_listing").(services.InterfacePropertyListingService)
	listings, listingTotal, err := listingService.ListByOwner(ownerID, p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	requestService := c.Container.GetService("property_request").(services.InterfacePropertyRequestService)
	requests, requestTotal, err := requestService.ListByOwner(ownerID, p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"property_types":         propertyTypes,
		"ownership_types":        ownershipTypes,
		"looking_for_categories": categories,
		"property_listings": gin.H{
			"pagination": models.NewPaginationResult(listingTotal, p),
			"data":       listings,
		},
		"property_requests": gin.H{
			"pagination": models.NewPaginationResult(requestTotal, p),
			"data":       requests,
		},
	})
}

// DeleteAccount 删除当前用户账户及其全部关联数据
// @Summary      Delete My Account
// @Description  Delete the caller's account together with profile, listings, requests and contacts
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/account [delete]
// @Security     BearerAuth
func (c *DashboardController) DeleteAccount() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.Delete(middleware.CurrentUserID(c.Context)); err != nil {
		response.ServerError(c.Context)
		return
	}

	response.Success(c.Context, gin.H{"message": "账户已删除"})
}

// HandleDashboardFunc 返回一个处理首页请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewDashboardController(ctx)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		case "deleteAccount":
			controller.DeleteAccount()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
