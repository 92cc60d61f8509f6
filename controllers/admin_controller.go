package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/models"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// AdminController 处理管理员总览：全站房源/需求与用户列表
type AdminController struct {
	BaseControllerImpl
}

// NewAdminController 创建一个新的管理员控制器
func (f *ControllerFactory) NewAdminController(ctx *gin.Context) *AdminController {
	return &AdminController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetAdminDashboard 获取全站房源与求购需求，分页
// @Summary      Admin Dashboard
// @Description  All users' property listings and requests, paginated
// @Tags         Admin
// @Produce      json
// @Param        page      query  int  false  "Page number"
// @Param        per_page  query  int  false  "Items per page"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (c *AdminController) GetAdminDashboard() {
	p := c.pagination()

	listingService := c.Container.GetService("property_listing").(services.InterfacePropertyListingService)
	listings, listingTotal, err := listingService.ListAll(p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	requestService := c.Container.GetService("property_request").(services.InterfacePropertyRequestService)
	requests, requestTotal, err := requestService.ListAll(p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
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

// GetUsers 获取全部注册用户，分页
// @Summary      List Users
// @Description  All registered users, paginated
// @Tags         Admin
// @Produce      json
// @Param        page      query  int  false  "Page number"
// @Param        per_page  query  int  false  "Items per page"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/users [get]
// @Security     BearerAuth
func (c *AdminController) GetUsers() {
	p := c.pagination()

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.List(p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       users,
	})
}

// HandleAdminFunc 返回一个处理管理员总览请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAdminController(ctx)

		switch method {
		case "getAdminDashboard":
			controller.GetAdminDashboard()
		case "getUsers":
			controller.GetUsers()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
