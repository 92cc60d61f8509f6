package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/models"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// OwnershipTypeController 处理产权类型参考数据请求
type OwnershipTypeController struct {
	BaseControllerImpl
}

// NewOwnershipTypeController 创建一个新的产权类型控制器
func (f *ControllerFactory) NewOwnershipTypeController(ctx *gin.Context) *OwnershipTypeController {
	return &OwnershipTypeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetOwnershipTypes 获取产权类型列表，支持不区分大小写的子串搜索
// @Summary      Get Ownership Type List
// @Description  Get all ownership types with pagination; optional case-insensitive substring search by name
// @Tags         OwnershipType
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Param        search query string false "Substring to match against name" example:"free"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /ownership_types [get]
func (c *OwnershipTypeController) GetOwnershipTypes() {
	p := c.pagination()
	search := c.Context.Query("search")

	svc := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService)

	var (
		types interface{}
		total int64
		err   error
	)
	if search != "" {
		types, total, err = svc.Search(search, p)
	} else {
		types, total, err = svc.GetAll(p)
	}
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       types,
	})
}

// GetOwnershipType 获取单个产权类型
// @Summary      Get Ownership Type By ID
// @Tags         OwnershipType
// @Produce      json
// @Param        id path int true "Ownership Type ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /ownership_types/{id} [get]
func (c *OwnershipTypeController) GetOwnershipType() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService)
	ot, err := svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReferenceNotFound) {
			response.Fail(c.Context, code.ErrReferenceNotFound, nil)
		} else {
			response.ServerError(c.Context)
		}
		return
	}

	response.Success(c.Context, ot)
}

// CreateOwnershipType 新增产权类型
// @Summary      Create Ownership Type
// @Description  Create a new ownership type; name must be unique ignoring case
// @Tags         OwnershipType
// @Accept       json
// @Produce      json
// @Param        request body ReferenceNameRequest true "Ownership type name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed or name taken"
// @Router       /admin/ownership_types [post]
// @Security     BearerAuth
func (c *OwnershipTypeController) CreateOwnershipType() {
	var req ReferenceNameRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	svc := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService)
	ot, err := svc.Create(req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功创建产权类型",
		"data":    ot,
	})
}

// UpdateOwnershipType 更新产权类型名称
// @Summary      Update Ownership Type
// @Tags         OwnershipType
// @Accept       json
// @Produce      json
// @Param        id path int true "Ownership Type ID" example:"1"
// @Param        request body ReferenceNameRequest true "New name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/ownership_types/{id} [put]
// @Security     BearerAuth
func (c *OwnershipTypeController) UpdateOwnershipType() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req ReferenceNameRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	svc := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService)
	ot, err := svc.Update(id, req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, ot)
}

// DeleteOwnershipType 删除产权类型
// @Summary      Delete Ownership Type
// @Tags         OwnershipType
// @Produce      json
// @Param        id path int true "Ownership Type ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/ownership_types/{id} [delete]
// @Security     BearerAuth
func (c *OwnershipTypeController) DeleteOwnershipType() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("ownership_type").(services.InterfaceOwnershipTypeService)
	if err := svc.Delete(id); err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, nil)
}

func (c *OwnershipTypeController) failReference(err error) {
	var verr services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		response.FailWithMessage(c.Context, code.ErrValidation, verr.Error(), verr)
	case errors.Is(err, services.ErrReferenceNameTaken):
		response.Fail(c.Context, code.ErrReferenceNameTaken, nil)
	case errors.Is(err, services.ErrReferenceNotFound):
		response.Fail(c.Context, code.ErrReferenceNotFound, nil)
	default:
		response.ServerError(c.Context)
	}
}

// HandleOwnershipTypeFunc 返回一个处理产权类型请求的Gin处理函数
func HandleOwnershipTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewOwnershipTypeController(ctx)

		switch method {
		case "getOwnershipTypes":
			controller.GetOwnershipTypes()
		case "getOwnershipType":
			controller.GetOwnershipType()
		case "createOwnershipType":
			controller.CreateOwnershipType()
		case "updateOwnershipType":
			controller.UpdateOwnershipType()
		case "deleteOwnershipType":
			controller.DeleteOwnershipType()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
