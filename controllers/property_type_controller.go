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

// PropertyTypeController 处理房屋类型参考数据请求
type PropertyTypeController struct {
	BaseControllerImpl
}

// NewPropertyTypeController 创建一个新的房屋类型控制器
func (f *ControllerFactory) NewPropertyTypeController(ctx *gin.Context) *PropertyTypeController {
	return &PropertyTypeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ReferenceNameRequest 表示创建/更新参考数据的请求体
type ReferenceNameRequest struct {
	Name string `json:"name" binding:"required" example:"Apartment"`
}

// GetPropertyTypes 获取房屋类型列表，支持不区分大小写的子串搜索
// @Summary      Get Property Type List
// @Description  Get all property types with pagination; optional case-insensitive substring search by name
// @Tags         PropertyType
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Param        search query string false "Substring to match against name" example:"apart"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /property_types [get]
func (c *PropertyTypeController) GetPropertyTypes() {
	p := c.pagination()
	search := c.Context.Query("search")

	svc := c.Container.GetService("property_type").(services.InterfacePropertyTypeService)

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

// GetPropertyType 获取单个房屋类型
// @Summary      Get Property Type By ID
// @Tags         PropertyType
// @Produce      json
// @Param        id path int true "Property Type ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /property_types/{id} [get]
func (c *PropertyTypeController) GetPropertyType() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("property_type").(services.InterfacePropertyTypeService)
	pt, err := svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReferenceNotFound) {
			response.Fail(c.Context, code.ErrReferenceNotFound, nil)
		} else {
			response.ServerError(c.Context)
		}
		return
	}

	response.Success(c.Context, pt)
}

// CreatePropertyType 新增房屋类型
// @Summary      Create Property Type
// @Description  Create a new property type; name must be unique ignoring case
// @Tags         PropertyType
// @Accept       json
// @Produce      json
// @Param        request body ReferenceNameRequest true "Property type name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed or name taken"
// @Router       /admin/property_types [post]
// @Security     BearerAuth
func (c *PropertyTypeController) CreatePropertyType() {
	var req ReferenceNameRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	svc := c.Container.GetService("property_type").(services.InterfacePropertyTypeService)
	pt, err := svc.Create(req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功创建房屋类型",
		"data":    pt,
	})
}

// UpdatePropertyType 更新房屋类型名称
// @Summary      Update Property Type
// @Tags         PropertyType
// @Accept       json
// @Produce      json
// @Param        id path int true "Property Type ID" example:"1"
// @Param        request body ReferenceNameRequest true "New name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/property_types/{id} [put]
// @Security     BearerAuth
func (c *PropertyTypeController) UpdatePropertyType() {
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

	svc := c.Container.GetService("property_type").(services.InterfacePropertyTypeService)
	pt, err := svc.Update(id, req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, pt)
}

// DeletePropertyType 删除房屋类型
// @Summary      Delete Property Type
// @Tags         PropertyType
// @Produce      json
// @Param        id path int true "Property Type ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/property_types/{id} [delete]
// @Security     BearerAuth
func (c *PropertyTypeController) DeletePropertyType() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("property_type").(services.InterfacePropertyTypeService)
	if err := svc.Delete(id); err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, nil)
}

// failReference 将参考数据服务错误映射为响应
func (c *PropertyTypeController) failReference(err error) {
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

// HandlePropertyTypeFunc 返回一个处理房屋类型请求的Gin处理函数
func HandlePropertyTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPropertyTypeController(ctx)

		switch method {
		case "getPropertyTypes":
			controller.GetPropertyTypes()
		case "getPropertyType":
			controller.GetPropertyType()
		case "createPropertyType":
			controller.CreatePropertyType()
		case "updatePropertyType":
			controller.UpdatePropertyType()
		case "deletePropertyType":
			controller.DeletePropertyType()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
