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

// LookingForCategoryController 处理求购类别参考数据请求
type LookingForCategoryController struct {
	BaseControllerImpl
}

// NewLookingForCategoryController 创建一个新的求购类别控制器
func (f *ControllerFactory) NewLookingForCategoryController(ctx *gin.Context) *LookingForCategoryController {
	return &LookingForCategoryController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetLookingForCategories 获取求购类别列表，支持不区分大小写的子串搜索
// @Summary      Get Looking For Category List
// @Description  Get all looking-for categories with pagination; optional case-insensitive substring search by name
// @Tags         LookingForCategory
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Param        search query string false "Substring to match against name" example:"rent"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /looking_for_categories [get]
func (c *LookingForCategoryController) GetLookingForCategories() {
	p := c.pagination()
	search := c.Context.Query("search")

	svc := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService)

	var (
		categories interface{}
		total      int64
		err        error
	)
	if search != "" {
		categories, total, err = svc.Search(search, p)
	} else {
		categories, total, err = svc.GetAll(p)
	}
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       categories,
	})
}

// GetLookingForCategory 获取单个求购类别
// @Summary      Get Looking For Category By ID
// @Tags         LookingForCategory
// @Produce      json
// @Param        id path int true "Looking For Category ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /looking_for_categories/{id} [get]
func (c *LookingForCategoryController) GetLookingForCategory() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService)
	category, err := svc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReferenceNotFound) {
			response.Fail(c.Context, code.ErrReferenceNotFound, nil)
		} else {
			response.ServerError(c.Context)
		}
		return
	}

	response.Success(c.Context, category)
}

// CreateLookingForCategory 新增求购类别
// @Summary      Create Looking For Category
// @Description  Create a new looking-for category; name must be unique ignoring case
// @Tags         LookingForCategory
// @Accept       json
// @Produce      json
// @Param        request body ReferenceNameRequest true "Category name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed or name taken"
// @Router       /admin/looking_for_categories [post]
// @Security     BearerAuth
func (c *LookingForCategoryController) CreateLookingForCategory() {
	var req ReferenceNameRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	svc := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService)
	category, err := svc.Create(req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功创建求购类别",
		"data":    category,
	})
}

// UpdateLookingForCategory 更新求购类别名称
// @Summary      Update Looking For Category
// @Tags         LookingForCategory
// @Accept       json
// @Produce      json
// @Param        id path int true "Looking For Category ID" example:"1"
// @Param        request body ReferenceNameRequest true "New name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/looking_for_categories/{id} [put]
// @Security     BearerAuth
func (c *LookingForCategoryController) UpdateLookingForCategory() {
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

	svc := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService)
	category, err := svc.Update(id, req.Name)
	if err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, category)
}

// DeleteLookingForCategory 删除求购类别
// @Summary      Delete Looking For Category
// @Tags         LookingForCategory
// @Produce      json
// @Param        id path int true "Looking For Category ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/looking_for_categories/{id} [delete]
// @Security     BearerAuth
func (c *LookingForCategoryController) DeleteLookingForCategory() {
	id, ok := c.pathID()
	if !ok {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	svc := c.Container.GetService("looking_for_category").(services.InterfaceLookingForCategoryService)
	if err := svc.Delete(id); err != nil {
		c.failReference(err)
		return
	}

	response.Success(c.Context, nil)
}

func (c *LookingForCategoryController) failReference(err error) {
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

// HandleLookingForCategoryFunc 返回一个处理求购类别请求的Gin处理函数
func HandleLookingForCategoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewLookingForCategoryController(ctx)

		switch method {
		case "getLookingForCategories":
			controller.GetLookingForCategories()
		case "getLookingForCategory":
			controller.GetLookingForCategory()
		case "createLookingForCategory":
			controller.CreateLookingForCategory()
		case "updateLookingForCategory":
			controller.UpdateLookingForCategory()
		case "deleteLookingForCategory":
			controller.DeleteLookingForCategory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
