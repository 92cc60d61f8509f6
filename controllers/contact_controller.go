package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/middleware"
	"homes-http-service/models"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// ContactController 处理通讯录导入相关的请求
type ContactController struct {
	BaseControllerImpl
}

// NewContactController 创建一个新的通讯录控制器
func (f *ControllerFactory) NewContactController(ctx *gin.Context) *ContactController {
	return &ContactController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

func (c *ContactController) getContactService() services.InterfaceContactService {
	return c.Container.GetService("contact").(services.InterfaceContactService)
}

// GetContacts 获取当前用户已导入的联系人列表
// @Summary      Get My Contacts
// @Tags         Contact
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        per_page query int false "Items per page, default is 3" example:"3"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users/contacts [get]
// @Security     BearerAuth
func (c *ContactController) GetContacts() {
	p := c.pagination()

	contacts, total, err := c.getContactService().ListByOwner(middleware.CurrentUserID(c.Context), p)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"pagination": models.NewPaginationResult(total, p),
		"data":       contacts,
	})
}

// ImportContacts 从上传的通讯录导出文件导入联系人。
// source取值 gmail/yahoo/outlook，gmail与yahoo为CSV导出，outlook为xlsx导出。
// @Summary      Import Contacts
// @Description  Import contacts from an uploaded address book export; source is one of gmail, yahoo, outlook
// @Tags         Contact
// @Accept       multipart/form-data
// @Produce      json
// @Param        source formData string true "Address book source" example:"gmail"
// @Param        file formData file true "Exported contacts file"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Unsupported source or unreadable file"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/contacts/import [post]
// @Security     BearerAuth
func (c *ContactController) ImportContacts() {
	source, err := services.ParseImportSource(c.Context.PostForm("source"))
	if err != nil {
		response.Fail(c.Context, code.ErrImportSourceInvalid, nil)
		return
	}

	fileHeader, err := c.Context.FormFile("file")
	if err != nil {
		response.ParamError(c.Context, "缺少通讯录文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c.Context, code.ErrImportFileInvalid, nil)
		return
	}
	defer file.Close()

	batchID, count, err := c.getContactService().Import(middleware.CurrentUserID(c.Context), source, file)
	if err != nil {
		if errors.Is(err, services.ErrImportSourceInvalid) {
			response.Fail(c.Context, code.ErrImportSourceInvalid, nil)
		} else {
			response.Fail(c.Context, code.ErrImportFileInvalid, nil)
		}
		return
	}

	response.Success(c.Context, gin.H{
		"batch_id": batchID,
		"imported": count,
		"source":   source.String(),
	})
}

// HandleContactFunc 返回一个处理通讯录请求的Gin处理函数
func HandleContactFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewContactController(ctx)

		switch method {
		case "getContacts":
			controller.GetContacts()
		case "importContacts":
			controller.ImportContacts()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
