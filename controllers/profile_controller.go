package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-http-service/internal/error/code"
	"homes-http-service/internal/error/response"
	"homes-http-service/middleware"
	"homes-http-service/services"
	"homes-http-service/services/container"
)

// ProfileController 处理用户资料相关的请求
type ProfileController struct {
	BaseControllerImpl
}

// NewProfileController 创建一个新的用户资料控制器
func (f *ControllerFactory) NewProfileController(ctx *gin.Context) *ProfileController {
	return &ProfileController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ProfileRequest 表示创建/更新用户资料的请求体
type ProfileRequest struct {
	FirstName       string `json:"first_name" binding:"required" example:"Ravi"`
	LastName        string `json:"last_name" example:"Kumar"`
	DateOfBirth     string `json:"date_of_birth" example:"1990-04-12"`
	Gender          string `json:"gender" example:"male"`
	MobileNumber    string `json:"mobile_number" example:"9848012345"`
	AlternateNumber string `json:"alternate_number" example:"9848054321"`
	WorkLocation    string `json:"work_location" example:"Hitech City, Hyderabad"`
	Employer        string `json:"employer" example:"Acme Software"`
}

func (c *ProfileController) getProfileService() services.InterfaceProfileService {
	return c.Container.GetService("profile").(services.InterfaceProfileService)
}

func (c *ProfileController) profileInput(req ProfileRequest) services.ProfileInput {
	return services.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DateOfBirth:     req.DateOfBirth,
		Gender:          req.Gender,
		MobileNumber:    req.MobileNumber,
		AlternateNumber: req.AlternateNumber,
		WorkLocation:    req.WorkLocation,
		Employer:        req.Employer,
	}
}

func (c *ProfileController) failProfile(err error) {
	var verr services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		response.FailWithMessage(c.Context, code.ErrValidation, verr.Error(), verr)
	case errors.Is(err, services.ErrProfileAlreadyExist):
		response.Fail(c.Context, code.ErrProfileAlreadyExist, nil)
	case errors.Is(err, services.ErrProfileNotFound):
		response.Fail(c.Context, code.ErrProfileNotFound, nil)
	default:
		response.ServerError(c.Context)
	}
}

// GetProfile 获取当前用户的资料
// @Summary      Get My Profile
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse  "Profile not created yet"
// @Router       /users/profile [get]
// @Security     BearerAuth
func (c *ProfileController) GetProfile() {
	profile, err := c.getProfileService().GetByUserID(middleware.CurrentUserID(c.Context))
	if err != nil {
		c.failProfile(err)
		return
	}

	markerData := gin.H{
		"profile": profile,
	}
	if marker := profile.MapMarker(); marker != nil {
		markerData["marker"] = marker
	}

	response.Success(c.Context, markerData)
}

// CreateProfile 创建当前用户的资料，每个用户至多一份。
// 工作地点解析成功则写入坐标，失败不阻断保存。
// @Summary      Create My Profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body ProfileRequest true "Profile fields"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed or profile already exists"
// @Router       /users/profile [post]
// @Security     BearerAuth
func (c *ProfileController) CreateProfile() {
	var req ProfileRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	profile, err := c.getProfileService().Create(middleware.CurrentUserID(c.Context), c.profileInput(req))
	if err != nil {
		c.failProfile(err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "成功创建用户资料",
		"data":    profile,
	})
}

// UpdateProfile 更新当前用户的资料。工作地点变化才重新解析地址。
// @Summary      Update My Profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body ProfileRequest true "Updated profile fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Validation failed"
// @Failure      404  {object}  ErrorResponse  "Profile not created yet"
// @Router       /users/profile [put]
// @Security     BearerAuth
func (c *ProfileController) UpdateProfile() {
	var req ProfileRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	profile, err := c.getProfileService().Update(middleware.CurrentUserID(c.Context), c.profileInput(req))
	if err != nil {
		c.failProfile(err)
		return
	}

	response.Success(c.Context, profile)
}

// HandleProfileFunc 返回一个处理用户资料请求的Gin处理函数
func HandleProfileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewProfileController(ctx)

		switch method {
		case "getProfile":
			controller.GetProfile()
		case "createProfile":
			controller.CreateProfile()
		case "updateProfile":
			controller.UpdateProfile()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
