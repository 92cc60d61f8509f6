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

// JWTController 处理身份验证请求
type JWTController struct {
	BaseControllerImpl
}

// NewJWTController 创建一个新的认证控制器
func (f *ControllerFactory) NewJWTController(ctx *gin.Context) *JWTController {
	return &JWTController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// RegisterRequest 表示用户注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"ravi@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginRequest 表示用户登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ravi@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AdminLoginRequest 表示管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"101002"`
	Message string      `json:"message" example:"用户密码错误"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewJWTController(ctx)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "adminLogin":
			controller.AdminLogin()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// Register 处理用户注册
// @Summary      User Registration
// @Description  Register a new user account with email and password, returns JWT token on success
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      200  {object}  response.Response  "Success response with token"
// @Failure      400  {object}  ErrorResponse  "Validation failed or email taken"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/user/register [post]
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Register(req.Email, req.Password)
	if err != nil {
		var verr services.ValidationErrors
		switch {
		case errors.As(err, &verr):
			response.FailWithMessage(c.Context, code.ErrValidation, verr.Error(), verr)
		case errors.Is(err, services.ErrUserAlreadyExist):
			response.Fail(c.Context, code.ErrUserAlreadyExist, nil)
		default:
			response.ServerError(c.Context)
		}
		return
	}

	// 注册即登录
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user.ID, services.RoleUser)
	if err != nil {
		response.ServerError(c.Context)
		return
	}

	response.Success(c.Context, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       services.RoleUser,
		"created_at": user.CreatedAt,
	})
}

// Login 处理用户登录。登录成功后消费会话的return-to槽位，
// 在响应里带上登录前被拦截的路径，槽位随即清空。
// @Summary      User Login
// @Description  Authenticate a registered user and return JWT token, plus the path intercepted before login if any
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login parameters"
// @Success      200  {object}  response.Response  "Success response with token and redirect_to"
// @Failure      401  {object}  ErrorResponse  "Invalid email or password"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/user/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.Fail(c.Context, code.ErrUserNotFound, nil)
		case errors.Is(err, services.ErrPasswordIncorrect):
			response.Fail(c.Context, code.ErrUserPasswordIncorrect, nil)
		default:
			response.ServerError(c.Context)
		}
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user.ID, services.RoleUser)
	if err != nil {
		response.ServerError(c.Context)
		return
	}

	// 取登录前被拦截的路径，一次性消费
	redirectTo := ""
	if redisService := c.Container.GetRedisService(); redisService != nil {
		if sessionID, cerr := c.Context.Cookie(middleware.SessionCookieName); cerr == nil && sessionID != "" {
			if path, rerr := redisService.ConsumeReturnTo(sessionID); rerr == nil {
				redirectTo = path
			}
		}
	}

	response.Success(c.Context, gin.H{
		"token":       token,
		"user_id":     user.ID,
		"email":       user.Email,
		"role":        services.RoleUser,
		"redirect_to": redirectTo,
		"created_at":  user.CreatedAt,
	})
}

// AdminLogin 处理系统管理员登录
// @Summary      Admin Login
// @Description  Authenticate a system admin and return JWT token with admin role
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body AdminLoginRequest true "Admin login parameters"
// @Success      200  {object}  response.Response  "Success response with token"
// @Failure      401  {object}  ErrorResponse  "Invalid username or password"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/admin/login [post]
func (c *JWTController) AdminLogin() {
	var req AdminLoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrPasswordIncorrect):
			response.Fail(c.Context, code.ErrUserPasswordIncorrect, nil)
		default:
			response.ServerError(c.Context)
		}
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(admin.ID, services.RoleAdmin)
	if err != nil {
		response.ServerError(c.Context)
		return
	}

	response.Success(c.Context, gin.H{
		"token":      token,
		"user_id":    admin.ID,
		"role":       services.RoleAdmin,
		"username":   admin.Username,
		"created_at": admin.CreatedAt,
	})
}
