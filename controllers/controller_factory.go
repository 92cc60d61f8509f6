package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"homes-http-service/models"
	"homes-http-service/services/container"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// pagination 从查询参数解析分页
func (c *BaseControllerImpl) pagination() models.PaginationQuery {
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Context.DefaultQuery("per_page", "0"))
	return models.NewPaginationQuery(page, perPage)
}

// pathID 解析URL路径中的ID参数
func (c *BaseControllerImpl) pathID() (uint, bool) {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// ControllerFactory 用于创建控制器的工厂
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory 创建一个新的控制器工厂
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}
