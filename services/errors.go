package services

import (
	"errors"
	"sort"
	"strings"
)

// 服务层哨兵错误，控制器据此映射业务错误码
var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserAlreadyExist    = errors.New("用户已存在")
	ErrPasswordIncorrect   = errors.New("用户密码错误")
	ErrProfileNotFound     = errors.New("用户资料不存在")
	ErrProfileAlreadyExist = errors.New("用户资料已存在")
	ErrReferenceNotFound   = errors.New("参考数据不存在")
	ErrReferenceNameTaken  = errors.New("名称已存在")
	ErrListingNotFound     = errors.New("房源不存在")
	ErrAddressUnresolved   = errors.New("地址无法解析")
	ErrImportSourceInvalid = errors.New("不支持的通讯录来源")
)

// ValidationErrors 按字段收集的校验错误，校验失败时不落库
type ValidationErrors map[string]string

// Error 实现error接口，按字段名排序拼接消息
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return strings.Join(parts, "; ")
}
