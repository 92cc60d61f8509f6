package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrProfileAlreadyExist:   "用户资料已存在",
	ErrProfileNotFound:       "用户资料不存在",

	// 参考数据相关错误码
	ErrReferenceNotFound:  "参考数据不存在",
	ErrReferenceNameTaken: "名称已存在",

	// 房源相关错误码
	ErrListingNotFound: "房源不存在",
	ErrListingNotOwner: "房源不属于当前用户",

	// 联系人导入相关错误码
	ErrImportSourceInvalid: "不支持的通讯录来源",
	ErrImportFileInvalid:   "通讯录文件无法解析",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrProfileAlreadyExist:   StatusBadRequest,
	ErrProfileNotFound:       StatusNotFound,

	// 参考数据相关错误码
	ErrReferenceNotFound:  StatusNotFound,
	ErrReferenceNameTaken: StatusBadRequest,

	// 房源相关错误码
	ErrListingNotFound: StatusNotFound,
	ErrListingNotOwner: StatusForbidden,

	// 联系人导入相关错误码
	ErrImportSourceInvalid: StatusBadRequest,
	ErrImportFileInvalid:   StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
