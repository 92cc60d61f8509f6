package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrProfileAlreadyExist - 400: 用户资料已存在.
	ErrProfileAlreadyExist
	// ErrProfileNotFound - 404: 用户资料不存在.
	ErrProfileNotFound
)

// 参考数据相关错误码 (102xxx).
const (
	// ErrReferenceNotFound - 404: 参考数据不存在.
	ErrReferenceNotFound int = iota + 102000
	// ErrReferenceNameTaken - 400: 名称已存在（忽略大小写）.
	ErrReferenceNameTaken
)

// 房源相关错误码 (103xxx).
const (
	// ErrListingNotFound - 404: 房源不存在.
	ErrListingNotFound int = iota + 103000
	// ErrListingNotOwner - 403: 房源不属于当前用户.
	ErrListingNotOwner
)

// 联系人导入相关错误码 (104xxx).
const (
	// ErrImportSourceInvalid - 400: 不支持的通讯录来源.
	ErrImportSourceInvalid int = iota + 104000
	// ErrImportFileInvalid - 400: 通讯录文件无法解析.
	ErrImportFileInvalid
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
