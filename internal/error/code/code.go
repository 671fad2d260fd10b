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

// 用户与组织相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrOrganizationNotFound - 404: 组织不存在.
	ErrOrganizationNotFound
)

// 物业与单元相关错误码 (102xxx).
const (
	// ErrPropertyNotFound - 404: 物业不存在.
	ErrPropertyNotFound int = iota + 102000
	// ErrUnitNotFound - 404: 单元不存在.
	ErrUnitNotFound
	// ErrUnitNotVacant - 400: 单元非空置.
	ErrUnitNotVacant
)

// 承租人与租约相关错误码 (103xxx).
const (
	// ErrTenantNotFound - 404: 承租人不存在.
	ErrTenantNotFound int = iota + 103000
	// ErrTenantAlreadyExist - 400: 承租人已存在.
	ErrTenantAlreadyExist
	// ErrLeaseNotFound - 404: 租约不存在.
	ErrLeaseNotFound
)

// 财务相关错误码 (104xxx).
const (
	// ErrInvoiceNotFound - 404: 账单不存在.
	ErrInvoiceNotFound int = iota + 104000
	// ErrPaymentFailed - 500: 收款记录失败.
	ErrPaymentFailed
)

// 维修相关错误码 (105xxx).
const (
	// ErrRequestNotFound - 404: 维修工单不存在.
	ErrRequestNotFound int = iota + 105000
	// ErrScheduleNotFound - 404: 维护计划不存在.
	ErrScheduleNotFound
)

// 消息相关错误码 (106xxx).
const (
	// ErrConversationNotFound - 404: 会话不存在.
	ErrConversationNotFound int = iota + 106000
	// ErrRecipientRequired - 400: 新会话必须指定接收人.
	ErrRecipientRequired
)

// 存储与文档相关错误码 (107xxx).
const (
	// ErrDocumentNotFound - 404: 文档不存在.
	ErrDocumentNotFound int = iota + 107000
	// ErrUploadFailed - 500: 文件上传失败.
	ErrUploadFailed
)

// 数据库相关错误码 (108xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 108000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
