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

	// 用户与组织相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrOrganizationNotFound:  "组织不存在",

	// 物业与单元相关错误码
	ErrPropertyNotFound: "物业不存在",
	ErrUnitNotFound:     "单元不存在",
	ErrUnitNotVacant:    "单元非空置",

	// 承租人与租约相关错误码
	ErrTenantNotFound:     "承租人不存在",
	ErrTenantAlreadyExist: "承租人已存在",
	ErrLeaseNotFound:      "租约不存在",

	// 财务相关错误码
	ErrInvoiceNotFound: "账单不存在",
	ErrPaymentFailed:   "收款记录失败",

	// 维修相关错误码
	ErrRequestNotFound:  "维修工单不存在",
	ErrScheduleNotFound: "维护计划不存在",

	// 消息相关错误码
	ErrConversationNotFound: "会话不存在",
	ErrRecipientRequired:    "新会话必须指定接收人",

	// 存储与文档相关错误码
	ErrDocumentNotFound: "文档不存在",
	ErrUploadFailed:     "文件上传失败",

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

	// 用户与组织相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrOrganizationNotFound:  StatusNotFound,

	// 物业与单元相关错误码
	ErrPropertyNotFound: StatusNotFound,
	ErrUnitNotFound:     StatusNotFound,
	ErrUnitNotVacant:    StatusBadRequest,

	// 承租人与租约相关错误码
	ErrTenantNotFound:     StatusNotFound,
	ErrTenantAlreadyExist: StatusBadRequest,
	ErrLeaseNotFound:      StatusNotFound,

	// 财务相关错误码
	ErrInvoiceNotFound: StatusNotFound,
	ErrPaymentFailed:   StatusInternalServerError,

	// 维修相关错误码
	ErrRequestNotFound:  StatusNotFound,
	ErrScheduleNotFound: StatusNotFound,

	// 消息相关错误码
	ErrConversationNotFound: StatusNotFound,
	ErrRecipientRequired:    StatusBadRequest,

	// 存储与文档相关错误码
	ErrDocumentNotFound: StatusNotFound,
	ErrUploadFailed:     StatusInternalServerError,

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
