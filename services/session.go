package services

// Session 当前请求的会话信息，由认证中间件从JWT声明中还原。
// 所有业务操作以OrganizationID作为隐式过滤条件。
type Session struct {
	UserID         uint
	OrganizationID uint
	Role           string
	Email          string
}
