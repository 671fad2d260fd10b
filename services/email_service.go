package services

import (
	"estate-management-service/config"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// InterfaceEmailService 定义邮件服务接口。
// 所有调用方必须把发送失败当作非致命错误处理。
type InterfaceEmailService interface {
	Send(to string, subject string, htmlBody string) bool
}

// NewEmailService 根据配置选择邮件提供方，凭证缺失时回退到控制台输出
func NewEmailService(cfg *config.Config) InterfaceEmailService {
	switch cfg.EmailProvider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			config.Warning("RESEND_API_KEY 未配置，邮件服务回退到控制台输出")
			return &ConsoleEmailService{}
		}
		return NewResendEmailService(cfg)
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			config.Warning("SMTP 凭证不完整，邮件服务回退到控制台输出")
			return &ConsoleEmailService{}
		}
		return NewSMTPEmailService(cfg)
	default:
		return &ConsoleEmailService{}
	}
}

// ConsoleEmailService 把邮件打印到日志，用于开发环境
type ConsoleEmailService struct{}

// Send 打印邮件内容并视为发送成功
func (s *ConsoleEmailService) Send(to string, subject string, htmlBody string) bool {
	config.Info("--- EMAIL SENT (CONSOLE) ---")
	config.Info("To: %s", to)
	config.Info("Subject: %s", subject)
	config.Info("Body: %s", htmlBody)
	return true
}

// SMTPEmailService 通过SMTP服务器发送邮件
type SMTPEmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPEmailService 创建SMTP邮件服务
func NewSMTPEmailService(cfg *config.Config) *SMTPEmailService {
	return &SMTPEmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
}

// Send 通过SMTP发送HTML邮件
func (s *SMTPEmailService) Send(to string, subject string, htmlBody string) bool {
	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, []byte(msg.String())); err != nil {
		config.Error("SMTP发送邮件失败: %v", err)
		return false
	}
	return true
}

// ResendEmailService 通过Resend风格的HTTP API发送邮件
type ResendEmailService struct {
	client *resty.Client
	from   string
}

// NewResendEmailService 创建API邮件服务
func NewResendEmailService(cfg *config.Config) *ResendEmailService {
	client := resty.New().
		SetBaseURL("https://api.resend.com").
		SetAuthToken(cfg.ResendAPIKey).
		SetTimeout(10 * time.Second)

	return &ResendEmailService{
		client: client,
		from:   cfg.EmailFrom,
	}
}

// Send 调用HTTP API发送邮件
func (s *ResendEmailService) Send(to string, subject string, htmlBody string) bool {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"from":    s.from,
			"to":      []string{to},
			"subject": subject,
			"html":    htmlBody,
		}).
		Post("/emails")

	if err != nil {
		config.Error("调用邮件API失败: %v", err)
		return false
	}
	if resp.IsError() {
		config.Error("邮件API返回错误: %d %s", resp.StatusCode(), resp.String())
		return false
	}
	return true
}

// 邮件模板

// WelcomeEmailBody 租户门户开户欢迎邮件
func WelcomeEmailBody(name string, tempPassword string) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`)
	sb.WriteString("<h1>Welcome to Estate Management</h1>")
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", name))
	sb.WriteString("<p>Your account has been created successfully.</p>")
	if tempPassword != "" {
		sb.WriteString(fmt.Sprintf("<p>Your temporary password is: <strong>%s</strong></p>", tempPassword))
		sb.WriteString("<p>Please log in and change it immediately.</p>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

// PaymentReceiptBody 收款回执邮件
func PaymentReceiptBody(amount string, date time.Time, method string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`+
		"<h1>Payment Receipt</h1>"+
		"<p>We received your payment.</p>"+
		"<ul><li><strong>Amount:</strong> $%s</li>"+
		"<li><strong>Date:</strong> %s</li>"+
		"<li><strong>Method:</strong> %s</li></ul>"+
		"<p>Thank you!</p></div>",
		amount, date.Format("2006-01-02"), method)
}

// MaintenanceUpdateBody 维修工单状态变更邮件
func MaintenanceUpdateBody(title string, status string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`+
		"<h1>Maintenance Update</h1>"+
		`<p>The status of your request <strong>"%s"</strong> has been updated.</p>`+
		"<p><strong>New Status:</strong> %s</p>"+
		"<p>Log in to view details.</p></div>",
		title, status)
}

// RentReminderBody 租金提醒邮件，overdue为true时表示逾期提醒
func RentReminderBody(amount string, dueDate time.Time, overdue bool) string {
	if overdue {
		return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`+
			"<h1>Rent Overdue</h1>"+
			"<p>Your rent payment of <strong>$%s</strong> was due on %s and is still pending.</p>"+
			"<p>Please make the payment as soon as possible.</p></div>",
			amount, dueDate.Format("2006-01-02"))
	}
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`+
		"<h1>Upcoming Rent</h1>"+
		"<p>Your rent payment of <strong>$%s</strong> is due on %s.</p>"+
		"<p>Thank you for paying on time.</p></div>",
		amount, dueDate.Format("2006-01-02"))
}
