package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cvsite/internal/api/middleware"
	"cvsite/internal/database"
	"cvsite/internal/email"
	"cvsite/internal/ratelimit"
	"cvsite/internal/sitegen"
)

// ContactHandler 处理公开的联系表单。
type ContactHandler struct {
	db      *gorm.DB
	mailer  email.Sender
	limiter *ratelimit.Limiter
	to      string
}

func NewContactHandler(db *gorm.DB, mailer email.Sender, limiter *ratelimit.Limiter, to string) *ContactHandler {
	return &ContactHandler{db: db, mailer: mailer, limiter: limiter, to: strings.TrimSpace(to)}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
	// Website 是蜜罐字段，正常用户看不到也不会填写。
	Website string `json:"website"`
}

// Submit 限流 → 校验 → 蜜罐 → 入库 → 发送邮件。
func (h *ContactHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	ip := c.ClientIP()
	logger := middleware.LoggerFromContext(c).With(slog.String("client_ip", ip))

	if h.limiter != nil {
		decision, err := h.limiter.Allow(ctx, ip)
		switch {
		case err != nil:
			logger.Warn("contact rate limit unavailable", slog.Any("error", err))
		case !decision.Allowed:
			c.Header("Retry-After", fmt.Sprintf("%d", int(decision.Window.Seconds())))
			TooManyRequests(c, "Too many requests. Please try again later.")
			return
		}
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	if strings.TrimSpace(req.Website) != "" {
		logger.Info("contact honeypot triggered")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	msg := database.ContactMessage{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		ClientIP: ip,
	}
	if err := h.db.WithContext(ctx).Create(&msg).Error; err != nil {
		logger.Error("store contact message failed", slog.Any("error", err))
		Internal(c, "failed to save message")
		return
	}

	if h.mailer == nil || h.to == "" {
		logger.Warn("contact email not configured, message stored only", slog.Uint64("message_id", uint64(msg.ID)))
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	id, err := h.mailer.Send(ctx, contactEmail(msg, h.to))
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			logger.Warn("contact email not configured, message stored only", slog.Uint64("message_id", uint64(msg.ID)))
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		logger.Error("send contact email failed", slog.Any("error", err))
		Internal(c, "failed to send message")
		return
	}

	if err := h.db.WithContext(ctx).Model(&msg).Update("delivered", true).Error; err != nil {
		logger.Warn("mark contact message delivered failed", slog.Any("error", err))
	}
	logger.Info("contact message sent", slog.String("email_id", id))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func contactEmail(msg database.ContactMessage, to string) email.Message {
	subject := msg.Subject
	if subject == "" {
		subject = "New message from " + msg.Name
	}
	text := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\n%s\n", msg.Name, msg.Email, msg.Subject, msg.Message)
	html := fmt.Sprintf("<p><strong>Name:</strong> %s</p>\n<p><strong>Email:</strong> %s</p>\n<p><strong>Subject:</strong> %s</p>\n<p>%s</p>\n",
		sitegen.Text(msg.Name), sitegen.Text(msg.Email), sitegen.Text(msg.Subject), sitegen.Multiline(msg.Message))

	return email.Message{
		To:      []string{to},
		ReplyTo: msg.Email,
		Subject: "[Contact] " + subject,
		Text:    text,
		HTML:    html,
	}
}
