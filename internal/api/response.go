package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cvsite/internal/api/middleware"
	"cvsite/internal/planner"
	"cvsite/internal/site"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithDetails 在 error 之外附带字段级的校验信息。
func ErrorWithDetails(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, gin.H{"error": msg, "details": details})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func Unauthorized(c *gin.Context)                   { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string)         { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)          { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)           { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)           { Error(c, http.StatusConflict, msg) }
func TooManyRequests(c *gin.Context, msg string)    { Error(c, http.StatusTooManyRequests, msg) }
func Internal(c *gin.Context, msg string)           { Error(c, http.StatusInternalServerError, msg) }
func ServiceUnavailable(c *gin.Context, msg string) { Error(c, http.StatusServiceUnavailable, msg) }

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindingError 把 gin 绑定错误转换为 400；validator 错误带上 details。
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		ErrorWithDetails(c, http.StatusBadRequest, "invalid request", details)
		return
	}
	BadRequest(c, "invalid request body")
}

// ServiceError 把站点服务的哨兵错误映射为 HTTP 状态码，其余按 500 记录日志。
func ServiceError(c *gin.Context, err error) {
	var verr *planner.ValidationError
	switch {
	case errors.Is(err, site.ErrNotFound):
		NotFound(c, "site not found")
	case errors.Is(err, site.ErrForbidden):
		Forbidden(c, "access denied")
	case errors.Is(err, site.ErrRevisionLimit):
		Forbidden(c, err.Error())
	case errors.Is(err, site.ErrGenerationInProgress),
		errors.Is(err, site.ErrSubdomainTaken):
		Conflict(c, err.Error())
	case errors.Is(err, site.ErrInvalidSubdomain),
		errors.Is(err, site.ErrReservedSubdomain),
		errors.Is(err, site.ErrNoCV),
		errors.Is(err, site.ErrNoPlan),
		errors.Is(err, site.ErrNotGenerated),
		errors.Is(err, site.ErrNotPublished):
		BadRequest(c, err.Error())
	case errors.As(err, &verr):
		middleware.LoggerFromContext(c).Warn("design plan rejected", slog.Any("problems", verr.Problems))
		ErrorWithDetails(c, http.StatusInternalServerError, "the generated design plan was invalid, please try again", verr.Problems)
	default:
		middleware.LoggerFromContext(c).Error("request failed", slog.Any("error", err))
		Internal(c, err.Error())
	}
}
