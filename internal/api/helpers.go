package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cvsite/internal/api/middleware"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	return middleware.UserID(c)
}

// siteIDFromQuery 读取 ?siteId=，非法值返回 false。
func siteIDFromQuery(c *gin.Context) (uint, bool) {
	return parseID(c.Query("siteId"))
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
