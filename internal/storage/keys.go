package storage

import (
	"fmt"
	"strings"
	"time"
)

// 站点静态文件名。
const (
	SiteHTML    = "index.html"
	SiteCSS     = "styles.css"
	SiteJS      = "script.js"
	SitePreview = "preview.jpg"
)

// PortfolioKey 返回作品图片的对象键：users/{userId}/portfolio/portfolio-{unixMillis}.{ext}
func PortfolioKey(userID uint, at time.Time, ext string) string {
	return fmt.Sprintf("users/%d/portfolio/portfolio-%d.%s", userID, at.UnixMilli(), ext)
}

// ProfilePhotoKey 返回头像的对象键：users/{userId}/profile/profile-photo-{unixMillis}.{ext}
func ProfilePhotoKey(userID uint, at time.Time, ext string) string {
	return fmt.Sprintf("users/%d/profile/profile-photo-%d.%s", userID, at.UnixMilli(), ext)
}

// SitePrefix 返回站点文件所在的前缀（以 / 结尾）。
func SitePrefix(userID, siteID uint) string {
	return fmt.Sprintf("users/%d/site/%d/", userID, siteID)
}

// SiteObjectKey 返回站点内某个文件的对象键。
func SiteObjectKey(userID, siteID uint, name string) string {
	return SitePrefix(userID, siteID) + name
}

// UserPrefix 返回用户全部对象的前缀。
func UserPrefix(userID uint) string {
	return fmt.Sprintf("users/%d/", userID)
}

// ExtensionForMIME 返回允许的图片类型对应的扩展名；不支持时返回空串。
func ExtensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	}
	return ""
}

// PublicURL 拼接公开地址。
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// KeyFromPublicURL 去掉公开地址前缀得到对象键。
func KeyFromPublicURL(base, raw string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if base == "" || !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(raw, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// OwnedBy 判断对象键是否位于该用户的目录下。
func OwnedBy(key string, userID uint) bool {
	return strings.HasPrefix(key, UserPrefix(userID))
}
