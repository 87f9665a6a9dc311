package site

import (
	"regexp"
	"strings"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,61}[a-z0-9])$`)

var reservedSubdomains = map[string]struct{}{
	"www":       {},
	"api":       {},
	"app":       {},
	"admin":     {},
	"mail":      {},
	"smtp":      {},
	"ftp":       {},
	"dashboard": {},
	"static":    {},
	"assets":    {},
	"cdn":       {},
	"blog":      {},
	"docs":      {},
	"help":      {},
	"support":   {},
	"status":    {},
	"preview":   {},
}

// NormalizeSubdomain 去除空白并转为小写。
func NormalizeSubdomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateSubdomain 检查子域名是否为合法的 DNS 标签且未被保留。
func ValidateSubdomain(subdomain string) error {
	if !subdomainPattern.MatchString(subdomain) || strings.Contains(subdomain, "--") {
		return ErrInvalidSubdomain
	}
	if _, ok := reservedSubdomains[subdomain]; ok {
		return ErrReservedSubdomain
	}
	return nil
}

// PublicURL 返回站点的公开访问地址。
func PublicURL(subdomain, baseDomain string) string {
	if subdomain == "" {
		return ""
	}
	if baseDomain == "" {
		baseDomain = "localhost"
	}
	return "https://" + subdomain + "." + baseDomain
}
