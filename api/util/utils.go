package apiutil

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetIPFromContext(c *gin.Context) (*string, error) {
	ip := c.Request.Header.Get("X-Real-IP")
	if len(ip) > 0 {
		return &ip, nil
	}

	ip = c.Request.Header.Get("CloudFront-Forwarded-Proto")
	if len(ip) > 0 {
		return &ip, nil
	}

	ip = c.Request.Header.Get("X-Forwarded-For")
	ipList := strings.Split(ip, ",")
	if len(ipList[0]) > 0 {
		return &ipList[0], nil
	}

	// If there is no "X-Real-IP", "CloudFront-Forwarded-Proto" or "X-Forwarded-For", get IP from "RemoteAddr"
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return nil, err
	}
	return &ip, nil
}

// SessionKeyFromContext identifies the browser session a request belongs
// to. Falls back to the client IP when the header is absent.
func SessionKeyFromContext(c *gin.Context) string {
	if key := c.GetHeader("X-Waxseal-Session"); key != "" {
		return key
	}
	ip, err := GetIPFromContext(c)
	if err != nil || ip == nil {
		return "anonymous"
	}
	return *ip
}
