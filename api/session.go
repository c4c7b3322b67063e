package api

import (
	"github.com/gin-gonic/gin"
	apiutil "github.com/waxsealmail/go-waxseal-server/api/util"
)

// sessionKey identifies which per-session campaign store a request targets
func sessionKey(c *gin.Context) string {
	return apiutil.SessionKeyFromContext(c)
}
