package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// tolerant of the types middleware may store (int64 / int / float64 / string)
func getUserIDFromCtx(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
