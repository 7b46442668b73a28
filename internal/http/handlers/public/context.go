package public

import (
	"strconv"
	"strings"

	"github.com/stroyprombeton/internal/constants"

	"github.com/gin-gonic/gin"
)

// deviceClass 读取 DeviceClass 中间件写入的设备类型
func deviceClass(c *gin.Context) string {
	if value, ok := c.Get(constants.ContextKeyDeviceClass); ok {
		if class, ok := value.(string); ok && class != "" {
			return class
		}
	}
	return constants.DeviceClassDesktop
}

// parseIDParam 解析路径中的正整数 ID，非法时返回 0
func parseIDParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parseFormBool 解析表单中的布尔值
func parseFormBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
