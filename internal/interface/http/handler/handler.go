package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/response"
)

// parseIDParam 解析路径中的ID参数
// 解析失败时已写入40900响应，调用方直接return即可
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 无效的"+name)
		return 0, false
	}
	return uint(id), true
}
