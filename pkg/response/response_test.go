package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 业务错误码到HTTP状态码的映射是前端依赖的契约,单独锁定
func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"无权限(非所有者)", apperrors.ErrCodeForbidden, http.StatusForbidden},
		{"未登录", apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Token过期", apperrors.ErrCodeTokenExpired, http.StatusUnauthorized},
		{"资源不存在(通用)", apperrors.ErrCodeNotFound, http.StatusNotFound},
		{"图书不存在", apperrors.ErrCodeBookNotFound, http.StatusNotFound},
		{"书评不存在", apperrors.ErrCodeReviewNotFound, http.StatusNotFound},
		{"参数错误", apperrors.ErrCodeInvalidParams, http.StatusBadRequest},
		{"图书已被借出", apperrors.ErrCodeBookBorrowed, http.StatusConflict},
		{"重复书评", apperrors.ErrCodeReviewDuplicate, http.StatusConflict},
		{"存在关联数据", apperrors.ErrCodeHasDependents, http.StatusConflict},
		{"重复归还", apperrors.ErrCodeAlreadyReturned, http.StatusConflict},
		{"内部错误", apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{"数据库错误", apperrors.ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, httpStatus(tc.code))
		})
	}
}

func TestErrorWritesAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":40402`)
	assert.Contains(t, w.Body.String(), "图书不存在")
}

func TestErrorWrapsUnknownError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, assert.AnError)

	// 未知错误统一按内部错误处理,不泄露细节
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestNewPageData(t *testing.T) {
	pd := NewPageData([]int{1, 2, 3}, 25, 2, 10)

	assert.Equal(t, int64(25), pd.Total)
	assert.Equal(t, 2, pd.Page)
	assert.Equal(t, 10, pd.PageSize)
	assert.Equal(t, 3, pd.TotalPages)

	pd = NewPageData([]int{}, 20, 1, 10)
	assert.Equal(t, 2, pd.TotalPages)

	pd = NewPageData([]int{}, 0, 1, 10)
	assert.Equal(t, 0, pd.TotalPages)
}
