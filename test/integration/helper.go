package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second

	// 默认管理员账号（由数据库初始化时种子化，见internal/infrastructure/persistence/mysql/db.go）
	AdminEmail    = "admin@library.com"
	AdminPassword = "Admin12345"
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
	Role     string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	User struct {
		ID       uint   `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	ISBN            string  `json:"isbn"`
	PublicationYear int     `json:"publication_year"`
	Description     string  `json:"description"`
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int64   `json:"review_count"`
}

// LoanData 借阅记录响应数据
type LoanData struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	BookID     uint       `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"`
}

// ReviewData 书评响应数据
type ReviewData struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
	BookID  uint   `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// doJSON 发送带JSON body的请求并解析JSON响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	// 204 No Content没有响应体
	if resp.StatusCode == http.StatusNoContent {
		return &Response{Code: 0}
	}

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// itoa 把uint类型的ID转成字符串，用于拼接URL
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// GenerateTestEmail 生成唯一的测试邮箱
//
// 教学说明：
// 使用纳秒时间戳确保邮箱唯一性，避免测试重复运行时邮箱冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一且校验位合法的测试ISBN-13
//
// 教学说明：
// 服务端会校验ISBN-13的校验位（末位），不能随便拼13个数字
// 校验位算法：前12位按1、3交替加权求和，校验位 = (10 - sum%10) % 10
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	prefix := fmt.Sprintf("978%09d", timestamp%1000000000)

	sum := 0
	for i, r := range prefix {
		digit := int(r - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	check := (10 - sum%10) % 10

	return fmt.Sprintf("%s%d", prefix, check)
}

// RegisterTestUser 注册测试用户并返回用户ID和Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, name string) (userID uint, token string) {
	// 1. 注册
	email := GenerateTestEmail(name)
	registerReq := map[string]string{
		"email":     email,
		"password":  "Test12345",
		"full_name": "集成测试用户",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	var registerData RegisterData
	err := json.Unmarshal(registerResp.Data, &registerData)
	require.NoError(t, err, "解析注册响应失败")

	// 2. 登录
	loginReq := map[string]string{
		"email":    email,
		"password": "Test12345",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err = json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return registerData.UserID, loginData.AccessToken
}

// LoginTestAdmin 以默认管理员身份登录并返回Token
func LoginTestAdmin(t *testing.T) string {
	loginReq := map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "管理员登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")
	require.Equal(t, "ADMIN", loginData.User.Role, "默认账号应该是管理员")

	return loginData.AccessToken
}

// CreateTestBook 录入测试图书并返回图书ID（需要管理员Token）
func CreateTestBook(t *testing.T, adminToken string, title string) uint {
	bookReq := map[string]interface{}{
		"title":            title,
		"isbn":             GenerateTestISBN(),
		"publication_year": 2023,
		"description":      "集成测试用图书",
	}

	bookResp := PostJSON(t, BaseURL+"/admin/books", bookReq, adminToken)
	require.Equal(t, 0, bookResp.Code, "图书录入失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}
