package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：用户模块集成测试
//
// 集成测试 vs 单元测试：
// - 单元测试：Mock外部依赖（数据库、Redis），测试单个函数的逻辑
// - 集成测试：使用真实的数据库和Redis，测试完整的API流程
//
// 集成测试的价值：
// 1. 验证各组件协同工作（Handler → UseCase → Service → Repository → Database）
// 2. 发现配置错误（如数据库连接、Wire依赖注入）
// 3. 验证业务流程的完整性
//
// 运行方式：
//   go test -v ./test/integration/...   # 需要先启动服务和Docker环境

// TestUserRegister 测试用户注册功能
//
// 测试场景：
// 1. 正常注册（默认角色MEMBER、状态ACTIVE）
// 2. 重复邮箱注册（应失败）
// 3. 密码格式校验
// 4. 邮箱格式校验
func TestUserRegister(t *testing.T) {
	// 教学说明：使用t.Run()组织子测试
	// 好处：
	// 1. 测试结果更清晰（可以看到每个子场景的结果）
	// 2. 子测试失败不影响其他子测试
	// 3. 可以使用 go test -run=TestUserRegister/正常注册 运行单个子测试

	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("normal_user")
		registerReq := map[string]string{
			"email":     email,
			"password":  "Test12345",
			"full_name": "测试用户",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功")

		var data RegisterData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.UserID, "用户ID应该大于0")
		assert.Equal(t, email, data.Email, "返回的邮箱应该与请求一致")
		assert.Equal(t, "MEMBER", data.Role, "注册用户的默认角色应该是MEMBER")
		assert.Equal(t, "ACTIVE", data.Status, "注册用户的默认状态应该是ACTIVE")

		t.Logf("✓ 注册成功，用户ID: %d", data.UserID)
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		// 第一次注册
		email := GenerateTestEmail("duplicate_user")
		registerReq := map[string]string{
			"email":     email,
			"password":  "Test12345",
			"full_name": "测试用户一",
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		// 第二次注册（相同邮箱）
		registerReq["full_name"] = "测试用户二"
		resp2 := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp2.Code, "重复邮箱注册应该失败")
		assert.Contains(t, resp2.Message, "邮箱", "错误信息应该提示邮箱相关")

		t.Logf("✓ 重复邮箱注册正确返回错误: %s", resp2.Message)
	})

	t.Run("密码过短应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"email":     GenerateTestEmail("short_pwd"),
			"password":  "123", // 太短（<8位）
			"full_name": "测试用户",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "密码过短应该失败")

		t.Logf("✓ 密码过短正确返回错误: %s", resp.Message)
	})

	t.Run("邮箱格式错误应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"email":     "invalid-email", // 无效邮箱格式
			"password":  "Test12345",
			"full_name": "测试用户",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "邮箱格式错误应该失败")

		t.Logf("✓ 邮箱格式错误正确返回错误: %s", resp.Message)
	})
}

// TestUserLogin 测试用户登录功能
//
// 测试场景：
// 1. 正常登录
// 2. 密码错误
// 3. 用户不存在
// 4. Token有效性
func TestUserLogin(t *testing.T) {
	// 准备测试数据：先注册一个用户
	email := GenerateTestEmail("login_test")
	password := "Test12345"
	registerReq := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": "登录测试用户",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "准备测试数据：注册用户")

	t.Run("正常登录", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    email,
			"password": password,
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.Equal(t, 0, resp.Code, "登录应该成功")

		var data LoginData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotEmpty(t, data.AccessToken, "应该返回access_token")
		assert.NotEmpty(t, data.RefreshToken, "应该返回refresh_token")
		assert.Equal(t, email, data.User.Email, "返回的用户信息应该与登录账号一致")

		// 教学说明：JWT Token格式
		// JWT由三部分组成：header.payload.signature
		assert.Contains(t, data.AccessToken, ".", "JWT Token应该包含点号分隔符")

		t.Logf("✓ 登录成功，Access Token长度: %d", len(data.AccessToken))
	})

	t.Run("密码错误应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    email,
			"password": "WrongPassword1",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.NotEqual(t, 0, resp.Code, "密码错误应该失败")

		t.Logf("✓ 密码错误正确返回错误: %s", resp.Message)
	})

	t.Run("用户不存在应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    "nonexistent@test.com",
			"password": "Test12345",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.NotEqual(t, 0, resp.Code, "用户不存在应该失败")
		// 安全考虑：不应该明确提示"用户不存在"，防止攻击者枚举邮箱

		t.Logf("✓ 用户不存在正确返回错误: %s", resp.Message)
	})

	t.Run("Token可以访问受保护接口", func(t *testing.T) {
		_, token := RegisterTestUser(t, "token_test")

		resp := GetJSON(t, BaseURL+"/profile", token)
		assert.Equal(t, 0, resp.Code, "使用有效Token应该可以查看个人资料")

		t.Logf("✓ Token验证通过，可以访问受保护接口")
	})

	t.Run("无效Token应被拒绝", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", "invalid.jwt.token")

		assert.NotEqual(t, 0, resp.Code, "无效Token应该被拒绝")

		t.Logf("✓ 无效Token正确被拒绝: %s", resp.Message)
	})

	t.Run("普通用户访问管理接口应被拒绝", func(t *testing.T) {
		_, token := RegisterTestUser(t, "member_admin")

		resp := GetJSON(t, BaseURL+"/admin/users", token)
		assert.NotEqual(t, 0, resp.Code, "MEMBER角色不应该能访问管理接口")

		t.Logf("✓ 普通用户访问管理接口正确被拒绝: %s", resp.Message)
	})
}

// TestUserManagement 测试管理端用户管理
//
// 测试场景：
// 1. 管理员封禁用户后，该用户不能借书
// 2. 管理员提升用户角色后，该用户可以访问管理接口
func TestUserManagement(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("封禁用户后不能借书", func(t *testing.T) {
		userID, userToken := RegisterTestUser(t, "ban_target")
		bookID := CreateTestBook(t, adminToken, "《封禁测试图书》")

		// 管理员封禁该用户
		banReq := map[string]string{"status": "BANNED"}
		banResp := PutJSON(t, BaseURL+"/admin/users/"+itoa(userID)+"/status", banReq, adminToken)
		require.Equal(t, 0, banResp.Code, "封禁用户失败: %s", banResp.Message)

		// 被封禁用户尝试借书
		borrowReq := map[string]interface{}{"book_id": bookID}
		borrowResp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		assert.NotEqual(t, 0, borrowResp.Code, "被封禁用户借书应该失败")

		t.Logf("✓ 被封禁用户借书正确被拒绝: %s", borrowResp.Message)
	})

	t.Run("管理员可以提升用户角色", func(t *testing.T) {
		userID, _ := RegisterTestUser(t, "promote_target")

		roleReq := map[string]string{"role": "ADMIN"}
		roleResp := PutJSON(t, BaseURL+"/admin/users/"+itoa(userID)+"/role", roleReq, adminToken)
		require.Equal(t, 0, roleResp.Code, "变更角色失败: %s", roleResp.Message)

		// 角色变更会使旧会话失效，新权限在重新登录后生效
		t.Logf("✓ 角色变更成功，用户%d已提升为ADMIN", userID)
	})
}
