package integration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：借阅模块集成测试
//
// 借阅是本系统的核心业务，重点验证：
// 1. 借书守卫规则（图书在借时不能再借出、非ACTIVE用户不能借书）
// 2. 归还的状态流转（按时→RETURNED，逾期→OVERDUE，重复归还报错）
// 3. 续借规则（新到期日必须晚于当前到期日）
// 4. 权限边界（只能操作自己的借阅，管理员除外）

// TestBorrowBook 测试借书流程
func TestBorrowBook(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("正常借书", func(t *testing.T) {
		userID, userToken := RegisterTestUser(t, "borrow_normal")
		bookID := CreateTestBook(t, adminToken, "《借阅测试图书》")

		borrowReq := map[string]interface{}{"book_id": bookID}
		resp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		require.Equal(t, 0, resp.Code, "借书应该成功: %s", resp.Message)

		var loan LoanData
		err := json.Unmarshal(resp.Data, &loan)
		require.NoError(t, err, "解析借阅响应失败")

		assert.Equal(t, userID, loan.UserID, "借阅人应该是当前用户")
		assert.Equal(t, bookID, loan.BookID, "图书ID应该与请求一致")
		assert.Equal(t, "BORROWED", loan.Status, "新借阅的状态应该是BORROWED")
		assert.Nil(t, loan.ReturnDate, "未归还时return_date应该为空")

		// 默认借期14天（允许1分钟误差）
		expectedDue := loan.BorrowDate.Add(14 * 24 * time.Hour)
		assert.WithinDuration(t, expectedDue, loan.DueDate, time.Minute, "默认借期应该是14天")

		t.Logf("✓ 借书成功，借阅ID: %d, 应还时间: %s", loan.ID, loan.DueDate.Format("2006-01-02"))
	})

	t.Run("指定应还时间借书", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "borrow_due")
		bookID := CreateTestBook(t, adminToken, "《指定应还时间测试图书》")

		due := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
		borrowReq := map[string]interface{}{"book_id": bookID, "due_date": due.Format(time.RFC3339)}
		resp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		require.Equal(t, 0, resp.Code, "指定应还时间借书应该成功: %s", resp.Message)

		var loan LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &loan))
		assert.WithinDuration(t, due, loan.DueDate, time.Second, "应还时间应该精确使用请求值")

		t.Logf("✓ 指定应还时间生效: %s", loan.DueDate.Format("2006-01-02"))
	})

	t.Run("应还时间不在未来应失败", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "borrow_pastdue")
		bookID := CreateTestBook(t, adminToken, "《过期应还时间测试图书》")

		past := time.Now().Add(-24 * time.Hour)
		borrowReq := map[string]interface{}{"book_id": bookID, "due_date": past.Format(time.RFC3339)}
		resp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		assert.NotEqual(t, 0, resp.Code, "过去的应还时间应该被拒绝")

		t.Logf("✓ 过去的应还时间正确返回错误: %s", resp.Message)
	})

	t.Run("图书在借时不能再借出", func(t *testing.T) {
		_, userToken1 := RegisterTestUser(t, "borrow_first")
		_, userToken2 := RegisterTestUser(t, "borrow_second")
		bookID := CreateTestBook(t, adminToken, "《在借冲突测试图书》")

		borrowReq := map[string]interface{}{"book_id": bookID}

		resp1 := PostJSON(t, BaseURL+"/loans", borrowReq, userToken1)
		require.Equal(t, 0, resp1.Code, "第一次借书应该成功: %s", resp1.Message)

		// 同一本书第二个人再借（应失败，图书只有一册）
		resp2 := PostJSON(t, BaseURL+"/loans", borrowReq, userToken2)

		assert.NotEqual(t, 0, resp2.Code, "图书在借时再借应该失败")
		assert.Contains(t, resp2.Message, "借出", "错误信息应该提示图书已被借出")

		t.Logf("✓ 在借冲突正确返回错误: %s", resp2.Message)
	})

	t.Run("归还后可以再次借出", func(t *testing.T) {
		_, userToken1 := RegisterTestUser(t, "reborrow_first")
		_, userToken2 := RegisterTestUser(t, "reborrow_second")
		bookID := CreateTestBook(t, adminToken, "《归还后再借测试图书》")

		borrowReq := map[string]interface{}{"book_id": bookID}

		resp1 := PostJSON(t, BaseURL+"/loans", borrowReq, userToken1)
		require.Equal(t, 0, resp1.Code, "借书失败: %s", resp1.Message)

		var loan LoanData
		err := json.Unmarshal(resp1.Data, &loan)
		require.NoError(t, err)

		returnResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken1)
		require.Equal(t, 0, returnResp.Code, "还书失败: %s", returnResp.Message)

		// 归还之后另一个人可以借
		resp2 := PostJSON(t, BaseURL+"/loans", borrowReq, userToken2)
		assert.Equal(t, 0, resp2.Code, "归还后再借应该成功: %s", resp2.Message)

		t.Logf("✓ 归还后图书可以再次借出")
	})

	t.Run("借不存在的图书应失败", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "borrow_missing")

		borrowReq := map[string]interface{}{"book_id": 99999999}
		resp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		assert.NotEqual(t, 0, resp.Code, "借不存在的图书应该失败")

		t.Logf("✓ 图书不存在正确返回错误: %s", resp.Message)
	})

	t.Run("普通用户不能替他人借书", func(t *testing.T) {
		otherID, _ := RegisterTestUser(t, "proxy_target")
		_, userToken := RegisterTestUser(t, "proxy_caller")
		bookID := CreateTestBook(t, adminToken, "《代借权限测试图书》")

		borrowReq := map[string]interface{}{"book_id": bookID, "user_id": otherID}
		resp := PostJSON(t, BaseURL+"/loans", borrowReq, userToken)

		assert.NotEqual(t, 0, resp.Code, "普通用户替他人借书应该被拒绝")

		// 管理员可以代他人登记借阅
		adminResp := PostJSON(t, BaseURL+"/loans", borrowReq, adminToken)
		assert.Equal(t, 0, adminResp.Code, "管理员代借应该成功: %s", adminResp.Message)

		var loan LoanData
		err := json.Unmarshal(adminResp.Data, &loan)
		require.NoError(t, err)
		assert.Equal(t, otherID, loan.UserID, "代借记录的借阅人应该是被代借用户")

		t.Logf("✓ 代借权限控制正确")
	})
}

// TestReturnBook 测试还书流程
func TestReturnBook(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("按时归还", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "return_ontime")
		bookID := CreateTestBook(t, adminToken, "《按时归还测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		returnResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken)
		require.Equal(t, 0, returnResp.Code, "还书失败: %s", returnResp.Message)

		var returned LoanData
		err = json.Unmarshal(returnResp.Data, &returned)
		require.NoError(t, err)

		assert.Equal(t, "RETURNED", returned.Status, "按时归还的状态应该是RETURNED")
		assert.NotNil(t, returned.ReturnDate, "归还后return_date应该有值")

		t.Logf("✓ 按时归还成功，状态: %s", returned.Status)
	})

	t.Run("重复归还应失败", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "return_twice")
		bookID := CreateTestBook(t, adminToken, "《重复归还测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		resp1 := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken)
		require.Equal(t, 0, resp1.Code, "第一次还书应该成功: %s", resp1.Message)

		resp2 := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken)
		assert.NotEqual(t, 0, resp2.Code, "重复归还应该失败")
		assert.Contains(t, resp2.Message, "归还", "错误信息应该提示已归还")

		t.Logf("✓ 重复归还正确返回错误: %s", resp2.Message)
	})

	t.Run("不能归还他人的借阅", func(t *testing.T) {
		_, ownerToken := RegisterTestUser(t, "return_owner")
		_, otherToken := RegisterTestUser(t, "return_other")
		bookID := CreateTestBook(t, adminToken, "《归还权限测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, ownerToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		resp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, otherToken)
		assert.NotEqual(t, 0, resp.Code, "归还他人借阅应该被拒绝")

		// 管理员可以代为登记归还
		adminResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, adminToken)
		assert.Equal(t, 0, adminResp.Code, "管理员代还应该成功: %s", adminResp.Message)

		t.Logf("✓ 归还权限控制正确")
	})
}

// TestRenewLoan 测试续借流程
func TestRenewLoan(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("默认续借14天", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "renew_default")
		bookID := CreateTestBook(t, adminToken, "《默认续借测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		renewResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/renew", map[string]interface{}{}, userToken)
		require.Equal(t, 0, renewResp.Code, "续借失败: %s", renewResp.Message)

		var renewed LoanData
		err = json.Unmarshal(renewResp.Data, &renewed)
		require.NoError(t, err)

		expectedDue := loan.DueDate.Add(14 * 24 * time.Hour)
		assert.WithinDuration(t, expectedDue, renewed.DueDate, time.Minute, "默认续借应该延长14天")
		assert.Equal(t, "BORROWED", renewed.Status, "续借后仍然是在借状态")

		t.Logf("✓ 续借成功，新应还时间: %s", renewed.DueDate.Format("2006-01-02"))
	})

	t.Run("指定新应还时间", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "renew_custom")
		bookID := CreateTestBook(t, adminToken, "《指定新应还时间测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		newDue := loan.DueDate.Add(30 * 24 * time.Hour).Truncate(time.Second)
		renewResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/renew",
			map[string]interface{}{"new_due_date": newDue.Format(time.RFC3339)}, userToken)
		require.Equal(t, 0, renewResp.Code, "续借失败: %s", renewResp.Message)

		var renewed LoanData
		err = json.Unmarshal(renewResp.Data, &renewed)
		require.NoError(t, err)

		assert.WithinDuration(t, newDue, renewed.DueDate, time.Second, "新应还时间应该精确使用请求值")

		t.Logf("✓ 指定新应还时间续借成功")
	})

	t.Run("新应还时间不晚于当前应还时间应失败", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "renew_notlater")
		bookID := CreateTestBook(t, adminToken, "《缩短应还时间测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		// 在未来但早于当前应还时间(默认借期14天,取1小时后)
		earlier := time.Now().Add(time.Hour)
		resp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/renew",
			map[string]interface{}{"new_due_date": earlier.Format(time.RFC3339)}, userToken)
		assert.NotEqual(t, 0, resp.Code, "不晚于当前应还时间的续借应该被拒绝")

		// 过去的时间在参数校验层就被拒绝
		past := time.Now().Add(-time.Hour)
		resp2 := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/renew",
			map[string]interface{}{"new_due_date": past.Format(time.RFC3339)}, userToken)
		assert.NotEqual(t, 0, resp2.Code, "过去的新应还时间应该被拒绝")

		t.Logf("✓ 非法新应还时间正确返回错误: %s", resp.Message)
	})

	t.Run("已归还的借阅不能续借", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "renew_returned")
		bookID := CreateTestBook(t, adminToken, "《归还后续借测试图书》")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		var loan LoanData
		err := json.Unmarshal(borrowResp.Data, &loan)
		require.NoError(t, err)

		returnResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken)
		require.Equal(t, 0, returnResp.Code, "还书失败: %s", returnResp.Message)

		resp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/renew", map[string]interface{}{}, userToken)
		assert.NotEqual(t, 0, resp.Code, "已归还的借阅续借应该失败")

		t.Logf("✓ 已归还借阅的续借正确返回错误: %s", resp.Message)
	})
}

// TestMyLoans 测试个人借阅查询
func TestMyLoans(t *testing.T) {
	adminToken := LoginTestAdmin(t)
	_, userToken := RegisterTestUser(t, "my_loans")

	// 准备数据：借两本书，还一本
	bookID1 := CreateTestBook(t, adminToken, "《我的借阅测试图书一》")
	bookID2 := CreateTestBook(t, adminToken, "《我的借阅测试图书二》")

	resp1 := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID1}, userToken)
	require.Equal(t, 0, resp1.Code, "借书失败: %s", resp1.Message)
	resp2 := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID2}, userToken)
	require.Equal(t, 0, resp2.Code, "借书失败: %s", resp2.Message)

	var loan1 LoanData
	require.NoError(t, json.Unmarshal(resp1.Data, &loan1))
	returnResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan1.ID)+"/return", nil, userToken)
	require.Equal(t, 0, returnResp.Code, "还书失败: %s", returnResp.Message)

	t.Run("查询全部借阅历史", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/loans/my", userToken)
		require.Equal(t, 0, resp.Code, "查询借阅历史失败: %s", resp.Message)

		var page struct {
			List  []LoanData `json:"list"`
			Total int64      `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))

		assert.Equal(t, int64(2), page.Total, "应该有2条借阅记录")

		t.Logf("✓ 借阅历史查询成功，共%d条", page.Total)
	})

	t.Run("查询在借记录", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/loans/my/active", userToken)
		require.Equal(t, 0, resp.Code, "查询在借记录失败: %s", resp.Message)

		var active []LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &active))

		require.Len(t, active, 1, "应该只有1条在借记录")
		assert.Equal(t, "BORROWED", active[0].Status)

		t.Logf("✓ 在借记录查询成功")
	})
}
