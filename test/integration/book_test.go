package integration

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：图书与目录模块集成测试
//
// 重点验证：
// 1. 图书录入（ISBN唯一、关联作者/分类/出版社）
// 2. 删除守卫（作者名下有图书不能删、图书有未归还借阅不能删）
// 3. 公开查询与搜索

// TestCreateBookAPI 测试图书录入
func TestCreateBookAPI(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("正常录入图书", func(t *testing.T) {
		// 先创建关联的作者和分类
		authorResp := PostJSON(t, BaseURL+"/admin/authors", map[string]interface{}{
			"name":      "测试作者",
			"biography": "集成测试作者简介",
		}, adminToken)
		require.Equal(t, 0, authorResp.Code, "创建作者失败: %s", authorResp.Message)

		var author struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(authorResp.Data, &author))

		isbn := GenerateTestISBN()
		bookResp := PostJSON(t, BaseURL+"/admin/books", map[string]interface{}{
			"title":            "《Go语言实战》",
			"isbn":             isbn,
			"publication_year": 2022,
			"description":      "集成测试录入",
			"author_ids":       []uint{author.ID},
		}, adminToken)

		require.Equal(t, 0, bookResp.Code, "录入图书失败: %s", bookResp.Message)

		var book BookData
		require.NoError(t, json.Unmarshal(bookResp.Data, &book))
		assert.Equal(t, isbn, book.ISBN)

		// 公开详情接口可以查到
		getResp := GetJSON(t, BaseURL+"/books/"+itoa(book.ID), "")
		assert.Equal(t, 0, getResp.Code, "查询图书详情失败: %s", getResp.Message)

		t.Logf("✓ 图书录入成功，ID: %d, ISBN: %s", book.ID, book.ISBN)
	})

	t.Run("重复ISBN应失败", func(t *testing.T) {
		isbn := GenerateTestISBN()
		req := map[string]interface{}{
			"title":            "《重复ISBN测试一》",
			"isbn":             isbn,
			"publication_year": 2021,
		}

		resp1 := PostJSON(t, BaseURL+"/admin/books", req, adminToken)
		require.Equal(t, 0, resp1.Code, "第一次录入应该成功: %s", resp1.Message)

		req["title"] = "《重复ISBN测试二》"
		resp2 := PostJSON(t, BaseURL+"/admin/books", req, adminToken)

		assert.NotEqual(t, 0, resp2.Code, "重复ISBN录入应该失败")
		assert.Contains(t, resp2.Message, "ISBN", "错误信息应该提示ISBN相关")

		t.Logf("✓ 重复ISBN正确返回错误: %s", resp2.Message)
	})

	t.Run("非法ISBN应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/admin/books", map[string]interface{}{
			"title":            "《非法ISBN测试》",
			"isbn":             "9781234567890", // 校验位错误
			"publication_year": 2021,
		}, adminToken)

		assert.NotEqual(t, 0, resp.Code, "校验位错误的ISBN应该被拒绝")

		t.Logf("✓ 非法ISBN正确返回错误: %s", resp.Message)
	})

	t.Run("关联不存在的作者应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/admin/books", map[string]interface{}{
			"title":            "《作者不存在测试》",
			"isbn":             GenerateTestISBN(),
			"publication_year": 2021,
			"author_ids":       []uint{99999999},
		}, adminToken)

		assert.NotEqual(t, 0, resp.Code, "关联不存在的作者应该失败")

		t.Logf("✓ 作者不存在正确返回错误: %s", resp.Message)
	})
}

// TestDeleteGuards 测试删除守卫规则
func TestDeleteGuards(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	t.Run("作者名下有图书时不能删除", func(t *testing.T) {
		authorResp := PostJSON(t, BaseURL+"/admin/authors", map[string]interface{}{
			"name": "删除守卫测试作者",
		}, adminToken)
		require.Equal(t, 0, authorResp.Code, "创建作者失败: %s", authorResp.Message)

		var author struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(authorResp.Data, &author))

		bookResp := PostJSON(t, BaseURL+"/admin/books", map[string]interface{}{
			"title":            "《守卫测试图书》",
			"isbn":             GenerateTestISBN(),
			"publication_year": 2020,
			"author_ids":       []uint{author.ID},
		}, adminToken)
		require.Equal(t, 0, bookResp.Code, "录入图书失败: %s", bookResp.Message)

		// 名下有图书，删除应失败
		delResp := DeleteJSON(t, BaseURL+"/admin/authors/"+itoa(author.ID), adminToken)
		assert.NotEqual(t, 0, delResp.Code, "名下有图书的作者删除应该失败")

		t.Logf("✓ 作者删除守卫生效: %s", delResp.Message)
	})

	t.Run("图书有未归还借阅时不能删除", func(t *testing.T) {
		bookID := CreateTestBook(t, adminToken, "《在借不可删测试图书》")
		_, userToken := RegisterTestUser(t, "delete_guard")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{"book_id": bookID}, userToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		delResp := DeleteJSON(t, BaseURL+"/admin/books/"+itoa(bookID), adminToken)
		assert.NotEqual(t, 0, delResp.Code, "有未归还借阅的图书删除应该失败")

		// 归还后可以删除
		var loan LoanData
		require.NoError(t, json.Unmarshal(borrowResp.Data, &loan))
		returnResp := PutJSON(t, BaseURL+"/loans/"+itoa(loan.ID)+"/return", nil, userToken)
		require.Equal(t, 0, returnResp.Code, "还书失败: %s", returnResp.Message)

		delResp2 := DeleteJSON(t, BaseURL+"/admin/books/"+itoa(bookID), adminToken)
		assert.Equal(t, 0, delResp2.Code, "归还后删除图书应该成功: %s", delResp2.Message)

		t.Logf("✓ 图书删除守卫生效，归还后可删除")
	})
}

// TestSearchBooks 测试图书搜索
func TestSearchBooks(t *testing.T) {
	adminToken := LoginTestAdmin(t)

	// 准备专属分类/出版社和一本标题带唯一后缀的图书，避免搜到历史测试数据
	suffix := GenerateTestISBN()[5:]

	categoryResp := PostJSON(t, BaseURL+"/admin/categories", map[string]interface{}{
		"name": "搜索测试分类" + suffix,
	}, adminToken)
	require.Equal(t, 0, categoryResp.Code, "创建分类失败: %s", categoryResp.Message)
	var category struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(categoryResp.Data, &category))

	publisherResp := PostJSON(t, BaseURL+"/admin/publishers", map[string]interface{}{
		"name": "搜索测试出版社" + suffix,
	}, adminToken)
	require.Equal(t, 0, publisherResp.Code, "创建出版社失败: %s", publisherResp.Message)
	var publisher struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(publisherResp.Data, &publisher))

	isbn := GenerateTestISBN()
	title := "《分布式系统原理" + suffix + "》"
	bookResp := PostJSON(t, BaseURL+"/admin/books", map[string]interface{}{
		"title":            title,
		"isbn":             isbn,
		"publication_year": 2019,
		"category_ids":     []uint{category.ID},
		"publisher_id":     publisher.ID,
	}, adminToken)
	require.Equal(t, 0, bookResp.Code, "录入图书失败: %s", bookResp.Message)

	t.Run("按标题搜索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search?title="+suffix, "")
		require.Equal(t, 0, resp.Code, "搜索失败: %s", resp.Message)

		var page struct {
			List  []BookData `json:"list"`
			Total int64      `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))

		require.Equal(t, int64(1), page.Total, "应该恰好搜到1本书")
		require.Len(t, page.List, 1)
		// 返回的必须是完整行,而不是只有ID的空壳
		assert.Equal(t, title, page.List[0].Title, "搜索结果应该带完整的标题")
		assert.Equal(t, isbn, page.List[0].ISBN, "搜索结果应该带完整的ISBN")
		assert.Equal(t, 2019, page.List[0].PublicationYear)

		t.Logf("✓ 标题搜索命中: %s", page.List[0].Title)
	})

	t.Run("按分类名和出版社名搜索", func(t *testing.T) {
		// 部分匹配:只传名称中间的一段
		resp := GetJSON(t, BaseURL+"/books/search?category="+url.QueryEscape("测试分类"+suffix), "")
		require.Equal(t, 0, resp.Code, "按分类名搜索失败: %s", resp.Message)

		var page struct {
			List  []BookData `json:"list"`
			Total int64      `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, int64(1), page.Total, "按分类名应该恰好搜到1本书")
		assert.Equal(t, title, page.List[0].Title)

		resp2 := GetJSON(t, BaseURL+"/books/search?publisher="+url.QueryEscape("测试出版社"+suffix), "")
		require.Equal(t, 0, resp2.Code, "按出版社名搜索失败: %s", resp2.Message)
		require.NoError(t, json.Unmarshal(resp2.Data, &page))
		require.Equal(t, int64(1), page.Total, "按出版社名应该恰好搜到1本书")
		assert.Equal(t, isbn, page.List[0].ISBN)

		t.Logf("✓ 分类/出版社名称模糊搜索命中")
	})

	t.Run("图书列表分页", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=1&page_size=5", "")
		require.Equal(t, 0, resp.Code, "查询图书列表失败: %s", resp.Message)

		var page struct {
			List     []BookData `json:"list"`
			Page     int        `json:"page"`
			PageSize int        `json:"page_size"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))

		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 5, page.PageSize)
		assert.LessOrEqual(t, len(page.List), 5, "每页最多5条")
		for _, b := range page.List {
			assert.NotEmpty(t, b.Title, "列表项应该带完整字段")
		}

		t.Logf("✓ 分页参数正确")
	})
}
