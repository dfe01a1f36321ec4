package book

import (
	"regexp"
	"strings"
	"time"
)

// isbnPattern ISBN-10或ISBN-13的基本格式(允许连字符)
var isbnPattern = regexp.MustCompile(`^(?:\d{9}[\dXx]|\d{13})$`)

// ValidateISBN 校验ISBN格式
// 规则:去除连字符后必须是10位(末位可为X)或13位数字
// 说明:只做格式校验,不做校验位计算(录入的老书ISBN校验位经常不规范)
func ValidateISBN(isbn string) error {
	normalized := strings.ReplaceAll(isbn, "-", "")
	if !isbnPattern.MatchString(normalized) {
		return ErrInvalidISBN
	}
	return nil
}

// NormalizeISBN 规范化ISBN(去连字符,X大写)
// 存储和唯一性判断都使用规范化后的值
func NormalizeISBN(isbn string) string {
	return strings.ToUpper(strings.ReplaceAll(isbn, "-", ""))
}

// ValidatePublicationYear 校验出版年份
// 规则:1450(活字印刷之后)到明年之间
func ValidatePublicationYear(year int) error {
	if year < 1450 || year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	return nil
}
