package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateISBN(t *testing.T) {
	valid := []string{
		"9787111213826",
		"978-7-111-21382-6",
		"7111213823",
		"7-111-21382-3",
		"043942089X",
		"043942089x",
	}
	for _, isbn := range valid {
		assert.NoError(t, ValidateISBN(isbn), "应通过: %s", isbn)
	}

	invalid := []string{
		"",
		"123",
		"abcdefghij",
		"97871112138261", // 14位
		"978711121382",   // 12位
		"X111213823",     // X只能在ISBN-10末位
	}
	for _, isbn := range invalid {
		assert.Error(t, ValidateISBN(isbn), "应拒绝: %s", isbn)
	}
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9787111213826", NormalizeISBN("978-7-111-21382-6"))
	assert.Equal(t, "043942089X", NormalizeISBN("0-439-42089-x"))
	assert.Equal(t, "9787111213826", NormalizeISBN("9787111213826"))
}

func TestValidatePublicationYear(t *testing.T) {
	assert.NoError(t, ValidatePublicationYear(1450))
	assert.NoError(t, ValidatePublicationYear(2000))
	assert.NoError(t, ValidatePublicationYear(time.Now().Year()))
	assert.NoError(t, ValidatePublicationYear(time.Now().Year()+1), "预售书允许标到明年")

	assert.Error(t, ValidatePublicationYear(1449))
	assert.Error(t, ValidatePublicationYear(0))
	assert.Error(t, ValidatePublicationYear(time.Now().Year()+2))
}
