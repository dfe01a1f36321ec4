package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	u := NewUser("reader@example.com", "$2a$12$hash", "张三")

	assert.Equal(t, StatusActive, u.Status, "新用户默认ACTIVE")
	assert.Equal(t, RoleMember, u.Role, "新用户默认普通读者")
	assert.False(t, u.IsAdmin())
}

func TestCanBorrow(t *testing.T) {
	u := NewUser("reader@example.com", "$2a$12$hash", "张三")
	assert.True(t, u.CanBorrow())

	u.ChangeStatus(StatusBanned)
	assert.False(t, u.CanBorrow(), "封禁用户不能借书")

	u.ChangeStatus(StatusInactive)
	assert.False(t, u.CanBorrow(), "停用用户不能借书")

	u.ChangeStatus(StatusActive)
	assert.True(t, u.CanBorrow())
}

func TestUpdateProfile(t *testing.T) {
	u := NewUser("reader@example.com", "$2a$12$hash", "张三")

	u.UpdateProfile("李四")
	assert.Equal(t, "李四", u.FullName)

	u.UpdateProfile("")
	assert.Equal(t, "李四", u.FullName, "空字符串表示不修改")
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("ACTIVE"))
	assert.True(t, IsValidStatus("BANNED"))
	assert.True(t, IsValidStatus("INACTIVE"))
	assert.False(t, IsValidStatus("active"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("DELETED"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("MEMBER"))
	assert.True(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}
