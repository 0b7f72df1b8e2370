// Package crypto 加密工具单元测试
package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ==================== 密码哈希测试 ====================

func TestHashPassword_Success(t *testing.T) {
	passwords := []string{
		"password123",
		"StrongP@ssw0rd!",
		"简单密码",
		"12345678",
		strings.Repeat("x", 72), // bcrypt最大长度
	}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			hash, err := HashPassword(password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, password, hash)
			assert.True(t, strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$"))
		})
	}
}

func TestHashPassword_DifferentHashes(t *testing.T) {
	password := "password123"

	// 多次哈希同一密码应该产生不同的哈希值（因为salt是随机的）
	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "相同密码应产生不同哈希值（随机salt）")

	// 但都应该能验证通过
	assert.True(t, VerifyPassword(password, hash1))
	assert.True(t, VerifyPassword(password, hash2))
}

func TestHashPasswordWithCost(t *testing.T) {
	password := "password123"

	tests := []struct {
		name string
		cost int
	}{
		{"Min cost", bcrypt.MinCost},
		{"Default cost", bcrypt.DefaultCost},
		{"Invalid cost falls back to default", 100},
		{"Zero cost falls back to default", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPasswordWithCost(password, tt.cost)
			require.NoError(t, err)
			assert.True(t, VerifyPassword(password, hash))
		})
	}
}

func TestVerifyPassword_Success(t *testing.T) {
	password := "MySecretPassword123!"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(password, hash))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	password := "correct_password"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	tests := []string{
		"wrong_password",
		"Correct_password", // 大小写敏感
		"correct_passwor",  // 少一个字符
		"correct_password ", // 多一个空格
		"",
	}

	for _, wrongPassword := range tests {
		t.Run(wrongPassword, func(t *testing.T) {
			assert.False(t, VerifyPassword(wrongPassword, hash))
		})
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("password", "invalid-hash"))
	assert.False(t, VerifyPassword("password", ""))
	assert.False(t, VerifyPassword("password", "$2a$10$invalid"))
}

// ==================== 随机字符串/字节测试 ====================

func TestGenerateRandomString(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"Length 8", 8},
		{"Length 16", 16},
		{"Length 32", 32},
		{"Length 64", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, err := GenerateRandomString(tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.length, len(str))
			assert.NotEmpty(t, str)
		})
	}
}

func TestGenerateRandomString_Uniqueness(t *testing.T) {
	length := 16
	iterations := 100
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		str, err := GenerateRandomString(length)
		require.NoError(t, err)
		assert.False(t, seen[str], "生成的随机字符串应该是唯一的")
		seen[str] = true
	}
}

func TestGenerateRandomBytes(t *testing.T) {
	tests := []int{8, 16, 32, 64, 128}

	for _, n := range tests {
		t.Run(string(rune(n)), func(t *testing.T) {
			bytes, err := GenerateRandomBytes(n)
			require.NoError(t, err)
			assert.Equal(t, n, len(bytes))
		})
	}
}

func TestGenerateRandomBytes_Uniqueness(t *testing.T) {
	n := 16
	iterations := 100
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		bytes, err := GenerateRandomBytes(n)
		require.NoError(t, err)
		key := string(bytes)
		assert.False(t, seen[key], "生成的随机字节应该是唯一的")
		seen[key] = true
	}
}

// ==================== 数据脱敏测试 ====================

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{"Valid phone", "13812345678", "138****5678"},
		{"Another valid phone", "18600001111", "186****1111"},
		{"Too short", "1234567", "1234567"},
		{"Too long", "138123456789", "138123456789"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskPhone(tt.phone)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMaskIDCard(t *testing.T) {
	tests := []struct {
		name     string
		idCard   string
		expected string
	}{
		{"Valid ID", "110101199001011234", "110101********1234"},
		{"Another valid ID", "320102198501012345", "320102********2345"},
		{"Too short", "1234567890", "1234567890"},
		{"Too long", "1234567890123456789", "1234567890123456789"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskIDCard(tt.idCard)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{"Normal email", "user@example.com", "us***@example.com"},
		{"Short email", "ab@test.com", "ab@test.com"}, // 太短不脱敏
		{"Long email", "verylongemail@test.com", "ve***@test.com"},
		{"No @ sign", "notanemail", "notanemail"},
		{"Empty", "", ""},
		{"Single char before @", "a@test.com", "a@test.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskEmail(tt.email)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// ==================== 性能测试 ====================

func BenchmarkHashPassword(b *testing.B) {
	password := "MySecretPassword123!"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword(password)
	}
}

func BenchmarkVerifyPassword(b *testing.B) {
	password := "MySecretPassword123!"
	hash, _ := HashPassword(password)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = VerifyPassword(password, hash)
	}
}
