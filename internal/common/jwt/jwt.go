// Package jwt 提供 JWT 令牌管理功能
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 自定义 JWT 声明
type Claims struct {
	StaffID  int64  `json:"staff_id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Config JWT 配置
type Config struct {
	Secret            string
	AccessExpireTime  time.Duration
	RefreshExpireTime time.Duration
	Issuer            string
}

// Manager JWT 管理器
type Manager struct {
	config *Config
}

// TokenPair 令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// 预定义错误
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenNotActive = errors.New("token not active yet")
)

// NewManager 创建 JWT 管理器
func NewManager(config *Config) *Manager {
	return &Manager{
		config: config,
	}
}

// GenerateTokenPair 生成令牌对
func (m *Manager) GenerateTokenPair(staffID int64, username, role string) (*TokenPair, error) {
	now := time.Now()
	accessExpireAt := now.Add(m.config.AccessExpireTime)
	refreshExpireAt := now.Add(m.config.RefreshExpireTime)

	// 生成访问令牌
	accessToken, err := m.generateToken(staffID, username, role, accessExpireAt)
	if err != nil {
		return nil, err
	}

	// 生成刷新令牌
	refreshToken, err := m.generateToken(staffID, username, role, refreshExpireAt)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpireAt.Unix(),
	}, nil
}

// GenerateAccessToken 生成访问令牌
func (m *Manager) GenerateAccessToken(staffID int64, username, role string) (string, int64, error) {
	expireAt := time.Now().Add(m.config.AccessExpireTime)
	token, err := m.generateToken(staffID, username, role, expireAt)
	return token, expireAt.Unix(), err
}

// generateToken 生成令牌
func (m *Manager) generateToken(staffID int64, username, role string, expireAt time.Time) (string, error) {
	claims := &Claims{
		StaffID:  staffID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expireAt),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

// ParseToken 解析令牌
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(m.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrTokenMalformed
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotActive
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// RefreshToken 刷新令牌
func (m *Manager) RefreshToken(refreshTokenString string) (*TokenPair, error) {
	claims, err := m.ParseToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	return m.GenerateTokenPair(claims.StaffID, claims.Username, claims.Role)
}

// ValidateToken 验证令牌
func (m *Manager) ValidateToken(tokenString string) (bool, error) {
	_, err := m.ParseToken(tokenString)
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetStaffIDFromToken 从令牌获取员工 ID
func (m *Manager) GetStaffIDFromToken(tokenString string) (int64, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.StaffID, nil
}

// 员工角色常量
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
)
