package service

import (
	"errors"
	"strings"
	"time"

	"github.com/frostlog/internal/db"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// 访问令牌默认有效期
const tokenTTL = 120 * time.Minute

// AuthService 负责管理员登录与访问令牌的签发和校验。
type AuthService struct {
	db     *gorm.DB
	secret []byte
}

// TokenClaims 是校验通过后交给中间件的主体信息。
type TokenClaims struct {
	Username string
	Role     string
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB, secret string) *AuthService {
	return &AuthService{db: gdb, secret: []byte(secret)}
}

// Login 校验用户名密码，成功后返回签名的访问令牌。
func (s *AuthService) Login(username, password string) (string, *db.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("username = ?", trimmed).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken 签发 HS256 访问令牌，携带 sub/role/iat/exp。
func (s *AuthService) IssueToken(username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

// VerifyToken 解析并校验访问令牌，返回主体信息。
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{Username: username, Role: role}, nil
}
