package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/golang-jwt/jwt"
)

// Claims 自定义JWT声明结构体
// 载荷为 {id, username, role}
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken 生成访问令牌
// remember为true时使用延长的有效期
func GenerateToken(userID uint, username, role string, remember bool) (string, error) {
	cfg := config.GlobalConfig.JWT

	expireHours := cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	if remember {
		expireHours = cfg.RememberExpireHours
		if expireHours <= 0 {
			expireHours = 240
		}
	}
	expireTime := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 使用密钥签名并获得完整的编码字符串令牌
	tokenString, err := token.SignedString([]byte(cfg.SecretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析JWT令牌
func ParseToken(tokenString string) (*Claims, error) {
	// 检查令牌是否在黑名单中
	if GetTokenBlacklist().IsBlacklisted(tokenString) {
		return nil, errors.New("令牌已被撤销")
	}

	// 解析令牌
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名方法: %v", token.Header["alg"])
		}
		return []byte(config.GlobalConfig.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	// 校验令牌
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的令牌")
}

// RevokeToken 撤销令牌（登出时使用）
func RevokeToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GlobalConfig.JWT.SecretKey), nil
	})

	if err != nil {
		return err
	}

	// 获取过期时间并加入黑名单
	if claims, ok := token.Claims.(*Claims); ok {
		expireTime := time.Unix(claims.ExpiresAt, 0)
		return GetTokenBlacklist().AddToBlacklist(tokenString, expireTime)
	}

	return errors.New("无效的令牌")
}
