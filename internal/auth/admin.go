package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInvalidCredential = errors.New("invalid admin credential")
)

// AdminGate 관리자 쓰기 엔드포인트를 지키는 정책 인터페이스.
// 지금은 공유 비밀값 하나지만, 핸들러를 건드리지 않고
// 사용자별 권한 체계로 교체할 수 있도록 분리해 둔다.
type AdminGate interface {
	// CheckSecret X-Admin-Key 헤더 값 검증
	CheckSecret(secret string) error
	// CheckToken Bearer 관리자 토큰 검증
	CheckToken(tokenString string) error
	// IssueToken 공유 비밀값을 단기 관리자 토큰으로 교환
	IssueToken(secret string) (string, time.Time, error)
}

// AdminClaims 관리자 토큰 클레임
type AdminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// StaticKeyGate 공유 비밀값 + HS256 관리자 토큰 기반 AdminGate 구현
type StaticKeyGate struct {
	sharedSecret []byte
	signingKey   []byte
	tokenExpiry  time.Duration
}

// NewStaticKeyGate StaticKeyGate 생성
func NewStaticKeyGate(sharedSecret, signingKey string, tokenExpiry time.Duration) *StaticKeyGate {
	return &StaticKeyGate{
		sharedSecret: []byte(sharedSecret),
		signingKey:   []byte(signingKey),
		tokenExpiry:  tokenExpiry,
	}
}

// CheckSecret 공유 비밀값 비교 (상수 시간)
func (g *StaticKeyGate) CheckSecret(secret string) error {
	if len(g.sharedSecret) == 0 {
		return ErrInvalidCredential
	}
	if subtle.ConstantTimeCompare(g.sharedSecret, []byte(secret)) != 1 {
		return ErrInvalidCredential
	}
	return nil
}

// IssueToken 비밀값이 맞으면 단기 관리자 토큰 발급
func (g *StaticKeyGate) IssueToken(secret string) (string, time.Time, error) {
	if err := g.CheckSecret(secret); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(g.tokenExpiry)
	claims := &AdminClaims{
		Scope: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "halloffame-api",
			Subject:   "admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// CheckToken 관리자 토큰 검증
func (g *StaticKeyGate) CheckToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Scope != "admin" {
		return ErrInvalidToken
	}

	return nil
}
