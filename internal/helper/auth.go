package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/campusboard/board-service/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	// Same cost the original service used for user passwords.
	passwordHashCost = 10
)

// Auth issues and verifies the HS256 token pair and wraps the bcrypt
// primitives used for credentials.
type Auth struct {
	AccessSecret  string
	RefreshSecret string
}

func SetupAuth(accessSecret, refreshSecret string) Auth {
	return Auth{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
	}
}

func (a Auth) GenerateAccessToken(userID uint) (string, error) {
	return a.signToken(userID, "access", a.AccessSecret, accessTokenTTL)
}

func (a Auth) GenerateRefreshToken(userID uint) (string, error) {
	return a.signToken(userID, "refresh", a.RefreshSecret, refreshTokenTTL)
}

func (a Auth) signToken(userID uint, typ, secret string, ttl time.Duration) (string, error) {
	if userID == 0 {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"typ":     typ,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyAccessToken accepts both "Bearer <token>" and a bare token string.
func (a Auth) VerifyAccessToken(tokenString string) (dto.AuthClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthClaims{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthClaims{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.AccessSecret), nil
	})
	if err != nil {
		return dto.AuthClaims{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthClaims{}, errors.New("invalid token claims")
	}

	if typ, _ := claims["typ"].(string); typ != "access" {
		return dto.AuthClaims{}, errors.New("not an access token")
	}

	expAny, ok := claims["exp"]
	if !ok {
		return dto.AuthClaims{}, errors.New("missing expiry")
	}
	expFloat, ok := expAny.(float64)
	if !ok {
		return dto.AuthClaims{}, errors.New("invalid expiry type")
	}
	if float64(time.Now().Unix()) > expFloat {
		return dto.AuthClaims{}, errors.New("token expired")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return dto.AuthClaims{}, errors.New("invalid user_id claim")
	}

	iat, _ := claims["iat"].(float64)

	return dto.AuthClaims{
		UserID: uint(userIDFloat),
		Expiry: expFloat,
		Iat:    iat,
	}, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
