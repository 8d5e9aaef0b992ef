package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "claims"

var (
	errMissingToken = errors.New("missing authorization header")
	errBadHeader    = errors.New("invalid authorization header format")
	errBadToken     = errors.New("invalid token")
)

// Claims represents the JWT claims carried by admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates bearer tokens signed with a shared HMAC secret and
// decides whether the caller is an administrator.
type Auth struct {
	secret    []byte
	adminRole string
}

// NewAuth creates an Auth for the given secret and admin role name.
func NewAuth(secret, adminRole string) *Auth {
	return &Auth{secret: []byte(secret), adminRole: adminRole}
}

// OptionalAdmin records the claims of a valid token and lets every request
// through. Anonymous and invalid callers are treated as public readers.
func (a *Auth) OptionalAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := a.parse(c.GetHeader("Authorization")); err == nil {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests without a valid admin token.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.parse(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if claims.Role != a.adminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// IsAdmin reports whether the request carries valid admin claims.
func (a *Auth) IsAdmin(c *gin.Context) bool {
	claims, ok := GetClaims(c)
	return ok && claims.Role == a.adminRole
}

func (a *Auth) parse(header string) (*Claims, error) {
	if header == "" {
		return nil, errMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadHeader
	}

	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, errBadToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errBadToken
	}
	return claims, nil
}

// GetClaims extracts claims from the gin context.
func GetClaims(c *gin.Context) (*Claims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	cl, ok := claims.(*Claims)
	return cl, ok
}

// MintToken signs an HS256 token for subject with the given role.
// A zero ttl produces a token without expiry.
func MintToken(secret, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
