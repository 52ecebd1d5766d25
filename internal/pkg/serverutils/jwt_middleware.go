package serverutils

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalEmail  = "email"

	RoleAdmin = "admin"
)

var (
	secretMu  sync.RWMutex
	jwtSecret []byte
)

// SetJwtSecret fixes the HMAC secret. Until it is called JWT_SECRET is read
// from the environment on every request.
func SetJwtSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	jwtSecret = []byte(secret)
}

func secret() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if len(jwtSecret) > 0 {
		return jwtSecret
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

// Claims is what the handlers need from a verified token.
type Claims struct {
	UserID string
	Role   string
	Email  string
}

// ParseToken verifies an HMAC signed token and extracts its claims. The
// subject is accepted when user_id is absent.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	c := &Claims{}
	c.UserID, _ = mc["user_id"].(string)
	if c.UserID == "" {
		c.UserID, _ = mc["sub"].(string)
	}
	c.Role, _ = mc["role"].(string)
	c.Email, _ = mc["email"].(string)
	if c.UserID == "" {
		return nil, errors.New("token has no subject")
	}
	return c, nil
}

func bearer(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return authHeader[7:], true
}

func setLocals(ctx *fiber.Ctx, c *Claims) {
	ctx.Locals(LocalUserID, c.UserID)
	ctx.Locals(LocalRole, c.Role)
	ctx.Locals(LocalEmail, c.Email)
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr, ok := bearer(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}
	claims, err := ParseToken(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}
	setLocals(ctx, claims)
	return ctx.Next()
}

// OptionalJwt sets the user locals when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalJwt(ctx *fiber.Ctx) error {
	if tokenStr, ok := bearer(ctx); ok {
		if claims, err := ParseToken(tokenStr); err == nil {
			setLocals(ctx, claims)
		}
	}
	return ctx.Next()
}

// AdminOnly must run after JwtMiddleware.
func AdminOnly(ctx *fiber.Ctx) error {
	if role, _ := ctx.Locals(LocalRole).(string); role != RoleAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Admin access required"))
	}
	return ctx.Next()
}

// CurrentUser returns the authenticated user id, or "" for anonymous
// requests.
func CurrentUser(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LocalUserID).(string)
	return id
}

func IsAdmin(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals(LocalRole).(string)
	return role == RoleAdmin
}
