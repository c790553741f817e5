package authjwt

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// Config defines the config for the JWT middleware.
type Config struct {
	// The EC public key for validating ES256 tokens.
	PublicKey string
	// The claim key where the user data is stored.
	ClaimKey string
	// The context key to store the UserContext.
	UserCtxName string
	// Optional lets requests without a token through as anonymous. A token
	// that is present but invalid is still rejected.
	Optional bool
}

func configDefault(cfg Config) Config {
	if cfg.ClaimKey == "" {
		cfg.ClaimKey = "claim"
	}
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}
	return cfg
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	cfg = configDefault(cfg)

	// Parse the key once on startup.
	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		panic(fmt.Sprintf("failed to parse EC public key: %v", err))
	}

	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)

		if tokenString == "" {
			if cfg.Optional {
				return c.Next()
			}
			return unauthorized(c, "Missing or invalid JWT", nil)
		}

		userCtx, err := validate(tokenString, ecPublicKey, cfg.ClaimKey)
		if err != nil {
			return unauthorized(c, "Invalid token", err)
		}

		c.Locals(cfg.UserCtxName, userCtx)
		return c.Next()
	}
}

// ValidateToken validates a JWT token and returns the UserContext if valid.
// It does not write to the response.
func ValidateToken(tokenString string, publicKey string, claimKey string) (types.UserContext, error) {
	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(publicKey))
	if err != nil {
		return types.UserContext{}, fmt.Errorf("failed to parse EC public key: %w", err)
	}
	return validate(tokenString, ecPublicKey, claimKey)
}

// extractToken reads the Authorization bearer token, falling back to the
// access_token cookie used by browsers
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get(types.HeaderAuthorization)
	if strings.HasPrefix(authHeader, types.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, types.BearerPrefix))
	}
	return c.Cookies("access_token")
}

func validate(tokenString string, key *ecdsa.PublicKey, claimKey string) (types.UserContext, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Enforce the expected signing algorithm.
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return types.UserContext{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return types.UserContext{}, errors.New("invalid token")
	}

	claimData, ok := claims[claimKey].(map[string]interface{})
	if !ok {
		return types.UserContext{}, errors.New("invalid token claim format")
	}

	return mapToUserContext(claimData)
}

// mapToUserContext converts claim data to UserContext
func mapToUserContext(claimData map[string]interface{}) (types.UserContext, error) {
	var userCtx types.UserContext

	switch uid := claimData[types.HeaderUID].(type) {
	case string:
		id, err := strconv.ParseInt(uid, 10, 64)
		if err != nil {
			return userCtx, fmt.Errorf("invalid user ID: %v", err)
		}
		userCtx.UserID = id
	case float64:
		userCtx.UserID = int64(uid)
	default:
		return userCtx, errors.New("missing or invalid uid in claim")
	}
	if userCtx.UserID <= 0 {
		return userCtx, errors.New("user ID must be positive")
	}

	if username, ok := claimData["username"].(string); ok {
		userCtx.Username = username
	}
	if displayName, ok := claimData["displayName"].(string); ok {
		userCtx.DisplayName = displayName
	}

	return userCtx, nil
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": message,
	}
	if err != nil {
		body["details"] = err.Error()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
