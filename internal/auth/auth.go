package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/arjav-14/cost-console/internal/user"
)

// Claims are the JWT token claims: the actor's identity and role. Role is
// re-validated against the closed enum on every parse, so a forged or stale
// value never reaches a policy decision.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates signed credentials.
type TokenGenerator interface {
	GenerateAccessToken(u *user.User) (string, error)
	GenerateRefreshToken(u *user.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
