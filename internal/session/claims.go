package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blackwell-systems/libractl/internal/library"
)

// Claims are the token fields the client reads for display.
type Claims struct {
	Subject   string
	Role      library.Role
	ExpiresAt time.Time
}

// ParseClaims reads a JWT's payload without verifying its signature. The
// gateway verifies tokens; the client only shows expiry and role. Opaque
// tokens return an error and should be treated as claim-less.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parsing token claims: %w", err)
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = library.Role(role)
	}
	return c, nil
}
