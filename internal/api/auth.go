package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blackwell-systems/libractl/internal/library"
)

// LoginResult is what the gateway hands back for valid credentials.
type LoginResult struct {
	Token string       `json:"token"`
	User  library.User `json:"user"`
}

// UnmarshalJSON accepts token or access_token, optionally under data.
func (r *LoginResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Token       string       `json:"token"`
		AccessToken string       `json:"access_token"`
		User        library.User `json:"user"`
	}
	if err := json.Unmarshal(unwrapData(data), &aux); err != nil {
		return err
	}
	r.Token = aux.Token
	if r.Token == "" {
		r.Token = aux.AccessToken
	}
	r.User = aux.User
	return nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds library.Credentials) (*LoginResult, error) {
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, c.url("login"), creds, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	return &res, nil
}

// Logout revokes the current token on the gateway.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, c.url("logout"), struct{}{}, nil)
}

// Me returns the account the current token belongs to.
func (c *Client) Me(ctx context.Context) (*library.User, error) {
	data, err := c.send(ctx, http.MethodGet, c.url("user"), nil, nil)
	if err != nil {
		return nil, err
	}
	var u library.User
	if err := json.Unmarshal(unwrapKey(unwrapData(data), "user"), &u); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &u, nil
}

// unwrapData returns the value of a top-level "data" object, or data itself.
func unwrapData(data []byte) []byte {
	return unwrapKey(data, "data")
}

func unwrapKey(data []byte, key string) []byte {
	var m map[string]json.RawMessage
	if json.Unmarshal(data, &m) != nil {
		return data
	}
	inner, ok := m[key]
	if !ok {
		return data
	}
	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] != '{' {
		return data
	}
	return inner
}
