package client

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService handles signup and signin against the auth bounded context.
type AuthService struct {
	client *Client
	base   string
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	University string `json:"university,omitempty"`
	City       string `json:"city,omitempty"`
}

// SigninRequest is the login payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the auth endpoints' response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// Signup registers a new account and installs the returned token on the
// client.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := s.client.do(ctx, http.MethodPost, s.base+"/auth/signup", req, &out); err != nil {
		return nil, err
	}
	s.client.SetToken(out.AccessToken)
	return &out, nil
}

// Signin authenticates and installs the returned token on the client.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := s.client.do(ctx, http.MethodPost, s.base+"/auth/signin", req, &out); err != nil {
		return nil, err
	}
	s.client.SetToken(out.AccessToken)
	return &out, nil
}

// TokenExpiresAt reads the expiry claim out of the stored access token
// without verifying the signature; verification is the backend's job. The
// second return is false when no token is set or it carries no expiry.
func (c *Client) TokenExpiresAt() (time.Time, bool) {
	token := c.Token()
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the stored access token has an expiry in the
// past.
func (c *Client) TokenExpired() bool {
	exp, ok := c.TokenExpiresAt()
	return ok && time.Now().After(exp)
}
