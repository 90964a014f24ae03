package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

var (
	ErrMissingClaims = errors.New("missing token claims")
	ErrInvalidRole   = errors.New("invalid role claim")
	ErrInvalidToken  = errors.New("invalid or expired access token")
	ErrAdminRequired = errors.New("admin privileges required")
)

// Claims is the subset of access token claims this service relies on.
type Claims struct {
	Subject    string
	EmployeeID string
	Role       Role
}

type Service interface {
	// GenerateAccessToken signs an access token. Production tokens come from the
	// identity provider; this is used by tooling and tests.
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(c Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"sub":  c.Subject,
		"role": string(c.Role),
		"type": "access",
		"exp":  expiresAt,
	}
	if c.EmployeeID != "" {
		claims["employee_id"] = c.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the verified token claims placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	if token == nil || raw == nil {
		return Claims{}, ErrMissingClaims
	}

	var c Claims
	c.Subject, _ = raw["sub"].(string)
	c.EmployeeID, _ = raw["employee_id"].(string)

	role, _ := raw["role"].(string)
	c.Role = Role(role)
	if !c.Role.IsValid() {
		return Claims{}, ErrInvalidRole
	}

	return c, nil
}

// NewContext signs c and stores the verified token in ctx the way jwtauth.Verifier
// does for a request.
func NewContext(ctx context.Context, svc Service, c Claims) (context.Context, error) {
	tokenString, _, err := svc.GenerateAccessToken(c)
	if err != nil {
		return nil, err
	}
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	if err != nil {
		return nil, err
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
