package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid access token")
	ErrMissingSubject = errors.New("token has no subject")
)

// Principal is the authenticated identity carried by a provider-issued
// access token. ID mirrors the provider's subject identifier.
type Principal struct {
	ID          string
	Email       string
	Username    string
	DisplayName string
	AvatarURL   string
}

// claims mirrors the provider's access-token payload: registered claims
// plus the profile fields it packs into user_metadata.
type claims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Username  string `json:"username"`
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens issued by the hosted identity
// provider. It never issues tokens itself.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates a raw token and maps it to a Principal.
func (v *Verifier) Verify(raw string) (Principal, error) {
	c := &claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if _, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return Principal{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Principal{}, ErrMissingSubject
	}

	display := c.UserMetadata.FullName
	if display == "" {
		display = c.UserMetadata.Name
	}
	return Principal{
		ID:          c.Subject,
		Email:       c.Email,
		Username:    c.UserMetadata.Username,
		DisplayName: display,
		AvatarURL:   c.UserMetadata.AvatarURL,
	}, nil
}

// FallbackUsername picks a username for provisioning: provider metadata,
// then the email local-part, then a fixed default.
func (p Principal) FallbackUsername() string {
	if p.Username != "" {
		return p.Username
	}
	if i := strings.Index(p.Email, "@"); i > 0 {
		return p.Email[:i]
	}
	return "user"
}
