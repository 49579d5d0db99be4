// Package identity turns an externally issued identity token into a User.
// Tokens are decoded locally; their signatures are not verified.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// GuestID is the user ID of the unauthenticated learner.
const GuestID = "guest"

// ErrMissingSubject is returned for tokens without a "sub" claim.
var ErrMissingSubject = errors.New("identity token has no subject")

// User is the signed-in learner.
type User struct {
	ID      string
	Name    string
	Email   string
	Picture string
}

// Guest returns the unauthenticated learner. It has no email or picture.
func Guest() User {
	return User{ID: GuestID, Name: "Guest Learner"}
}

// IsGuest reports whether u is the unauthenticated learner.
func (u User) IsGuest() bool {
	return u.ID == GuestID
}

// Claims are the identity token claims Lingo reads.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Decode extracts the user from an identity token without verifying its
// signature.
func Decode(token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, fmt.Errorf("decode identity token: empty token")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return User{}, fmt.Errorf("decode identity token: %w", err)
	}
	if claims.Subject == "" {
		return User{}, ErrMissingSubject
	}

	return User{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}

// Config describes the external identity provider.
type Config struct {
	// ClientID of the sign-in provider. Empty disables sign-in.
	ClientID string `mapstructure:"client_id"`
}

// Enabled reports whether a provider is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.ClientID) != ""
}

// Outcome is the result kind of Resolve.
type Outcome int

const (
	// OutcomeGuest means no provider is configured or no token was given.
	OutcomeGuest Outcome = iota
	// OutcomeAuthenticated means the token decoded to a user.
	OutcomeAuthenticated
	// OutcomeFailed means the token could not be decoded; the user falls
	// back to guest.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeFailed:
		return "failed"
	default:
		return "guest"
	}
}

// Result is the settled identity for the session.
type Result struct {
	User    User
	Outcome Outcome
	Err     error
}

// Resolve settles the session identity before anything authenticated is
// shown. It never fails outright: decode errors fall back to the guest.
func Resolve(ctx context.Context, cfg Config, token string) Result {
	if err := ctx.Err(); err != nil {
		return Result{User: Guest(), Outcome: OutcomeFailed, Err: err}
	}
	if !cfg.Enabled() || strings.TrimSpace(token) == "" {
		return Result{User: Guest(), Outcome: OutcomeGuest}
	}

	u, err := Decode(token)
	if err != nil {
		slog.WarnContext(ctx, "identity token rejected, continuing as guest", "error", err)
		return Result{User: Guest(), Outcome: OutcomeFailed, Err: err}
	}
	slog.InfoContext(ctx, "signed in", "user_id", u.ID)
	return Result{User: u, Outcome: OutcomeAuthenticated}
}
