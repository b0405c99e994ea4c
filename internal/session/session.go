// Package session persists per-visitor storefront state: the signed-in user
// and token, the cart, and any checkout in progress.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/checkout"
)

var ErrNotFound = errors.New("session not found")

// User is the signed-in account as seen by the storefront
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the state for one visitor
type Session struct {
	ID        string         `json:"id"`
	User      *User          `json:"user"`
	Token     string         `json:"token,omitempty"`
	Cart      *cart.Cart     `json:"cart"`
	Checkout  *checkout.Flow `json:"checkout,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// New creates an anonymous session with an empty cart
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Cart:      cart.New(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Authenticated reports whether a user is signed in
func (s *Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// SignIn attaches user and token
func (s *Session) SignIn(user User, token string) {
	s.User = &user
	s.Token = token
}

// SignOut forgets the user. The cart stays with the session.
func (s *Session) SignOut() {
	s.User = nil
	s.Token = ""
	s.Checkout = nil
}

// Store loads and saves sessions. Every mutation is written through.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

func normalize(s *Session) {
	if s.Cart == nil {
		s.Cart = cart.New()
	}
	if s.Cart.Lines == nil {
		s.Cart.Lines = []cart.Line{}
	}
}
