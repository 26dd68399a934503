package domain

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty")
var ErrOutOfStock = errors.New("product out of stock")
var ErrProductGone = errors.New("product no longer exists")

// CartLine is one entry in a session's cart. Nome, Preco and Imagem are
// snapshots taken at add-time; later catalog changes do not affect lines
// already in the cart, so the displayed total is the total checkout charges.
type CartLine struct {
	ProductID string  `json:"productId"`
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Imagem    string  `json:"imagem,omitempty"`
}

// Session is the ephemeral per-client state carried by the session cookie.
// Identity fields are denormalized at login so /api/me needs no user lookup.
// ServerStart marks the boot time of the process that created the session;
// sessions from a previous process are discarded on first use.
type Session struct {
	ID          string     `json:"-"`
	UserID      string     `json:"userId,omitempty"`
	Nome        string     `json:"nome,omitempty"`
	Role        Role       `json:"role,omitempty"`
	Cargo       string     `json:"cargo,omitempty"`
	ServerStart int64      `json:"serverStart"`
	Cart        []CartLine `json:"cart,omitempty"`
}

// NewSessionID generates an opaque session id with 256 bits of entropy.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// CheckoutLineError identifies the cart line that made a checkout fail.
type CheckoutLineError struct {
	Err     error // ErrOutOfStock or ErrProductGone
	Produto string
}

func (e *CheckoutLineError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Produto)
}

func (e *CheckoutLineError) Unwrap() error { return e.Err }

// Receipt summarizes a successful checkout.
type Receipt struct {
	Itens int     `json:"itens"`
	Total float64 `json:"total"`
}
