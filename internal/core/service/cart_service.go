package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// CartService mutates the session-scoped cart and performs checkout.
type CartService struct {
	products ports.ProductRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewCartService(products ports.ProductRepository, sessions ports.SessionStore, logger zerolog.Logger) *CartService {
	return &CartService{products: products, sessions: sessions, logger: logger}
}

func (s *CartService) View(sess *domain.Session) []domain.CartLine {
	if sess == nil || sess.Cart == nil {
		return []domain.CartLine{}
	}
	return sess.Cart
}

// Add appends a line snapshotting the product at current catalog values.
// A later price change in the catalog does not touch lines already added.
func (s *CartService) Add(ctx context.Context, sess *domain.Session, productID string) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	sess.Cart = append(sess.Cart, domain.CartLine{
		ProductID: product.ID,
		Nome:      product.Nome,
		Preco:     product.Preco,
		Imagem:    product.Imagem,
	})
	return s.sessions.Save(ctx, sess)
}

// Remove drops the line at index. Out-of-bounds indices are a no-op so a
// stale client view never turns into an error.
func (s *CartService) Remove(ctx context.Context, sess *domain.Session, index int) error {
	if index < 0 || index >= len(sess.Cart) {
		return nil
	}
	sess.Cart = append(sess.Cart[:index], sess.Cart[index+1:]...)
	return s.sessions.Save(ctx, sess)
}

// Checkout runs in two passes. The first re-fetches every product and fails
// on the first missing or out-of-stock line without mutating anything. Only
// then does the second pass commit the decrements, one unit per line, each
// through the repository's conditional update so a decrement that loses a
// race with a concurrent checkout still cannot drive stock negative.
func (s *CartService) Checkout(ctx context.Context, sess *domain.Session) (*domain.Receipt, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if len(sess.Cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Pass 1: validate. Lines for the same product each need a unit, so
	// stock is checked against the line count per product.
	needed := make(map[string]int, len(sess.Cart))
	for _, line := range sess.Cart {
		needed[line.ProductID]++
	}
	for _, line := range sess.Cart {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.CheckoutLineError{Err: domain.ErrProductGone, Produto: line.Nome}
			}
			return nil, err
		}
		if product.Estoque < needed[line.ProductID] {
			return nil, &domain.CheckoutLineError{Err: domain.ErrOutOfStock, Produto: line.Nome}
		}
	}

	// Pass 2: commit. A conditional decrement can still lose to a
	// concurrent checkout; earlier decrements in this loop are not rolled
	// back, but stock never goes below zero.
	total := 0.0
	for _, line := range sess.Cart {
		if err := s.products.DecrementStock(ctx, line.ProductID, 1); err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.CheckoutLineError{Err: domain.ErrProductGone, Produto: line.Nome}
			}
			if errors.Is(err, domain.ErrOutOfStock) {
				return nil, &domain.CheckoutLineError{Err: domain.ErrOutOfStock, Produto: line.Nome}
			}
			return nil, err
		}
		total += line.Preco
	}

	receipt := &domain.Receipt{Itens: len(sess.Cart), Total: domain.RoundPrice(total)}
	sess.Cart = nil
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", sess.UserID).Int("itens", receipt.Itens).Float64("total", receipt.Total).Msg("checkout committed")
	return receipt, nil
}
