package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// In-memory stubs for the ports interfaces, shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
	deleted  []string
	touched  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Cart = append([]domain.CartLine(nil), s.Cart...)
	return &clone
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(sess), nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) Touch(_ context.Context, id string) error {
	s.touched = append(s.touched, id)
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) add(p *domain.Product) *domain.Product {
	r.nextID++
	created := cloneProduct(p)
	created.ID = "p" + strconv.Itoa(r.nextID)
	r.products[created.ID] = created
	return cloneProduct(created)
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return r.add(p), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id string, n int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Estoque < n {
		return domain.ErrOutOfStock
	}
	p.Estoque -= n
	return nil
}

type stubBannerRepo struct {
	banners map[string]*domain.Banner
	nextID  int
}

func newStubBannerRepo() *stubBannerRepo {
	return &stubBannerRepo{banners: make(map[string]*domain.Banner)}
}

func cloneBanner(b *domain.Banner) *domain.Banner {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBannerRepo) FindActive(_ context.Context) ([]*domain.Banner, error) {
	out := make([]*domain.Banner, 0)
	for _, b := range r.banners {
		if b.Ativo {
			out = append(out, cloneBanner(b))
		}
	}
	return out, nil
}

func (r *stubBannerRepo) FindAll(_ context.Context) ([]*domain.Banner, error) {
	out := make([]*domain.Banner, 0, len(r.banners))
	for _, b := range r.banners {
		out = append(out, cloneBanner(b))
	}
	return out, nil
}

func (r *stubBannerRepo) FindByID(_ context.Context, id string) (*domain.Banner, error) {
	b, ok := r.banners[id]
	if !ok {
		return nil, domain.ErrBannerNotFound
	}
	return cloneBanner(b), nil
}

func (r *stubBannerRepo) Create(_ context.Context, b *domain.Banner) (*domain.Banner, error) {
	r.nextID++
	created := cloneBanner(b)
	created.ID = "b" + strconv.Itoa(r.nextID)
	r.banners[created.ID] = created
	return cloneBanner(created), nil
}

func (r *stubBannerRepo) Update(_ context.Context, b *domain.Banner) error {
	if _, ok := r.banners[b.ID]; !ok {
		return domain.ErrBannerNotFound
	}
	r.banners[b.ID] = cloneBanner(b)
	return nil
}

func (r *stubBannerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.banners[id]; !ok {
		return domain.ErrBannerNotFound
	}
	delete(r.banners, id)
	return nil
}

type stubFileStore struct {
	saved      int
	removed    []string
	failSave   error
	failRemove error
}

func (s *stubFileStore) Save(upload ports.FileUpload) (string, error) {
	if s.failSave != nil {
		return "", s.failSave
	}
	s.saved++
	return fmt.Sprintf("/uploads/file-%d.png", s.saved), nil
}

func (s *stubFileStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return s.failRemove
}
