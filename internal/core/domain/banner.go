package domain

import (
	"errors"
	"time"
)

var ErrBannerNotFound = errors.New("banner not found")

// Banner is a promotional image shown on the storefront carousel.
// Public listings only include active banners, ordered by Ordem ascending.
type Banner struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Imagem   string    `json:"imagem" bson:"imagem"`
	Ordem    int       `json:"ordem" bson:"ordem"`
	Ativo    bool      `json:"ativo" bson:"ativo"`
	CriadoEm time.Time `json:"criadoEm" bson:"criadoEm"`
}
