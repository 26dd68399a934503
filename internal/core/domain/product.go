package domain

import (
	"errors"
	"math"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidCategory = errors.New("invalid category")
var ErrInvalidUpload = errors.New("invalid upload")

// categories is the fixed catalog taxonomy. It is not derived from stored
// data; /api/products/tipos returns it verbatim.
var categories = []string{"Pokébola", "Carta", "Pelúcia", "Acessório", "Jogo"}

// Product is a catalog item. Estoque never goes negative; the repository's
// conditional decrement enforces that under concurrent checkouts.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Nome      string    `json:"nome" bson:"nome"`
	Preco     float64   `json:"preco" bson:"preco"`
	Estoque   int       `json:"estoque" bson:"estoque"`
	Categoria string    `json:"categoria,omitempty" bson:"categoria,omitempty"`
	Descricao string    `json:"descricao,omitempty" bson:"descricao,omitempty"`
	Imagem    string    `json:"imagem,omitempty" bson:"imagem,omitempty"`
	CriadoEm  time.Time `json:"criadoEm" bson:"criadoEm"`
}

// Categories returns the fixed category list.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether c is empty or one of the fixed categories.
func ValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, known := range categories {
		if known == c {
			return true
		}
	}
	return false
}

// RoundPrice rounds a price to two-decimal (centavo) semantics.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
