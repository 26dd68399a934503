package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pokeshop/storefront/internal/core/domain"
)

const bannersCollection = "banners"

type BannerRepository struct {
	coll *mongo.Collection
}

func NewBannerRepository(db *mongo.Database) *BannerRepository {
	return &BannerRepository{coll: db.Collection(bannersCollection)}
}

type mongoBanner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Imagem   string             `bson:"imagem"`
	Ordem    int                `bson:"ordem"`
	Ativo    bool               `bson:"ativo"`
	CriadoEm time.Time          `bson:"criadoEm"`
}

func (mb *mongoBanner) toDomain() *domain.Banner {
	return &domain.Banner{
		ID:       mb.ID.Hex(),
		Imagem:   mb.Imagem,
		Ordem:    mb.Ordem,
		Ativo:    mb.Ativo,
		CriadoEm: mb.CriadoEm,
	}
}

func (r *BannerRepository) FindActive(ctx context.Context) ([]*domain.Banner, error) {
	return r.find(ctx, bson.M{"ativo": true})
}

func (r *BannerRepository) FindAll(ctx context.Context) ([]*domain.Banner, error) {
	return r.find(ctx, bson.M{})
}

func (r *BannerRepository) find(ctx context.Context, filter bson.M) ([]*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ordem", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer cur.Close(ctx)

	banners := make([]*domain.Banner, 0)
	for cur.Next(ctx) {
		var mb mongoBanner
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode banner: %w", err)
		}
		banners = append(banners, mb.toDomain())
	}
	return banners, cur.Err()
}

func (r *BannerRepository) FindByID(ctx context.Context, id string) (*domain.Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBannerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBanner
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBannerNotFound
		}
		return nil, fmt.Errorf("find banner: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BannerRepository) Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBanner{
		Imagem:   b.Imagem,
		Ordem:    b.Ordem,
		Ativo:    b.Ativo,
		CriadoEm: b.CriadoEm,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert banner: %w", err)
	}

	created := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrBannerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"imagem": b.Imagem,
		"ordem":  b.Ordem,
		"ativo":  b.Ativo,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBannerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}
