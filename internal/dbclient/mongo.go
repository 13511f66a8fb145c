package dbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"dayflow/internal/domain"
)

const mongoOpTimeout = 10 * time.Second

// mongoBackend implements Backend on MongoDB. Pages live in the "pages"
// collection, one document per page with the JSON contract stored whole
// in the doc field. ReplaceOne with upsert is last-write-wins.
type mongoBackend struct {
	client *mongo.Client
	pages  *mongo.Collection
}

// pageDoc is the stored shape: the page JSON plus indexed metadata.
type pageDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Title     string    `bson:"title"`
	Doc       string    `bson:"doc"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newMongoBackend(uri string) (*mongoBackend, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database("dayflow")
	return &mongoBackend{client: client, pages: db.Collection("pages")}, nil
}

func (b *mongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, nil)
}

func (b *mongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return b.client.Disconnect(ctx)
}

func (b *mongoBackend) CreatePage(p *domain.Page) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	doc, err := encodePage(p)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err = b.pages.InsertOne(ctx, doc)
	return err
}

func (b *mongoBackend) GetPage(id string) (*domain.Page, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	var doc pageDoc
	if err := b.pages.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return decodePage(doc)
}

func (b *mongoBackend) ListPages(userID string) ([]domain.Page, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	cursor, err := b.pages.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pages []domain.Page
	for cursor.Next(ctx) {
		var doc pageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := decodePage(doc)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	return pages, cursor.Err()
}

func (b *mongoBackend) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	doc, err := encodePage(p)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err = b.pages.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc,
		options.Replace().SetUpsert(true))
	return err
}

func (b *mongoBackend) DeletePage(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err := b.pages.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func encodePage(p *domain.Page) (pageDoc, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return pageDoc{}, fmt.Errorf("marshal page: %w", err)
	}
	return pageDoc{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Doc:       string(raw),
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func decodePage(doc pageDoc) (*domain.Page, error) {
	var p domain.Page
	if err := json.Unmarshal([]byte(doc.Doc), &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &p, nil
}
