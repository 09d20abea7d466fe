package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cardsCollection    = "cards"
	countersCollection = "counters"
)

// MongoCardStore keeps cards in the cards collection. Integer ids are issued
// from a sequence document in the counters collection.
type MongoCardStore struct {
	cards    *mongo.Collection
	counters *mongo.Collection
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func NewMongoCardStore(db *mongo.Database) *MongoCardStore {
	return &MongoCardStore{
		cards:    db.Collection(cardsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (s *MongoCardStore) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": cardsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}

func (s *MongoCardStore) Create(ctx context.Context, card models.Card) (models.Card, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to allocate card id: %w", err)
	}
	card.ID = id

	if _, err := s.cards.InsertOne(ctx, card); err != nil {
		return models.Card{}, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

func (s *MongoCardStore) GetByID(ctx context.Context, id int64) (models.Card, error) {
	var card models.Card
	err := s.cards.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, fmt.Errorf("failed to get card by id: %w", err)
	}
	return card, nil
}

func (s *MongoCardStore) List(ctx context.Context) ([]models.Card, error) {
	cursor, err := s.cards.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer cursor.Close(ctx)

	cards := make([]models.Card, 0)
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}
