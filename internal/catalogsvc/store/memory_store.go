package store

import (
	"context"
	"sort"
	"sync"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
)

// MemoryCardStore keeps cards in process memory. Ids start at 1.
type MemoryCardStore struct {
	mu     sync.RWMutex
	nextID int64
	cards  map[int64]models.Card
}

func NewMemoryCardStore() *MemoryCardStore {
	return &MemoryCardStore{cards: make(map[int64]models.Card)}
}

func (s *MemoryCardStore) Create(ctx context.Context, card models.Card) (models.Card, error) {
	if err := ctx.Err(); err != nil {
		return models.Card{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	card.ID = s.nextID
	s.cards[card.ID] = card
	return card, nil
}

func (s *MemoryCardStore) GetByID(ctx context.Context, id int64) (models.Card, error) {
	if err := ctx.Err(); err != nil {
		return models.Card{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	return card, nil
}

func (s *MemoryCardStore) List(ctx context.Context) ([]models.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cards := make([]models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		cards = append(cards, c)
	}
	s.mu.RUnlock()

	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}
