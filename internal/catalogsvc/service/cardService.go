package service

import (
	"context"
	"fmt"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	"github.com/avvvet/card-catalog/internal/catalogsvc/store"
	log "github.com/sirupsen/logrus"
)

// CardNotifier is told about every card after it has been stored.
type CardNotifier interface {
	CardCreated(card models.Card) error
}

// BatchError reports the position of the first card a bulk create could not
// store. Cards before Index remain stored.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("card at index %d: %s", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

type CardService struct {
	store    store.CardStore
	notifier CardNotifier
}

func NewCardService(store store.CardStore) *CardService {
	return &CardService{store: store}
}

// SetNotifier attaches n; a nil notifier disables notifications.
func (s *CardService) SetNotifier(n CardNotifier) {
	s.notifier = n
}

func (s *CardService) GetAllCards(ctx context.Context) ([]models.Card, error) {
	return s.store.List(ctx)
}

func (s *CardService) GetCardByID(ctx context.Context, id int64) (models.CardView, error) {
	card, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.CardView{}, err
	}
	return models.ToView(&card)
}

func (s *CardService) AddCard(ctx context.Context, card models.Card) (models.Card, error) {
	card.ID = 0
	created, err := s.store.Create(ctx, card)
	if err != nil {
		return models.Card{}, err
	}
	s.notify(created)
	return created, nil
}

// CreateMultipleCards stores views in order and returns them unchanged. It
// stops at the first failure and returns a *BatchError.
func (s *CardService) CreateMultipleCards(ctx context.Context, views []models.CardView) ([]models.CardView, error) {
	for i, v := range views {
		created, err := s.store.Create(ctx, models.ToEntity(v))
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		s.notify(created)
	}
	if views == nil {
		views = []models.CardView{}
	}
	return views, nil
}

func (s *CardService) notify(card models.Card) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CardCreated(card); err != nil {
		log.Warnf("card %d stored but notification failed: %s", card.ID, err)
	}
}
