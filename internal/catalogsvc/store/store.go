package store

import (
	"context"
	"errors"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
)

var ErrNotFound = errors.New("card not found")

// CardStore persists cards. Create ignores the id of its input and returns
// the stored card with a freshly assigned one.
type CardStore interface {
	Create(ctx context.Context, card models.Card) (models.Card, error)
	GetByID(ctx context.Context, id int64) (models.Card, error)
	List(ctx context.Context) ([]models.Card, error)
}
