package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgCardStore struct {
	db *pgxpool.Pool
}

func NewPgCardStore(db *pgxpool.Pool) *PgCardStore {
	return &PgCardStore{db: db}
}

func (s *PgCardStore) Create(ctx context.Context, card models.Card) (models.Card, error) {
	query := `
		INSERT INTO cards (name, type, rarity, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query, card.Name, card.Type, card.Rarity, card.ImageUrl).Scan(&card.ID)
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

func (s *PgCardStore) GetByID(ctx context.Context, id int64) (models.Card, error) {
	query := `
		SELECT id, name, type, rarity, image_url
		FROM cards
		WHERE id = $1
	`

	var card models.Card
	err := s.db.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.Name,
		&card.Type,
		&card.Rarity,
		&card.ImageUrl,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, fmt.Errorf("failed to get card by id: %w", err)
	}

	return card, nil
}

func (s *PgCardStore) List(ctx context.Context) ([]models.Card, error) {
	query := `SELECT id, name, type, rarity, image_url FROM cards`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(
			&card.ID,
			&card.Name,
			&card.Type,
			&card.Rarity,
			&card.ImageUrl,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}
