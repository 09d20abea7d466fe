package models

import "errors"

var ErrNilCard = errors.New("nil card")

// ToView copies the public fields of c and drops the id.
func ToView(c *Card) (CardView, error) {
	if c == nil {
		return CardView{}, ErrNilCard
	}
	return CardView{
		Name:     c.Name,
		Type:     c.Type,
		Rarity:   c.Rarity,
		ImageUrl: c.ImageUrl,
	}, nil
}

// ToEntity builds a card from v. The id is left zero for the store to assign.
func ToEntity(v CardView) Card {
	return Card{
		Name:     v.Name,
		Type:     v.Type,
		Rarity:   v.Rarity,
		ImageUrl: v.ImageUrl,
	}
}
