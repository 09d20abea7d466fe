package models

// Card represents the cards table in the database.
type Card struct {
	ID       int64  `json:"id" bson:"_id"` // Primary key, assigned by the store
	Name     string `json:"name" bson:"name"`
	Type     string `json:"type" bson:"type"`
	Rarity   string `json:"rarity" bson:"rarity"`
	ImageUrl string `json:"imageUrl" bson:"imageUrl"`
}

// CardView is the wire shape of a card without its identifier.
type CardView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Rarity   string `json:"rarity"`
	ImageUrl string `json:"imageUrl"`
}
