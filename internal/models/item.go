package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is a cosmetic shop item. The catalog is read-only at runtime;
// a purchase stores the item's hex id in the user's inventory.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       int                `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
}
