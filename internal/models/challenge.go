package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is one entry of the shared daily challenge catalog.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	PointReward int                `bson:"pointReward" json:"pointReward"`
	EndTime     time.Time          `bson:"endTime" json:"endTime"`
}

// EnemyTemplate is a spawnable enemy archetype. Health is not stored on
// the template; it is computed from the base HP plus the user's modifier
// at spawn time.
type EnemyTemplate struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image" json:"image"`
}
