package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeStatus records whether the user completed one of the current
// daily challenges. The set of ids is kept in sync with the challenge
// catalog on every read.
type ChallengeStatus struct {
	ChallengeID string `bson:"challengeId" json:"challengeId"`
	Completed   bool   `bson:"completed" json:"completed"`
}

// Enemy is the user's current opponent, embedded in the user document.
type Enemy struct {
	Name   string `bson:"name" json:"name"`
	Image  string `bson:"image" json:"image"`
	Health int    `bson:"health" json:"health"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Username     string `bson:"username" json:"username"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"` // never returned in JSON

	Points              int               `bson:"points" json:"points"`
	Enemy               *Enemy            `bson:"enemy" json:"enemy,omitempty"`
	EnemyHealthModifier int               `bson:"enemyHealthModifier" json:"enemyHealthModifier"`
	Inventory           []string          `bson:"inventory" json:"inventory"`
	ChallengeStatuses   []ChallengeStatus `bson:"challengeStatuses" json:"challengeStatuses"`
	LastStreakDate      *time.Time        `bson:"lastStreakDate" json:"lastStreakDate"`
}
