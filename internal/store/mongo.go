package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/questforge/questforge-backend/internal/models"
)

// MongoUsers implements UserRepository on the "users" collection.
type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{col: db.Collection("users")}
}

func (r *MongoUsers) Insert(ctx context.Context, user *models.User) (string, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	user.ID = oid
	return oid.Hex(), nil
}

func (r *MongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the patch as a single $set so concurrent readers never
// observe a partially applied transition.
func (r *MongoUsers) Update(ctx context.Context, id string, patch UserPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if patch.IsZero() {
		return nil
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		set["passwordHash"] = *patch.PasswordHash
	}
	if patch.Points != nil {
		set["points"] = *patch.Points
	}
	if patch.SetEnemy {
		set["enemy"] = patch.Enemy
	}
	if patch.EnemyHealthModifier != nil {
		set["enemyHealthModifier"] = *patch.EnemyHealthModifier
	}
	if patch.SetInventory {
		set["inventory"] = patch.Inventory
	}
	if patch.SetChallengeStatuses {
		set["challengeStatuses"] = patch.ChallengeStatuses
	}
	if patch.SetLastStreakDate {
		set["lastStreakDate"] = patch.LastStreakDate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUsers) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoChallenges implements ChallengeRepository on the "challenges"
// collection.
type MongoChallenges struct {
	col *mongo.Collection
}

func NewMongoChallenges(db *mongo.Database) *MongoChallenges {
	return &MongoChallenges{col: db.Collection("challenges")}
}

func (r *MongoChallenges) FindAll(ctx context.Context) ([]models.Challenge, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var challenges []models.Challenge
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *MongoChallenges) InsertMany(ctx context.Context, challenges []models.Challenge) ([]models.Challenge, error) {
	docs := make([]interface{}, len(challenges))
	for i := range challenges {
		docs[i] = challenges[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			challenges[i].ID = oid
		}
	}
	return challenges, nil
}

func (r *MongoChallenges) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoItems implements ItemRepository on the "items" collection.
type MongoItems struct {
	col *mongo.Collection
}

func NewMongoItems(db *mongo.Database) *MongoItems {
	return &MongoItems{col: db.Collection("items")}
}

func (r *MongoItems) FindByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var item models.Item
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MongoItems) InsertMany(ctx context.Context, items []models.Item) error {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *MongoItems) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// MongoEnemyTemplates implements EnemyTemplateRepository on the
// "enemies" collection.
type MongoEnemyTemplates struct {
	col *mongo.Collection
}

func NewMongoEnemyTemplates(db *mongo.Database) *MongoEnemyTemplates {
	return &MongoEnemyTemplates{col: db.Collection("enemies")}
}

func (r *MongoEnemyTemplates) FindAll(ctx context.Context) ([]models.EnemyTemplate, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var templates []models.EnemyTemplate
	if err := cur.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *MongoEnemyTemplates) InsertMany(ctx context.Context, templates []models.EnemyTemplate) error {
	docs := make([]interface{}, len(templates))
	for i := range templates {
		docs[i] = templates[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *MongoEnemyTemplates) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
