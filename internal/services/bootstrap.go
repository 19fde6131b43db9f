package services

import (
	"context"
	"log"

	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

// DefaultEnemyTemplates is the embedded fallback pool, also seeded into
// the enemies collection on first boot.
var DefaultEnemyTemplates = []models.EnemyTemplate{
	{Name: "Sloth Fiend", Image: "/images/enemies/sloth-fiend.png"},
	{Name: "Doom Scroller", Image: "/images/enemies/doom-scroller.png"},
	{Name: "Snooze Goblin", Image: "/images/enemies/snooze-goblin.png"},
	{Name: "Clutter Wraith", Image: "/images/enemies/clutter-wraith.png"},
	{Name: "Deadline Ogre", Image: "/images/enemies/deadline-ogre.png"},
}

var defaultItems = []models.Item{
	{Name: "Bronze Frame", Description: "A simple bronze border for your avatar.", Price: 50, Image: "/images/items/bronze-frame.png"},
	{Name: "Silver Frame", Description: "A polished silver border for your avatar.", Price: 150, Image: "/images/items/silver-frame.png"},
	{Name: "Gold Frame", Description: "A gleaming gold border for your avatar.", Price: 400, Image: "/images/items/gold-frame.png"},
	{Name: "Flame Trail", Description: "Your streak counter catches fire.", Price: 250, Image: "/images/items/flame-trail.png"},
	{Name: "Party Hat", Description: "A festive hat for your enemy to wear.", Price: 100, Image: "/images/items/party-hat.png"},
}

// EnsureShopItems seeds the item catalog when it is empty.
// Called on startup from main after Mongo has connected.
func EnsureShopItems(ctx context.Context, items store.ItemRepository) error {
	count, err := items.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := items.InsertMany(ctx, append([]models.Item(nil), defaultItems...)); err != nil {
		return err
	}
	log.Printf("Seeded %d shop items", len(defaultItems))
	return nil
}

// EnsureEnemyTemplates seeds the enemy template pool when it is empty.
func EnsureEnemyTemplates(ctx context.Context, templates store.EnemyTemplateRepository) error {
	count, err := templates.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := templates.InsertMany(ctx, append([]models.EnemyTemplate(nil), DefaultEnemyTemplates...)); err != nil {
		return err
	}
	log.Printf("Seeded %d enemy templates", len(DefaultEnemyTemplates))
	return nil
}
