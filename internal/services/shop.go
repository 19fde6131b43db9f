package services

import (
	"context"
	"errors"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

// ShopService handles item lookup and purchases.
type ShopService struct {
	items store.ItemRepository
	users store.UserRepository
}

func NewShopService(items store.ItemRepository, users store.UserRepository) *ShopService {
	return &ShopService{items: items, users: users}
}

// Item loads a shop item and checks its stored invariants: positive
// price, non-blank name and image.
func (s *ShopService) Item(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Item not found.")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load item", err)
	}
	if item.Price <= 0 || item.Name == "" || item.Image == "" {
		return nil, apperrors.Validation("Item data is not valid.")
	}
	return item, nil
}

// Buy deducts the item's price and appends its id to the inventory in
// one atomic update. An unaffordable item changes nothing.
func (s *ShopService) Buy(ctx context.Context, user *models.User, itemID string) (*models.Item, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if user.Points < item.Price {
		return nil, apperrors.Validation("Cannot buy item, you do not have enough points.")
	}

	inventory := append(append([]string(nil), user.Inventory...), item.ID.Hex())
	newPoints := user.Points - item.Price

	err = s.users.Update(ctx, user.ID.Hex(), store.UserPatch{
		Inventory:    inventory,
		SetInventory: true,
		Points:       &newPoints,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to complete purchase", err)
	}

	user.Inventory = inventory
	user.Points = newPoints
	return item, nil
}
