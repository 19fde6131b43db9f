package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

func newShopFixture(t *testing.T, item models.Item) (*ShopService, *store.MemoryUsers, models.Item) {
	t.Helper()
	items := store.NewMemoryItems()
	seeded := []models.Item{item}
	require.NoError(t, items.InsertMany(context.Background(), seeded))
	users := store.NewMemoryUsers()
	return NewShopService(items, users), users, seeded[0]
}

func shopItem() models.Item {
	return models.Item{
		Name:        "Knight Helmet",
		Description: "A dented but trusty helmet.",
		Price:       40,
		Image:       "helmet.png",
	}
}

func TestBuyDeductsPointsAndAddsToInventory(t *testing.T) {
	svc, users, item := newShopFixture(t, shopItem())
	user := seedUser(t, users, func(u *models.User) { u.Points = 100 })

	bought, err := svc.Buy(context.Background(), user, item.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, item.ID, bought.ID)

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 60, stored.Points)
	assert.Equal(t, []string{item.ID.Hex()}, stored.Inventory)
}

func TestBuyInsufficientPoints(t *testing.T) {
	svc, users, item := newShopFixture(t, shopItem())
	user := seedUser(t, users, func(u *models.User) { u.Points = 39 })

	_, err := svc.Buy(context.Background(), user, item.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 39, stored.Points)
	assert.Empty(t, stored.Inventory)
}

func TestBuyDuplicateItemAllowed(t *testing.T) {
	svc, users, item := newShopFixture(t, shopItem())
	user := seedUser(t, users, func(u *models.User) { u.Points = 100 })

	_, err := svc.Buy(context.Background(), user, item.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Buy(context.Background(), user, item.ID.Hex())
	require.NoError(t, err)

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Points)
	assert.Equal(t, []string{item.ID.Hex(), item.ID.Hex()}, stored.Inventory)
}

func TestItemNotFound(t *testing.T) {
	svc, _, _ := newShopFixture(t, shopItem())

	_, err := svc.Item(context.Background(), "64a0000000000000000000ff")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestItemWithBadStoredData(t *testing.T) {
	bad := shopItem()
	bad.Price = 0
	svc, _, item := newShopFixture(t, bad)

	_, err := svc.Item(context.Background(), item.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
