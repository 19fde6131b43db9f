package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

var testNow = time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

type stubGenerator struct {
	ideas    []ChallengeIdea
	err      error
	calls    int
	gotCount int
}

func (g *stubGenerator) Generate(ctx context.Context, count int) ([]ChallengeIdea, error) {
	g.calls++
	g.gotCount = count
	if g.err != nil {
		return nil, g.err
	}
	if g.ideas != nil {
		return g.ideas, nil
	}
	ideas := make([]ChallengeIdea, count)
	for i := range ideas {
		ideas[i] = ChallengeIdea{
			Name:        fmt.Sprintf("Challenge %d", i+1),
			Description: "Do the thing.",
			PointReward: MinPointReward + i,
		}
	}
	return ideas, nil
}

func newCatalogFixture(gen Generator) (*Catalog, *store.MemoryChallenges) {
	repo := store.NewMemoryChallenges()
	c := NewCatalog(repo, gen)
	c.now = func() time.Time { return testNow }
	return c, repo
}

func seedChallenge(t *testing.T, repo *store.MemoryChallenges, ch models.Challenge) models.Challenge {
	t.Helper()
	out, err := repo.InsertMany(context.Background(), []models.Challenge{ch})
	require.NoError(t, err)
	return out[0]
}

func validCatalogChallenge(name string) models.Challenge {
	return models.Challenge{
		Name:        name,
		Description: "Do the thing.",
		PointReward: 42,
		EndTime:     startOfNextDayPST(testNow),
	}
}

func TestActiveGeneratesFullSet(t *testing.T) {
	gen := &stubGenerator{}
	c, _ := newCatalogFixture(gen)

	active, err := c.Active(context.Background())
	require.NoError(t, err)

	require.Len(t, active, NumChallenges)
	assert.Equal(t, NumChallenges, gen.gotCount)
	for _, ch := range active {
		assert.False(t, ch.ID.IsZero())
		assert.True(t, ch.EndTime.After(pstNow(testNow)))
		assert.GreaterOrEqual(t, ch.PointReward, MinPointReward)
		assert.LessOrEqual(t, ch.PointReward, MaxPointReward)
	}
}

func TestActiveBatchSharesEndTime(t *testing.T) {
	c, _ := newCatalogFixture(&stubGenerator{})

	active, err := c.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, NumChallenges)

	// Start of the next PST calendar day: testNow is 18:00 UTC Aug 31,
	// i.e. 10:00 Aug 31 in PST, so the batch expires Sep 1 00:00.
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, ch := range active {
		assert.True(t, ch.EndTime.Equal(want), "endTime %v, want %v", ch.EndTime, want)
	}
}

func TestActiveDeletesExpired(t *testing.T) {
	gen := &stubGenerator{}
	c, repo := newCatalogFixture(gen)

	expired := validCatalogChallenge("Old news")
	expired.EndTime = testNow.Add(-48 * time.Hour)
	expired = seedChallenge(t, repo, expired)
	kept := seedChallenge(t, repo, validCatalogChallenge("Still good"))

	active, err := c.Active(context.Background())
	require.NoError(t, err)

	require.Len(t, active, NumChallenges)
	assert.Equal(t, kept.ID, active[0].ID)
	assert.Equal(t, NumChallenges-1, gen.gotCount)

	remaining, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	for _, ch := range remaining {
		assert.NotEqual(t, expired.ID, ch.ID)
	}
}

func TestActiveDeletesInvalid(t *testing.T) {
	c, repo := newCatalogFixture(&stubGenerator{})

	bad := validCatalogChallenge("Cheap trick")
	bad.PointReward = 5 // below the allowed reward range
	bad = seedChallenge(t, repo, bad)

	active, err := c.Active(context.Background())
	require.NoError(t, err)

	require.Len(t, active, NumChallenges)
	for _, ch := range active {
		assert.NotEqual(t, bad.ID, ch.ID)
	}
}

func TestActiveGenerationFailureReturnsFewer(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("model offline")}
	c, repo := newCatalogFixture(gen)
	kept := seedChallenge(t, repo, validCatalogChallenge("Survivor"))

	active, err := c.Active(context.Background())
	require.NoError(t, err)

	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)
	assert.Equal(t, 1, gen.calls)
}

func TestActiveDiscardsMalformedIdeas(t *testing.T) {
	gen := &stubGenerator{ideas: []ChallengeIdea{
		{Name: "Fine", Description: "Valid idea.", PointReward: 50},
		{Name: "", Description: "No name.", PointReward: 50},
		{Name: "Greedy", Description: "Reward too high.", PointReward: 500},
	}}
	c, _ := newCatalogFixture(gen)

	active, err := c.Active(context.Background())
	require.NoError(t, err)

	// Only the valid idea is inserted; the catalog runs short rather
	// than accepting garbage.
	require.Len(t, active, 1)
	assert.Equal(t, "Fine", active[0].Name)
}
