package services

import (
	"context"
	"log"
	"time"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

const (
	// NumChallenges is how many daily challenges the catalog maintains.
	NumChallenges = 3
	// MinPointReward and MaxPointReward bound a challenge's reward.
	MinPointReward = 10
	MaxPointReward = 99

	// Challenge days roll over at midnight Pacific Standard Time.
	pstOffset = -8 * time.Hour

	generationTimeout = 15 * time.Second
)

// Catalog maintains the shared pool of active daily challenges. Reads
// reconcile the pool: invalid and expired entries are deleted and the
// pool is replenished back to NumChallenges via the generator.
type Catalog struct {
	challenges store.ChallengeRepository
	generator  Generator

	// overridable in tests
	now        func() time.Time
	genTimeout time.Duration
}

func NewCatalog(challenges store.ChallengeRepository, generator Generator) *Catalog {
	return &Catalog{
		challenges: challenges,
		generator:  generator,
		now:        time.Now,
		genTimeout: generationTimeout,
	}
}

// pstNow shifts a wall-clock instant into PST so calendar-day math can
// be done on its UTC components, matching the stored endTime convention.
func pstNow(now time.Time) time.Time {
	return now.UTC().Add(pstOffset)
}

// startOfNextDayPST is the endTime shared by every challenge generated
// in one batch: midnight at the start of the next PST calendar day.
func startOfNextDayPST(now time.Time) time.Time {
	shifted := pstNow(now)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day()+1, 0, 0, 0, 0, time.UTC)
}

func validChallenge(ch models.Challenge) bool {
	return ch.Name != "" && ch.Description != "" &&
		ch.PointReward >= MinPointReward && ch.PointReward <= MaxPointReward &&
		!ch.EndTime.IsZero()
}

// Active returns the current challenge set in insertion order. Invalid
// and expired entries are deleted best-effort (a failed delete is logged,
// not fatal), and the pool is topped back up to NumChallenges. When
// generation fails the remaining challenges are returned rather than an
// error.
func (c *Catalog) Active(ctx context.Context) ([]models.Challenge, error) {
	all, err := c.challenges.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load challenges", err)
	}

	now := pstNow(c.now())
	active := make([]models.Challenge, 0, NumChallenges)
	for _, ch := range all {
		if !validChallenge(ch) || !ch.EndTime.After(now) {
			if err := c.challenges.Delete(ctx, ch.ID.Hex()); err != nil {
				log.Printf("catalog: failed to delete challenge %s: %v", ch.ID.Hex(), err)
			}
			continue
		}
		active = append(active, ch)
	}

	if missing := NumChallenges - len(active); missing > 0 {
		active = append(active, c.replenish(ctx, missing)...)
	}
	return active, nil
}

// replenish generates and inserts up to count new challenges. All
// challenges of one batch share a single endTime. Malformed generator
// output is discarded; on any failure the catalog is simply left short.
func (c *Catalog) replenish(ctx context.Context, count int) []models.Challenge {
	genCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
	defer cancel()

	ideas, err := c.generator.Generate(genCtx, count)
	if err != nil {
		log.Printf("catalog: challenge generation failed: %v", err)
		return nil
	}

	endTime := startOfNextDayPST(c.now())
	batch := make([]models.Challenge, 0, count)
	for _, idea := range ideas {
		if len(batch) == count {
			break
		}
		if !idea.Valid() {
			log.Printf("catalog: discarding malformed generated challenge %q", idea.Name)
			continue
		}
		batch = append(batch, models.Challenge{
			Name:        idea.Name,
			Description: idea.Description,
			PointReward: idea.PointReward,
			EndTime:     endTime,
		})
	}
	if len(batch) == 0 {
		return nil
	}

	created, err := c.challenges.InsertMany(ctx, batch)
	if err != nil {
		log.Printf("catalog: failed to insert generated challenges: %v", err)
		return nil
	}
	return created
}
