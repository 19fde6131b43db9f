package services

import (
	"context"
	"time"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

// UserChallengeInfo is a catalog challenge joined with the user's
// completion flag.
type UserChallengeInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PointReward int       `json:"pointReward"`
	EndTime     time.Time `json:"endTime"`
	Completed   bool      `json:"completed"`
}

// ChallengeService reconciles a user's per-challenge completion flags
// with the catalog and handles challenge completion.
type ChallengeService struct {
	users   store.UserRepository
	catalog *Catalog
}

func NewChallengeService(users store.UserRepository, catalog *Catalog) *ChallengeService {
	return &ChallengeService{users: users, catalog: catalog}
}

// reconcileStatuses returns the status list synced to the catalog:
// statuses for removed challenges are pruned and fresh uncompleted
// statuses are appended for new challenges. The returned list is ordered
// by the catalog, so it stays index-aligned with it regardless of the
// order the stored list accumulated in.
func reconcileStatuses(statuses []models.ChallengeStatus, challenges []models.Challenge) ([]models.ChallengeStatus, bool) {
	byID := make(map[string]models.ChallengeStatus, len(statuses))
	for _, st := range statuses {
		byID[st.ChallengeID] = st
	}

	changed := len(statuses) != len(challenges)
	next := make([]models.ChallengeStatus, 0, len(challenges))
	for i, ch := range challenges {
		id := ch.ID.Hex()
		st, ok := byID[id]
		if !ok {
			st = models.ChallengeStatus{ChallengeID: id, Completed: false}
			changed = true
		}
		if !changed && (i >= len(statuses) || statuses[i].ChallengeID != id) {
			changed = true
		}
		next = append(next, st)
	}
	return next, changed
}

// syncStatuses reconciles user.ChallengeStatuses against the given
// catalog set and persists the list only when it actually changed.
func (s *ChallengeService) syncStatuses(ctx context.Context, user *models.User, challenges []models.Challenge) error {
	statuses, changed := reconcileStatuses(user.ChallengeStatuses, challenges)
	if changed {
		err := s.users.Update(ctx, user.ID.Hex(), store.UserPatch{
			ChallengeStatuses:    statuses,
			SetChallengeStatuses: true,
		})
		if err != nil {
			return apperrors.Internal("failed to update challenge statuses", err)
		}
	}
	user.ChallengeStatuses = statuses
	return nil
}

// UserChallenges returns the current challenges joined with the user's
// completion flags, reconciling the user's status list first. Statuses
// are matched to challenges by id, never by position.
func (s *ChallengeService) UserChallenges(ctx context.Context, user *models.User) ([]UserChallengeInfo, error) {
	challenges, err := s.catalog.Active(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.syncStatuses(ctx, user, challenges); err != nil {
		return nil, err
	}

	completedByID := make(map[string]bool, len(user.ChallengeStatuses))
	for _, st := range user.ChallengeStatuses {
		completedByID[st.ChallengeID] = st.Completed
	}

	infos := make([]UserChallengeInfo, 0, len(challenges))
	for _, ch := range challenges {
		infos = append(infos, UserChallengeInfo{
			ID:          ch.ID.Hex(),
			Name:        ch.Name,
			Description: ch.Description,
			PointReward: ch.PointReward,
			EndTime:     ch.EndTime,
			Completed:   completedByID[ch.ID.Hex()],
		})
	}
	return infos, nil
}

// Complete marks a challenge completed and credits its reward. The
// status list and point total are persisted in one atomic update.
// Completing an already-completed challenge is a Conflict and leaves
// points unchanged.
func (s *ChallengeService) Complete(ctx context.Context, user *models.User, challengeID string) (int, error) {
	challenges, err := s.catalog.Active(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.syncStatuses(ctx, user, challenges); err != nil {
		return 0, err
	}

	idx := -1
	for i, st := range user.ChallengeStatuses {
		if st.ChallengeID == challengeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, apperrors.NotFound("Challenge not found.")
	}
	if user.ChallengeStatuses[idx].Completed {
		return 0, apperrors.Conflict("Challenge already completed.")
	}

	var reward int
	for _, ch := range challenges {
		if ch.ID.Hex() == challengeID {
			reward = ch.PointReward
			break
		}
	}

	statuses := append([]models.ChallengeStatus(nil), user.ChallengeStatuses...)
	statuses[idx].Completed = true
	newPoints := user.Points + reward

	err = s.users.Update(ctx, user.ID.Hex(), store.UserPatch{
		Points:               &newPoints,
		ChallengeStatuses:    statuses,
		SetChallengeStatuses: true,
	})
	if err != nil {
		return 0, apperrors.Internal("failed to complete challenge", err)
	}

	user.ChallengeStatuses = statuses
	user.Points = newPoints
	return newPoints, nil
}
