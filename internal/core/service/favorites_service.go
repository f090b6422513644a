package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// FavoritesService toggles and lists a user's favorite questions.
type FavoritesService struct {
	hookState
	favorites ports.FavoriteAPI
}

func NewFavoritesService(favorites ports.FavoriteAPI) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

func (s *FavoritesService) Add(ctx context.Context, questionID int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.favorites.Add(ctx, questionID); err != nil {
		s.fail(err, failureMessage(err, "could not add to favorites"))
		return false
	}
	return true
}

func (s *FavoritesService) Remove(ctx context.Context, questionID int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.favorites.Remove(ctx, questionID); err != nil {
		s.fail(err, failureMessage(err, "could not remove from favorites"))
		return false
	}
	return true
}

// Check reports whether the question is favorited. Any failure reads as "not
// a favorite": a broken favorite indicator must never block the page.
func (s *FavoritesService) Check(ctx context.Context, questionID int64) bool {
	fav, err := s.favorites.Check(ctx, questionID)
	if err != nil {
		return false
	}
	return fav
}

func (s *FavoritesService) List(ctx context.Context) ([]domain.Favorite, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	favs, err := s.favorites.List(ctx)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load favorites"))
		return nil, false
	}
	return favs, true
}

// failureMessage prefers the upstream's own message for non-transient
// failures and falls back to a generic one otherwise.
func failureMessage(err error, fallback string) string {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Message != "" && !apiErr.Transient() {
		return apiErr.Message
	}
	return fallback
}
