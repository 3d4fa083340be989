package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tordrt/holocron/internal/catalog"
)

// ErrDuplicateFavorite is returned when a user already has the target as a favorite.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// AddFavorite records that a user likes one catalog record. The user and the target
// must exist; the database can only enforce the former.
func (s *Store) AddFavorite(ctx context.Context, userID int, ref catalog.FavoriteRef) (*catalog.Favorite, error) {
	target, err := ref.Kind.Model()
	if err != nil {
		return nil, err
	}

	if err := s.first(ctx, &catalog.User{}, nil, userID); err != nil {
		return nil, err
	}
	if err := s.first(ctx, target, nil, ref.ID); err != nil {
		return nil, fmt.Errorf("favorite target %s: %w", ref, err)
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&catalog.Favorite{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, ref.Kind, ref.ID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up favorite: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: user %d, %s", ErrDuplicateFavorite, userID, ref)
	}

	// The unique index still catches a concurrent insert of the same favorite.
	fav := &catalog.Favorite{UserID: userID, TargetKind: ref.Kind, TargetID: ref.ID}
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user %d, %s", ErrDuplicateFavorite, userID, ref)
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	s.logger.Debug("favorite added", "user_id", userID, "target", ref.String())
	return fav, nil
}

// Favorites lists a user's favorites, oldest first.
func (s *Store) Favorites(ctx context.Context, userID int) ([]catalog.Favorite, error) {
	var favs []catalog.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// RemoveFavorite deletes one favorite. Removing a missing favorite is not an error.
func (s *Store) RemoveFavorite(ctx context.Context, userID int, ref catalog.FavoriteRef) error {
	if !ref.Kind.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownKind, string(ref.Kind))
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, ref.Kind, ref.ID).
		Delete(&catalog.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
