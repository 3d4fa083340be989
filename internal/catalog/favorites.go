package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for favorite kinds outside the catalog.
var ErrUnknownKind = errors.New("unknown favorite kind")

// FavoriteKind names the entity a favorite points at.
type FavoriteKind string

const (
	KindCharacter FavoriteKind = "character"
	KindFilm      FavoriteKind = "film"
	KindPlanet    FavoriteKind = "planet"
	KindVehicle   FavoriteKind = "vehicle"
	KindStarship  FavoriteKind = "starship"
	KindSpecie    FavoriteKind = "specie"
)

// Kinds returns every favorite kind in declaration order.
func Kinds() []FavoriteKind {
	return []FavoriteKind{KindCharacter, KindFilm, KindPlanet, KindVehicle, KindStarship, KindSpecie}
}

// Valid reports whether k is one of Kinds.
func (k FavoriteKind) Valid() bool {
	for _, kind := range Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Model returns an empty record of the entity k points at.
func (k FavoriteKind) Model() (any, error) {
	switch k {
	case KindCharacter:
		return &Character{}, nil
	case KindFilm:
		return &Film{}, nil
	case KindPlanet:
		return &Planet{}, nil
	case KindVehicle:
		return &Vehicle{}, nil
	case KindStarship:
		return &Starship{}, nil
	case KindSpecie:
		return &Specie{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// ParseFavoriteKind accepts a kind name in any case.
func ParseFavoriteKind(s string) (FavoriteKind, error) {
	k := FavoriteKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Favorite links a user to exactly one catalog record. The kind/id pair replaces a
// set of mutually optional foreign keys, so a row cannot point at zero or several
// targets.
type Favorite struct {
	ID         int          `gorm:"primaryKey" json:"id"`
	UserID     int          `gorm:"not null;uniqueIndex:idx_favorites_target" json:"user_id"`
	TargetKind FavoriteKind `gorm:"size:16;not null;uniqueIndex:idx_favorites_target;check:chk_favorites_target_kind,target_kind IN ('character','film','planet','vehicle','starship','specie')" json:"target_kind"`
	TargetID   int          `gorm:"not null;uniqueIndex:idx_favorites_target" json:"target_id"`
}

func (Favorite) TableName() string { return "favorites" }

// Target returns the favorite's kind and id.
func (f Favorite) Target() FavoriteRef {
	return FavoriteRef{Kind: f.TargetKind, ID: f.TargetID}
}

// FavoriteRef identifies a favorite target.
type FavoriteRef struct {
	Kind FavoriteKind
	ID   int
}

func (r FavoriteRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}
