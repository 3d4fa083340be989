package store

import (
	"context"
	"fmt"

	"github.com/tordrt/holocron/internal/catalog"
)

// Character loads a character with its homeworld, species and films.
func (s *Store) Character(ctx context.Context, id int) (*catalog.Character, error) {
	var c catalog.Character
	if err := s.first(ctx, &c, []string{"Homeworld", "Specie", "Films"}, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// Film loads a film by episode number with every associated record.
func (s *Store) Film(ctx context.Context, episodeID int) (*catalog.Film, error) {
	var f catalog.Film
	preloads := []string{"Characters", "Planets", "Vehicles", "Starships", "Species"}
	if err := s.first(ctx, &f, preloads, episodeID); err != nil {
		return nil, err
	}
	return &f, nil
}

// Planet loads a planet with its residents and films.
func (s *Store) Planet(ctx context.Context, id int) (*catalog.Planet, error) {
	var p catalog.Planet
	if err := s.first(ctx, &p, []string{"Residents", "Films"}, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Specie loads a species with its people and films.
func (s *Store) Specie(ctx context.Context, id int) (*catalog.Specie, error) {
	var sp catalog.Specie
	if err := s.first(ctx, &sp, []string{"People", "Films"}, id); err != nil {
		return nil, err
	}
	return &sp, nil
}

// Vehicle loads a vehicle with its films.
func (s *Store) Vehicle(ctx context.Context, id int) (*catalog.Vehicle, error) {
	var v catalog.Vehicle
	if err := s.first(ctx, &v, []string{"Films"}, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// Starship loads a starship with its films.
func (s *Store) Starship(ctx context.Context, id int) (*catalog.Starship, error) {
	var st catalog.Starship
	if err := s.first(ctx, &st, []string{"Films"}, id); err != nil {
		return nil, err
	}
	return &st, nil
}

// User loads a user with its favorites.
func (s *Store) User(ctx context.Context, id int) (*catalog.User, error) {
	var u catalog.User
	if err := s.first(ctx, &u, []string{"Favorites"}, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// Films lists every film ordered by episode.
func (s *Store) Films(ctx context.Context) ([]catalog.Film, error) {
	var films []catalog.Film
	if err := s.db.WithContext(ctx).Order("episode_id").Find(&films).Error; err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	return films, nil
}

// Link inserts join records. Both referenced rows must already exist.
func (s *Store) Link(ctx context.Context, joins ...any) error {
	for _, j := range joins {
		switch j.(type) {
		case *catalog.CharacterFilm, *catalog.FilmPlanet, *catalog.FilmVehicle, *catalog.FilmStarship, *catalog.FilmSpecie:
		default:
			return fmt.Errorf("%T is not a join record", j)
		}
	}
	return s.Create(ctx, joins...)
}

// Count returns the number of rows of model's table.
func (s *Store) Count(ctx context.Context, model any) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %T: %w", model, err)
	}
	return n, nil
}
