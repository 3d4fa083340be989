// Package seed loads catalog fixtures from YAML and inserts them in dependency order.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/holocron/internal/catalog"
	"github.com/tordrt/holocron/internal/store"
)

//go:embed fixtures/catalog.yaml
var defaultFixture []byte

// Fixture is a slice of the catalog. Associations are listed by id on the record that
// owns them and become join records on insert.
type Fixture struct {
	Planets   []PlanetFixture    `yaml:"planets"`
	Species   []SpecieFixture    `yaml:"species"`
	Films     []FilmFixture      `yaml:"films"`
	People    []CharacterFixture `yaml:"people"`
	Vehicles  []VehicleFixture   `yaml:"vehicles"`
	Starships []StarshipFixture  `yaml:"starships"`
	Users     []UserFixture      `yaml:"users"`
}

type PlanetFixture struct {
	catalog.Planet `yaml:",inline"`
	Films          []int `yaml:"films"`
}

type SpecieFixture struct {
	catalog.Specie `yaml:",inline"`
	Films          []int `yaml:"films"`
}

type FilmFixture struct {
	catalog.Film `yaml:",inline"`
}

type CharacterFixture struct {
	catalog.Character `yaml:",inline"`
	Films             []int `yaml:"films"`
}

type VehicleFixture struct {
	catalog.Vehicle `yaml:",inline"`
	Films           []int `yaml:"films"`
}

type StarshipFixture struct {
	catalog.Starship `yaml:",inline"`
	Films            []int `yaml:"films"`
}

type UserFixture struct {
	catalog.User `yaml:",inline"`
	Favorites    []string `yaml:"favorites"`
}

// Default returns the embedded fixture.
func Default() (*Fixture, error) {
	return Decode(bytes.NewReader(defaultFixture))
}

// LoadFile reads a fixture from a YAML file.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses a YAML fixture. Unknown keys are rejected.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		if err == io.EOF {
			return &fx, nil
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &fx, nil
}

// Records flattens the fixture into insertable records: parents first, then the
// records that reference them, then join records. Favorites are not included.
func (fx *Fixture) Records() []any {
	var records, joins []any

	for i := range fx.Planets {
		p := fx.Planets[i]
		records = append(records, &p.Planet)
		for _, film := range p.Films {
			joins = append(joins, &catalog.FilmPlanet{FilmID: film, PlanetID: p.ID})
		}
	}
	for i := range fx.Species {
		sp := fx.Species[i]
		records = append(records, &sp.Specie)
		for _, film := range sp.Films {
			joins = append(joins, &catalog.FilmSpecie{FilmID: film, SpecieID: sp.ID})
		}
	}
	for i := range fx.Films {
		records = append(records, &fx.Films[i].Film)
	}
	for i := range fx.People {
		c := fx.People[i]
		records = append(records, &c.Character)
		for _, film := range c.Films {
			joins = append(joins, &catalog.CharacterFilm{CharacterID: c.ID, FilmID: film})
		}
	}
	for i := range fx.Vehicles {
		v := fx.Vehicles[i]
		records = append(records, &v.Vehicle)
		for _, film := range v.Films {
			joins = append(joins, &catalog.FilmVehicle{FilmID: film, VehicleID: v.ID})
		}
	}
	for i := range fx.Starships {
		st := fx.Starships[i]
		records = append(records, &st.Starship)
		for _, film := range st.Films {
			joins = append(joins, &catalog.FilmStarship{FilmID: film, StarshipID: st.ID})
		}
	}
	for i := range fx.Users {
		records = append(records, &fx.Users[i].User)
	}

	return append(records, joins...)
}

// Favorites parses every user's favorite references.
func (fx *Fixture) Favorites() ([]catalog.Favorite, error) {
	var favs []catalog.Favorite
	for _, u := range fx.Users {
		for _, fav := range u.Favorites {
			ref, err := parseRef(fav)
			if err != nil {
				return nil, fmt.Errorf("user %d: %w", u.ID, err)
			}
			favs = append(favs, catalog.Favorite{UserID: u.ID, TargetKind: ref.Kind, TargetID: ref.ID})
		}
	}
	return favs, nil
}

// Apply inserts every record of the fixture in one transaction and returns the number
// of rows written. Favorites go through AddFavorite, so each target must exist in the
// database by the time the entity records are in. Nothing is written on error.
func Apply(ctx context.Context, s *store.Store, fx *Fixture) (int, error) {
	favs, err := fx.Favorites()
	if err != nil {
		return 0, err
	}
	records := fx.Records()

	err = s.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.Create(ctx, records...); err != nil {
			return err
		}
		for _, f := range favs {
			if _, err := tx.AddFavorite(ctx, f.UserID, f.Target()); err != nil {
				return fmt.Errorf("user %d: %w", f.UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records) + len(favs), nil
}

// parseRef reads a "kind/id" favorite reference.
func parseRef(s string) (catalog.FavoriteRef, error) {
	kind, rawID, ok := strings.Cut(s, "/")
	if !ok {
		return catalog.FavoriteRef{}, fmt.Errorf("invalid favorite %q: want kind/id", s)
	}
	k, err := catalog.ParseFavoriteKind(kind)
	if err != nil {
		return catalog.FavoriteRef{}, fmt.Errorf("invalid favorite %q: %w", s, err)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return catalog.FavoriteRef{}, fmt.Errorf("invalid favorite %q: %w", s, err)
	}
	return catalog.FavoriteRef{Kind: k, ID: id}, nil
}
