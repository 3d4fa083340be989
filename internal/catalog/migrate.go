package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Models returns every record type in an order where parents precede the records that
// reference them.
func Models() []any {
	return []any{
		&Planet{},
		&Specie{},
		&Film{},
		&Character{},
		&Vehicle{},
		&Starship{},
		&User{},
		&Favorite{},
		&CharacterFilm{},
		&FilmPlanet{},
		&FilmVehicle{},
		&FilmStarship{},
		&FilmSpecie{},
	}
}

// TableNames lists the catalog's tables in Models order.
func TableNames() []string {
	return []string{
		"planet", "specie", "film", "character", "vehicle", "starship", "user", "favorites",
		"character_film", "film_planet", "film_vehicle", "film_starship", "film_specie",
	}
}

// SetupJoinTables registers the explicit join records on db. It must run before any
// many-to-many association is read or written through db.
func SetupJoinTables(db *gorm.DB) error {
	for _, jt := range JoinTables() {
		if err := db.SetupJoinTable(jt.Owner, jt.Field, jt.Record); err != nil {
			return fmt.Errorf("failed to set up join table for %T.%s: %w", jt.Owner, jt.Field, err)
		}
	}
	return nil
}

// Migrate creates or updates every catalog table on db.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}
