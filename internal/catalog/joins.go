package catalog

// Join records. Each row links one film to one record of another entity; both columns
// form the primary key and each references its parent table.

type CharacterFilm struct {
	CharacterID int `gorm:"primaryKey;autoIncrement:false" json:"character_id"`
	FilmID      int `gorm:"primaryKey;autoIncrement:false" json:"film_id"`
}

func (CharacterFilm) TableName() string { return "character_film" }

type FilmPlanet struct {
	FilmID   int `gorm:"primaryKey;autoIncrement:false" json:"film_id"`
	PlanetID int `gorm:"primaryKey;autoIncrement:false" json:"planet_id"`
}

func (FilmPlanet) TableName() string { return "film_planet" }

type FilmVehicle struct {
	FilmID    int `gorm:"primaryKey;autoIncrement:false" json:"film_id"`
	VehicleID int `gorm:"primaryKey;autoIncrement:false" json:"vehicle_id"`
}

func (FilmVehicle) TableName() string { return "film_vehicle" }

type FilmStarship struct {
	FilmID     int `gorm:"primaryKey;autoIncrement:false" json:"film_id"`
	StarshipID int `gorm:"primaryKey;autoIncrement:false" json:"starship_id"`
}

func (FilmStarship) TableName() string { return "film_starship" }

type FilmSpecie struct {
	FilmID   int `gorm:"primaryKey;autoIncrement:false" json:"film_id"`
	SpecieID int `gorm:"primaryKey;autoIncrement:false" json:"specie_id"`
}

func (FilmSpecie) TableName() string { return "film_specie" }

// JoinTable binds a many-to-many association field to its join record.
type JoinTable struct {
	Owner  any
	Field  string
	Record any
}

// JoinTables lists every association that is backed by an explicit join record, from
// both sides of the link.
func JoinTables() []JoinTable {
	return []JoinTable{
		{Owner: &Character{}, Field: "Films", Record: &CharacterFilm{}},
		{Owner: &Film{}, Field: "Characters", Record: &CharacterFilm{}},
		{Owner: &Film{}, Field: "Planets", Record: &FilmPlanet{}},
		{Owner: &Planet{}, Field: "Films", Record: &FilmPlanet{}},
		{Owner: &Film{}, Field: "Vehicles", Record: &FilmVehicle{}},
		{Owner: &Vehicle{}, Field: "Films", Record: &FilmVehicle{}},
		{Owner: &Film{}, Field: "Starships", Record: &FilmStarship{}},
		{Owner: &Starship{}, Field: "Films", Record: &FilmStarship{}},
		{Owner: &Film{}, Field: "Species", Record: &FilmSpecie{}},
		{Owner: &Specie{}, Field: "Films", Record: &FilmSpecie{}},
	}
}
