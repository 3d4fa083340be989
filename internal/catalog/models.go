// Package catalog declares the Star Wars reference catalog as gorm models.
//
// Declaring the models has no side effects. The schema reaches a database only through
// Migrate, and its documentation only through Describe and the formatters.
package catalog

// Character is a person appearing in the films.
type Character struct {
	ID          int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name        string `gorm:"size:250;not null" json:"name" yaml:"name"`
	Height      string `gorm:"size:10;not null" json:"height" yaml:"height"`
	Mass        string `gorm:"size:30;not null" json:"mass" yaml:"mass"`
	HairColor   string `gorm:"size:10;not null" json:"hair_color" yaml:"hair_color"`
	SkinColor   string `gorm:"size:10;not null" json:"skin_color" yaml:"skin_color"`
	EyeColor    string `gorm:"size:10;not null" json:"eye_color" yaml:"eye_color"`
	BirthYear   string `gorm:"size:10;not null" json:"birth_year" yaml:"birth_year"`
	Gender      string `gorm:"size:30;not null" json:"gender" yaml:"gender"`
	HomeworldID int    `gorm:"not null;index" json:"homeworld_id" yaml:"homeworld_id"`
	SpecieID    *int   `gorm:"index" json:"specie_id,omitempty" yaml:"specie_id,omitempty"`

	Homeworld *Planet `gorm:"foreignKey:HomeworldID" json:"homeworld,omitempty" yaml:"-"`
	Specie    *Specie `gorm:"foreignKey:SpecieID" json:"specie,omitempty" yaml:"-"`
	Films     []Film  `gorm:"many2many:character_film;joinForeignKey:CharacterID;joinReferences:FilmID" json:"films,omitempty" yaml:"-"`
}

func (Character) TableName() string { return "character" }

// Film is keyed by its episode number rather than a surrogate id.
type Film struct {
	EpisodeID    int    `gorm:"primaryKey;autoIncrement:false" json:"episode_id" yaml:"episode_id"`
	Title        string `gorm:"not null" json:"title" yaml:"title"`
	OpeningCrawl string `gorm:"not null" json:"opening_crawl" yaml:"opening_crawl"`
	Director     string `gorm:"not null" json:"director" yaml:"director"`
	Producer     string `gorm:"not null" json:"producer" yaml:"producer"`
	ReleaseDate  string `gorm:"not null" json:"release_date" yaml:"release_date"`

	Characters []Character `gorm:"many2many:character_film;joinForeignKey:FilmID;joinReferences:CharacterID" json:"characters,omitempty" yaml:"-"`
	Planets    []Planet    `gorm:"many2many:film_planet;joinForeignKey:FilmID;joinReferences:PlanetID" json:"planets,omitempty" yaml:"-"`
	Vehicles   []Vehicle   `gorm:"many2many:film_vehicle;joinForeignKey:FilmID;joinReferences:VehicleID" json:"vehicles,omitempty" yaml:"-"`
	Starships  []Starship  `gorm:"many2many:film_starship;joinForeignKey:FilmID;joinReferences:StarshipID" json:"starships,omitempty" yaml:"-"`
	Species    []Specie    `gorm:"many2many:film_specie;joinForeignKey:FilmID;joinReferences:SpecieID" json:"species,omitempty" yaml:"-"`
}

func (Film) TableName() string { return "film" }

// Planet is a world; characters name it as their homeworld.
type Planet struct {
	ID             int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name           string `gorm:"size:250;not null" json:"name" yaml:"name"`
	RotationPeriod int    `gorm:"not null" json:"rotation_period" yaml:"rotation_period"`
	OrbitalPeriod  int    `gorm:"not null" json:"orbital_period" yaml:"orbital_period"`
	Diameter       int    `gorm:"not null" json:"diameter" yaml:"diameter"`
	Climate        string `gorm:"size:30;not null" json:"climate" yaml:"climate"`
	Gravity        string `gorm:"size:20;not null" json:"gravity" yaml:"gravity"`
	Terrain        string `gorm:"size:10;not null" json:"terrain" yaml:"terrain"`
	SurfaceWater   int    `gorm:"not null" json:"surface_water" yaml:"surface_water"`
	Population     int    `gorm:"not null" json:"population" yaml:"population"`

	Residents []Character `gorm:"foreignKey:HomeworldID" json:"residents,omitempty" yaml:"-"`
	Films     []Film      `gorm:"many2many:film_planet;joinForeignKey:PlanetID;joinReferences:FilmID" json:"films,omitempty" yaml:"-"`
}

func (Planet) TableName() string { return "planet" }

// Vehicle is a planet-bound craft. Numeric measures carry no unit.
type Vehicle struct {
	ID                   int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name                 string `gorm:"size:250;not null" json:"name" yaml:"name"`
	Model                string `gorm:"size:50;not null" json:"model" yaml:"model"`
	Manufacturer         string `gorm:"not null" json:"manufacturer" yaml:"manufacturer"`
	CostInCredits        int    `gorm:"not null" json:"cost_in_credits" yaml:"cost_in_credits"`
	Length               int    `gorm:"not null" json:"length" yaml:"length"`
	MaxAtmospheringSpeed int    `gorm:"not null" json:"max_atmosphering_speed" yaml:"max_atmosphering_speed"`
	Crew                 int    `gorm:"not null" json:"crew" yaml:"crew"`
	Passengers           int    `gorm:"not null" json:"passengers" yaml:"passengers"`
	CargoCapacity        int    `gorm:"not null" json:"cargo_capacity" yaml:"cargo_capacity"`
	Consumables          string `gorm:"size:20;not null" json:"consumables" yaml:"consumables"`
	VehicleClass         string `gorm:"size:50;not null" json:"vehicle_class" yaml:"vehicle_class"`

	Films []Film `gorm:"many2many:film_vehicle;joinForeignKey:VehicleID;joinReferences:FilmID" json:"films,omitempty" yaml:"-"`
}

func (Vehicle) TableName() string { return "vehicle" }

// Starship is a hyperdrive-capable craft.
type Starship struct {
	ID                   int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name                 string `gorm:"size:250;not null" json:"name" yaml:"name"`
	Model                string `gorm:"size:50;not null" json:"model" yaml:"model"`
	Manufacturer         string `gorm:"size:50;not null" json:"manufacturer" yaml:"manufacturer"`
	CostInCredits        int    `gorm:"not null" json:"cost_in_credits" yaml:"cost_in_credits"`
	Length               int    `gorm:"not null" json:"length" yaml:"length"`
	MaxAtmospheringSpeed int    `gorm:"not null" json:"max_atmosphering_speed" yaml:"max_atmosphering_speed"`
	Crew                 int    `gorm:"not null" json:"crew" yaml:"crew"`
	Passengers           int    `gorm:"not null" json:"passengers" yaml:"passengers"`
	CargoCapacity        int    `gorm:"not null" json:"cargo_capacity" yaml:"cargo_capacity"`
	Consumables          string `gorm:"size:30;not null" json:"consumables" yaml:"consumables"`
	HyperdriveRating     int    `gorm:"not null" json:"hyperdrive_rating" yaml:"hyperdrive_rating"`
	MGLT                 int    `gorm:"column:mglt;not null" json:"MGLT" yaml:"MGLT"`
	StarshipClass        string `gorm:"size:50;not null" json:"starship_class" yaml:"starship_class"`

	Films []Film `gorm:"many2many:film_starship;joinForeignKey:StarshipID;joinReferences:FilmID" json:"films,omitempty" yaml:"-"`
}

func (Starship) TableName() string { return "starship" }

// Specie is a species. Homeworld is free text, not a reference to planet.
type Specie struct {
	ID              int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name            string `gorm:"not null" json:"name" yaml:"name"`
	Classification  string `gorm:"not null" json:"classification" yaml:"classification"`
	Designation     string `gorm:"not null" json:"designation" yaml:"designation"`
	AverageHeight   int    `gorm:"not null" json:"average_height" yaml:"average_height"`
	SkinColors      string `gorm:"not null" json:"skin_colors" yaml:"skin_colors"`
	HairColors      string `gorm:"not null" json:"hair_colors" yaml:"hair_colors"`
	EyeColors       string `gorm:"not null" json:"eye_colors" yaml:"eye_colors"`
	AverageLifespan int    `gorm:"not null" json:"average_lifespan" yaml:"average_lifespan"`
	Homeworld       string `gorm:"not null" json:"homeworld" yaml:"homeworld"`
	Language        string `gorm:"not null" json:"language" yaml:"language"`

	People []Character `gorm:"foreignKey:SpecieID" json:"people,omitempty" yaml:"-"`
	Films  []Film      `gorm:"many2many:film_specie;joinForeignKey:SpecieID;joinReferences:FilmID" json:"films,omitempty" yaml:"-"`
}

func (Specie) TableName() string { return "specie" }

// User owns a list of favorites. None of its columns are required.
type User struct {
	ID       int    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name     string `gorm:"size:250" json:"name" yaml:"name"`
	LastName string `gorm:"size:250" json:"last_name" yaml:"last_name"`
	Email    string `gorm:"size:50" json:"email" yaml:"email"`
	Password string `gorm:"size:50" json:"-" yaml:"password"`

	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites,omitempty" yaml:"-"`
}

func (User) TableName() string { return "user" }
