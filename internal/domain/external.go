package domain

// NEOSummary is a near-Earth object close approach, flattened from the NASA feed.
type NEOSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DiameterMinM   float64 `json:"diameter_min_m"`
	DiameterMaxM   float64 `json:"diameter_max_m"`
	Hazardous      bool    `json:"is_hazardous"`
	VelocityKmS    float64 `json:"velocity_km_s"`
	MissDistanceKm float64 `json:"miss_distance_km"`
	ApproachDate   string  `json:"approach_date"`
}

// PhysicalParameter is one entry of a small-body physical parameter table.
type PhysicalParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Units string `json:"units,omitempty"`
}

// SmallBodyRecord is the subset of a JPL Small-Body Database lookup the
// service exposes.
type SmallBodyRecord struct {
	Designation string              `json:"designation"`
	FullName    string              `json:"full_name"`
	SPKID       string              `json:"spkid,omitempty"`
	OrbitClass  string              `json:"orbit_class,omitempty"`
	NEO         bool                `json:"neo"`
	PHA         bool                `json:"pha"`
	Epoch       string              `json:"epoch,omitempty"`
	Elements    OrbitalElements     `json:"orbital_elements"`
	DiameterKm  float64             `json:"diameter_km,omitempty"`
	Physical    []PhysicalParameter `json:"physical_parameters,omitempty"`
}

// PlaceType is the OpenStreetMap settlement class.
type PlaceType string

const (
	PlaceCity    PlaceType = "city"
	PlaceTown    PlaceType = "town"
	PlaceVillage PlaceType = "village"
	PlaceHamlet  PlaceType = "hamlet"
)

// Place is a populated settlement near the impact point.
type Place struct {
	Name        string      `json:"name"`
	Type        PlaceType   `json:"type"`
	Population  int         `json:"population,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	DistanceKm  float64     `json:"distance_km"`
}

// PlaceEstimate is the casualty estimate for a single place.
type PlaceEstimate struct {
	Place               Place   `json:"place"`
	Population          int     `json:"population"`
	PopulationEstimated bool    `json:"population_estimated"`
	CasualtyFraction    float64 `json:"casualty_fraction"`
	Casualties          int     `json:"casualties"`
}

// PopulationEstimate aggregates place estimates within the lookup radius.
type PopulationEstimate struct {
	TotalPopulation int             `json:"total_population"`
	TotalCasualties int             `json:"total_casualties"`
	Places          []PlaceEstimate `json:"places"`
}

// Species is a taxon observed near the impact point, with its occurrence count.
type Species struct {
	Key             int64    `json:"species_key"`
	Name            string   `json:"name"`
	ScientificName  string   `json:"scientific_name"`
	Kingdom         string   `json:"kingdom,omitempty"`
	Phylum          string   `json:"phylum,omitempty"`
	Class           string   `json:"class,omitempty"`
	Order           string   `json:"order,omitempty"`
	Family          string   `json:"family,omitempty"`
	Genus           string   `json:"genus,omitempty"`
	Count           int      `json:"count"`
	VernacularNames []string `json:"vernacular_names,omitempty"`
}

// Kingdom selects the taxonomic kingdom for a species search.
type Kingdom string

const (
	KingdomPlantae  Kingdom = "PLANTAE"
	KingdomAnimalia Kingdom = "ANIMALIA"
)
