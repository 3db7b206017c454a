package records

// RawRow is one spreadsheet row as delivered by a row source. All fields
// are raw strings; nothing is validated yet.
type RawRow struct {
	Section   string `json:"section"`
	Row       string `json:"row"`
	Spot      string `json:"spot"`
	Latitude  string `json:"lat"`
	Longitude string `json:"lng"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	DeathDate string `json:"death_date"`
}

// Person is someone buried in a plot. Dates are free-form and may be empty.
type Person struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date,omitempty"`
	DeathDate string `json:"death_date,omitempty"`
}

// Record is a burial plot with everyone buried in it.
type Record struct {
	Key       string    `json:"key"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Section   string    `json:"section"`
	Row       string    `json:"row"`
	Spot      string    `json:"spot"`
	Persons   []Person  `json:"persons"`
	PhotoRefs [2]string `json:"photos"`
}
