package mode

// Country is one row of the country lookup table.
type Country struct {
	Name   string     `json:"name"`
	Lat    float64    `json:"latitude"`
	Lng    float64    `json:"longitude"`
	Coords [2]float64 `json:"coords"`
}

// Collaboration is one (work, external institution, country) evidence record.
type Collaboration struct {
	Partner   string `json:"partner"`
	DatasetID string `json:"dataset_id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

// CountryCollaborations is the per-country bucket of the collaborations report.
type CountryCollaborations struct {
	CountryCode         string          `json:"country_code"`
	CollaborationsCount int             `json:"collaborations_count"`
	Collaborations      []Collaboration `json:"collaborations"`
	Country             *Country        `json:"country"`
}

// Dataset is one row of the all-datasets report.
type Dataset struct {
	DatasetID string `json:"dataset_id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}
