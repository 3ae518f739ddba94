package mode

// RORPolito is the ROR registry id of Politecnico di Torino. A work belongs
// to Polito iff at least one authorship lists an institution with this ror.
const RORPolito = "https://ror.org/00bgk9508"

type Institution struct {
	ID          string `json:"id"`
	ROR         string `json:"ror"`
	Name        string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

type Authorship struct {
	Author struct {
		ID interface{} `json:"id"` //may be string or int
	} `json:"author"`
	Institutions []Institution `json:"institutions"`
}

type Work struct {
	ID    string `json:"id"`
	Name  string `json:"display_name"`
	Title string `json:"title"`
	Year  int    `json:"publication_year"`
	Type  string `json:"type"`
	// authorships
	AuthorShips []Authorship `json:"authorships"`
}

// BestTitle prefers display_name, falling back to title.
func (w *Work) BestTitle() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Title
}

// HasInstitution reports whether any authorship of the work lists an
// institution with the given ror id.
func (w *Work) HasInstitution(ror string) bool {
	for _, obj := range w.AuthorShips {
		for _, ins := range obj.Institutions {
			if ins.ROR == ror {
				return true
			}
		}
	}
	return false
}
