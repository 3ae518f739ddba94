package collaborations

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

// CountryLookup resolves an institution short id to its country code.
// Satisfied by openalex.Client.
type CountryLookup interface {
	InstitutionCountryCode(shortID string) (string, error)
}

// ResolveCountryCode returns the country code of an institution. The embedded
// code wins when present; otherwise the short id is looked up remotely, with
// the result memoized in cache for the rest of the run. A successful lookup is
// cached even when its code is empty, a failed lookup is not, so a later
// occurrence of the same short id may still retry.
func ResolveCountryCode(ins mode.Institution, lookup CountryLookup, cache map[string]string) string {
	if ins.CountryCode != "" {
		return ins.CountryCode
	}
	if ins.ID == "" {
		return ""
	}
	// e.g. "https://openalex.org/I55143463" -> "I55143463"
	shortID := ins.ID[strings.LastIndex(ins.ID, "/")+1:]

	if code, ok := cache[shortID]; ok {
		return code
	}
	code, err := lookup.InstitutionCountryCode(shortID)
	if err != nil {
		log.Warnln("institution lookup failed:", shortID, err)
		return ""
	}
	cache[shortID] = code
	return code
}

type externalPair struct {
	ins  mode.Institution
	code string
}

// Aggregate builds the country keyed collaboration buckets. A work counts only
// when it has at least one authorship at the ror institution; every other
// institution with a resolvable country contributes one collaboration record
// per distinct (work, institution, country) triple.
func Aggregate(works []mode.Work, ror string, lookup CountryLookup) map[string]*mode.CountryCollaborations {
	cache := make(map[string]string)
	byCountry := make(map[string]*mode.CountryCollaborations)

	for i := range works {
		work := &works[i]
		if !work.HasInstitution(ror) {
			continue
		}

		var pairs []externalPair
		for _, obj := range work.AuthorShips {
			for _, ins := range obj.Institutions {
				if ins.ROR == ror {
					continue
				}
				code := ResolveCountryCode(ins, lookup, cache)
				if code == "" {
					continue
				}
				pairs = append(pairs, externalPair{ins, code})
			}
		}
		// works with only Polito authors contribute nothing
		if len(pairs) == 0 {
			continue
		}

		seenTriples := mapset.NewSet[string]()
		for _, pair := range pairs {
			triple := work.ID + "|" + pair.ins.ID + "|" + pair.code
			if seenTriples.Contains(triple) {
				continue
			}
			seenTriples.Add(triple)

			bucket, ok := byCountry[pair.code]
			if !ok {
				bucket = &mode.CountryCollaborations{CountryCode: pair.code}
				byCountry[pair.code] = bucket
			}
			bucket.Collaborations = append(bucket.Collaborations, mode.Collaboration{
				Partner:   pair.ins.Name,
				DatasetID: work.ID,
				Title:     work.BestTitle(),
				Year:      work.Year,
			})
		}
	}
	log.Infof("aggregated %d countries from %d works", len(byCountry), len(works))
	return byCountry
}

// BuildReport orders the buckets for serialization: collaborations within a
// country by (year, partner) descending, countries by collaboration count
// descending with the code as tie break, each joined with its country table row.
func BuildReport(byCountry map[string]*mode.CountryCollaborations, countries map[string]*mode.Country) []*mode.CountryCollaborations {
	report := make([]*mode.CountryCollaborations, 0, len(byCountry))
	for _, bucket := range byCountry {
		sort.SliceStable(bucket.Collaborations, func(i, j int) bool {
			a, b := bucket.Collaborations[i], bucket.Collaborations[j]
			if a.Year != b.Year {
				return a.Year > b.Year
			}
			return a.Partner > b.Partner
		})
		bucket.CollaborationsCount = len(bucket.Collaborations)
		bucket.Country = countries[bucket.CountryCode]
		report = append(report, bucket)
	}
	sort.SliceStable(report, func(i, j int) bool {
		if report[i].CollaborationsCount != report[j].CollaborationsCount {
			return report[i].CollaborationsCount > report[j].CollaborationsCount
		}
		return report[i].CountryCode < report[j].CountryCode
	})
	return report
}
