package collaborations_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/logic/collaborations"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

type fakeLookup struct {
	codes map[string]string
	errs  map[string]error
	calls map[string]int
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		codes: make(map[string]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeLookup) InstitutionCountryCode(shortID string) (string, error) {
	f.calls[shortID]++
	if err, ok := f.errs[shortID]; ok {
		return "", err
	}
	return f.codes[shortID], nil
}

func polito() mode.Institution {
	return mode.Institution{
		ID:   "https://openalex.org/I189158943",
		ROR:  mode.RORPolito,
		Name: "Politecnico di Torino",
	}
}

func work(id, title string, year int, authorships ...[]mode.Institution) mode.Work {
	w := mode.Work{ID: id, Name: title, Year: year}
	for _, institutions := range authorships {
		var a mode.Authorship
		a.Institutions = institutions
		w.AuthorShips = append(w.AuthorShips, a)
	}
	return w
}

func TestResolveEmbeddedCodeSkipsLookup(t *testing.T) {
	lookup := newFakeLookup()
	cache := make(map[string]string)

	ins := mode.Institution{ID: "https://openalex.org/I1", CountryCode: "FR"}
	code := collaborations.ResolveCountryCode(ins, lookup, cache)

	assert.Equal(t, "FR", code)
	assert.Empty(t, lookup.calls)
	assert.Empty(t, cache)
}

func TestResolveMissingID(t *testing.T) {
	lookup := newFakeLookup()

	code := collaborations.ResolveCountryCode(mode.Institution{}, lookup, map[string]string{})

	assert.Equal(t, "", code)
	assert.Empty(t, lookup.calls)
}

func TestResolveCachesSuccess(t *testing.T) {
	lookup := newFakeLookup()
	lookup.codes["I1"] = "DE"
	cache := make(map[string]string)

	ins := mode.Institution{ID: "https://openalex.org/I1"}
	assert.Equal(t, "DE", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, "DE", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, 1, lookup.calls["I1"])
}

func TestResolveCachesSuccessfulEmpty(t *testing.T) {
	lookup := newFakeLookup()
	cache := make(map[string]string)

	ins := mode.Institution{ID: "https://openalex.org/I2"}
	assert.Equal(t, "", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, "", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, 1, lookup.calls["I2"], "successful empty result must be served from cache")
}

func TestResolveDoesNotCacheFailure(t *testing.T) {
	lookup := newFakeLookup()
	lookup.errs["I3"] = errors.New("timeout")
	cache := make(map[string]string)

	ins := mode.Institution{ID: "https://openalex.org/I3"}
	assert.Equal(t, "", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, "", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, 2, lookup.calls["I3"], "failures must stay retryable")

	// the same short id succeeds once the upstream recovers
	delete(lookup.errs, "I3")
	lookup.codes["I3"] = "JP"
	assert.Equal(t, "JP", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, "JP", collaborations.ResolveCountryCode(ins, lookup, cache))
	assert.Equal(t, 3, lookup.calls["I3"])
}

func TestAggregateSkipsWorksWithoutPolito(t *testing.T) {
	lookup := newFakeLookup()
	external := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}

	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021, []mode.Institution{external}),
	}, mode.RORPolito, lookup)

	assert.Empty(t, byCountry)
}

func TestAggregateSkipsPolitoOnlyWorks(t *testing.T) {
	lookup := newFakeLookup()

	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021, []mode.Institution{polito()}, []mode.Institution{polito()}),
	}, mode.RORPolito, lookup)

	assert.Empty(t, byCountry)
}

func TestAggregateExample(t *testing.T) {
	lookup := newFakeLookup()
	external := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}

	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021, []mode.Institution{polito(), external}),
	}, mode.RORPolito, lookup)

	require.Contains(t, byCountry, "FR")
	require.Len(t, byCountry["FR"].Collaborations, 1)
	assert.Equal(t, mode.Collaboration{
		Partner:   "CNRS",
		DatasetID: "w1",
		Title:     "Study A",
		Year:      2021,
	}, byCountry["FR"].Collaborations[0])
}

func TestAggregateDedupsTriplePerWork(t *testing.T) {
	lookup := newFakeLookup()
	external := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}

	// two co-authors at the same external institution
	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021,
			[]mode.Institution{polito(), external},
			[]mode.Institution{external},
		),
	}, mode.RORPolito, lookup)

	require.Contains(t, byCountry, "FR")
	assert.Len(t, byCountry["FR"].Collaborations, 1)
}

func TestAggregateSameInstitutionAcrossWorks(t *testing.T) {
	lookup := newFakeLookup()
	external := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}

	// the triple dedup is per work, not global
	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021, []mode.Institution{polito(), external}),
		work("w2", "Study B", 2022, []mode.Institution{polito(), external}),
	}, mode.RORPolito, lookup)

	require.Contains(t, byCountry, "FR")
	assert.Len(t, byCountry["FR"].Collaborations, 2)
}

func TestAggregateDropsUnresolvable(t *testing.T) {
	lookup := newFakeLookup()
	lookup.errs["I9"] = errors.New("boom")
	unresolved := mode.Institution{ID: "https://openalex.org/I9", Name: "Mystery Lab"}
	external := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}

	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2021, []mode.Institution{polito(), unresolved, external}),
	}, mode.RORPolito, lookup)

	require.Len(t, byCountry, 1)
	assert.Len(t, byCountry["FR"].Collaborations, 1)
}

func TestBuildReportOrdering(t *testing.T) {
	lookup := newFakeLookup()
	fr1 := mode.Institution{ID: "https://openalex.org/I1", Name: "CNRS", CountryCode: "FR"}
	fr2 := mode.Institution{ID: "https://openalex.org/I2", Name: "Sorbonne", CountryCode: "FR"}
	de := mode.Institution{ID: "https://openalex.org/I3", Name: "TU Berlin", CountryCode: "DE"}

	byCountry := collaborations.Aggregate([]mode.Work{
		work("w1", "Study A", 2020, []mode.Institution{polito(), de}),
		work("w2", "Study B", 2020, []mode.Institution{polito(), fr1, fr2}),
		work("w3", "Study C", 2023, []mode.Institution{polito(), fr1}),
	}, mode.RORPolito, lookup)

	countries := map[string]*mode.Country{
		"FR": {Name: "France", Lat: 46, Lng: 2, Coords: [2]float64{46, 2}},
	}
	report := collaborations.BuildReport(byCountry, countries)

	require.Len(t, report, 2)
	// 3 FR collaborations before 1 DE
	assert.Equal(t, "FR", report[0].CountryCode)
	assert.Equal(t, 3, report[0].CollaborationsCount)
	assert.Equal(t, "DE", report[1].CountryCode)
	assert.Equal(t, 1, report[1].CollaborationsCount)

	// within FR: year descending, then partner descending
	fr := report[0].Collaborations
	assert.Equal(t, "w3", fr[0].DatasetID)
	assert.Equal(t, "Sorbonne", fr[1].Partner)
	assert.Equal(t, "CNRS", fr[2].Partner)

	// country table join, missing rows stay nil
	require.NotNil(t, report[0].Country)
	assert.Equal(t, "France", report[0].Country.Name)
	assert.Nil(t, report[1].Country)
}
