package alldatasets

import (
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
	log "github.com/sirupsen/logrus"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

// Build returns one record per distinct work id among the works with at least
// one authorship at the ror institution, Polito-only works included. On
// duplicated ids the first occurrence wins. Sorted by (year, title) descending,
// a missing year sorting as 0.
func Build(works []mode.Work, ror string) []mode.Dataset {
	seenIDs := hashset.New()
	var all []mode.Dataset

	for i := range works {
		work := &works[i]
		if !work.HasInstitution(ror) {
			continue
		}
		if work.ID == "" || seenIDs.Contains(work.ID) {
			continue
		}
		seenIDs.Add(work.ID)

		all = append(all, mode.Dataset{
			DatasetID: work.ID,
			Title:     work.BestTitle(),
			Year:      work.Year,
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].Title > all[j].Title
	})
	log.Infof("deduped %d datasets from %d works", len(all), len(works))
	return all
}
