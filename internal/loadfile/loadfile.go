package loadfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/monitor1379/yagods/sets/hashset"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

// LoadWorks reads a JSON array of works, fully materialized in memory.
func LoadWorks(filePath string) ([]mode.Work, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var works []mode.Work
	if err := json.Unmarshal(data, &works); err != nil {
		return nil, err
	}
	return works, nil
}

// LoadCountryTable reads the country csv (country,name,latitude,longitude,
// columns located by header) into a code keyed map. Rows with non-numeric
// coordinates are skipped; on duplicated codes the first row wins.
func LoadCountryTable(filePath string) (map[string]*mode.Country, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.LazyQuotes = true

	// get column indexes
	rec, err := cr.Read()
	if err != nil {
		return nil, err
	}
	colIndex := make(map[string]int)
	for i, v := range rec {
		colIndex[v] = i
	}
	for _, name := range []string{"country", "name", "latitude", "longitude"} {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("country table: missing column %q", name)
		}
	}

	ret := make(map[string]*mode.Country)
	seenCodes := hashset.New[string]()
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		code := rec[colIndex["country"]]
		if seenCodes.Contains(code) {
			log.Warnln("duplicated country code, keep first:", code)
			continue
		}
		lat, err := strconv.ParseFloat(rec[colIndex["latitude"]], 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(rec[colIndex["longitude"]], 64)
		if err != nil {
			continue
		}
		seenCodes.Add(code)
		ret[code] = &mode.Country{
			Name:   rec[colIndex["name"]],
			Lat:    lat,
			Lng:    lng,
			Coords: [2]float64{lat, lng},
		}
	}
	log.Infof("country table: %d rows", len(ret))
	return ret, nil
}

// WriteReport dumps a report to disk as indented json.
func WriteReport(filePath string, report interface{}) error {
	data, err := json.MarshalIndent(report, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
