/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/loadfile"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/logic/collaborations"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/openalex"
)

var (
	collabWorksPath     string
	collabCountriesPath string
	collabOutPath       string
	collabMailto        string
	collabRor           string
)

// collaborationsCmd represents the collaborations command
var collaborationsCmd = &cobra.Command{
	Use:   "collaborations",
	Short: "Build the per-country collaborations report",
	Long: `Reads the fetched works file and groups the international co-authorships
by partner country. Institutions without an embedded country code are resolved
against the OpenAlex institutions endpoint, memoized per run.`,
	Run: func(cmd *cobra.Command, args []string) {
		process_collaborations()
	},
}

func init() {
	rootCmd.AddCommand(collaborationsCmd)

	collaborationsCmd.Flags().StringVar(&collabWorksPath, "works", "data/polito_works.json", "path of the fetched works file")
	collaborationsCmd.Flags().StringVar(&collabCountriesPath, "countries", "data/countries.csv", "path of the country lookup table")
	collaborationsCmd.Flags().StringVar(&collabOutPath, "out", "data/collaborations.json", "output path for the report")
	collaborationsCmd.Flags().StringVar(&collabMailto, "mailto", "", "contact email for the OpenAlex polite pool")
	collaborationsCmd.Flags().StringVar(&collabRor, "ror", mode.RORPolito, "ror id of the target institution")
}

func process_collaborations() {
	works, err := loadfile.LoadWorks(collabWorksPath)
	if err != nil {
		log.Fatalf("%v - run fetch first", err)
	}
	countries, err := loadfile.LoadCountryTable(collabCountriesPath)
	if err != nil {
		log.Fatal(err)
	}

	client := openalex.NewClient()
	client.Mailto = collabMailto

	byCountry := collaborations.Aggregate(works, collabRor, client)
	report := collaborations.BuildReport(byCountry, countries)

	if err := loadfile.WriteReport(collabOutPath, report); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %d countries to %s", len(report), collabOutPath)
}
