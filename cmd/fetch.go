/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/loadfile"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/openalex"
)

var (
	fetchOutPath string
	fetchPerPage int
	fetchMailto  string
	fetchRor     string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the Polito dataset works from OpenAlex",
	Long: `Pages through the OpenAlex works endpoint, filtered to type:dataset works
with at least one Politecnico di Torino authorship, and writes the full result
set to disk as one JSON array. The other commands read this file.`,
	Run: func(cmd *cobra.Command, args []string) {
		process_fetch()
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOutPath, "out", "data/polito_works.json", "output path for the works file")
	fetchCmd.Flags().IntVar(&fetchPerPage, "per-page", 25, "OpenAlex page size")
	fetchCmd.Flags().StringVar(&fetchMailto, "mailto", "", "contact email for the OpenAlex polite pool")
	fetchCmd.Flags().StringVar(&fetchRor, "ror", mode.RORPolito, "ror id of the target institution")
}

func process_fetch() {
	client := openalex.NewClient()
	client.Mailto = fetchMailto

	works, err := client.DatasetWorks(fetchRor, fetchPerPage)
	if err != nil {
		log.Fatal(err)
	}
	if err := loadfile.WriteReport(fetchOutPath, works); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %d works to %s", len(works), fetchOutPath)
}
