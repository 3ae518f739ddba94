/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/loadfile"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/logic/alldatasets"
	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

var (
	datasetsWorksPath string
	datasetsOutPath   string
	datasetsRor       string
)

// datasetsCmd represents the datasets command
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Build the deduplicated all-datasets report",
	Long: `Reads the fetched works file and writes the flat list of every dataset
with at least one Politecnico di Torino author, including datasets with only
Polito authors, one record per distinct work id.`,
	Run: func(cmd *cobra.Command, args []string) {
		process_datasets()
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)

	datasetsCmd.Flags().StringVar(&datasetsWorksPath, "works", "data/polito_works.json", "path of the fetched works file")
	datasetsCmd.Flags().StringVar(&datasetsOutPath, "out", "data/all_datasets.json", "output path for the report")
	datasetsCmd.Flags().StringVar(&datasetsRor, "ror", mode.RORPolito, "ror id of the target institution")
}

func process_datasets() {
	works, err := loadfile.LoadWorks(datasetsWorksPath)
	if err != nil {
		log.Fatalf("%v - run fetch first", err)
	}

	all := alldatasets.Build(works, datasetsRor)

	if err := loadfile.WriteReport(datasetsOutPath, all); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %d datasets to %s", len(all), datasetsOutPath)
}
