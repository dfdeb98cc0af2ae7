package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmbejara/constantinides-2013-options/src/cmd/level3_filter/run"
)

var rootCmd = &cobra.Command{
	Use:   "level3_filter",
	Short: "Run the Level-3 statistical filters over an option quote panel",
	Long:  `This program reads a CSV of option quotes, applies the IV-curve and put-call-parity outlier filters, and writes the two filtered panels back to CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile, err := cmd.Flags().GetString("input")
		if err != nil {
			log.Fatalf("error getting input: %v", err)
		}

		outputDir, err := cmd.Flags().GetString("output-dir")
		if err != nil {
			log.Fatalf("error getting output-dir: %v", err)
		}

		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		ivOnly, err := cmd.Flags().GetBool("iv-only")
		if err != nil {
			log.Fatalf("error getting iv-only: %v", err)
		}

		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		runArgs := run.RunArgs{
			InputFile:  inputFile,
			OutputDir:  outputDir,
			ConfigFile: configFile,
			IVOnly:     ivOnly,
			GoEnv:      goEnv,
		}

		output, err := run.Run(runArgs)
		if err != nil {
			log.Fatalf("error running command: %v", err)
		}

		log.Infof("IV filter: %d deleted, %d remaining -> %s", output.IVSummary.RowsDeleted, output.IVSummary.RowsRemaining, output.IVFilteredFilepath)
		if !ivOnly {
			log.Infof("PCP filter: %d deleted, %d remaining -> %s", output.PCPSummary.RowsDeleted, output.PCPSummary.RowsRemaining, output.PCPFilteredFilepath)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(new(string), "input", "i", "", "Path to the input quotes CSV. This flag is required.")
	rootCmd.PersistentFlags().StringVarP(new(string), "output-dir", "o", "intermediate", "Directory for the filtered output CSVs.")
	rootCmd.PersistentFlags().StringVarP(new(string), "config", "c", "", "Optional YAML filter configuration file.")
	rootCmd.PersistentFlags().Bool("iv-only", false, "Run the IV filter only, skipping the put-call parity filter.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.MarkPersistentFlagRequired("input")

	cobra.CheckErr(rootCmd.Execute())
}
