package cmd

import (
	"valmiki-backend/lib/serviceutil"
	"valmiki-backend/services/corpus/warm"

	"github.com/spf13/cobra"
)

var cacheKandas []int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Fetch and store the verses of every sarga known to the statistics.",
	Long: `Fetch and store the verses of every sarga known to the statistics.

Run "valmiki-cli stats" first so the statistics know which sargas
exist. Sargas that are already fully cached are skipped, so the command
can be re-run after partial failures.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := serviceutil.SignalContext()

		svc, cleanup, err := setupService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		return warm.CacheSargas(ctx, svc, warm.Options{
			Workers: workers,
			Kandas:  cacheKandas,
		})
	},
}

func init() {
	cacheCmd.Flags().IntSliceVar(&cacheKandas, "kanda", nil, "Kandas to process, defaults to all of 1..6.")
}
