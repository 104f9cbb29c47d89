package cmd

import (
	"os"

	"valmiki-backend/lib/serviceutil"
	"valmiki-backend/services/corpus/warm"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsKandas []int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Discover per-sarga verse counts and print the kanda totals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := serviceutil.SignalContext()

		svc, cleanup, err := setupService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		err = warm.CountKandas(ctx, svc, warm.Options{
			Workers: workers,
			Kandas:  statsKandas,
		})
		if err != nil {
			return err
		}

		totals, err := svc.ListKandaTotals(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Kanda", "Sargas", "Slokas"})
		grandSargas := 0
		grandSlokas := 0
		for _, total := range totals {
			t.AppendRow(table.Row{total.Kanda, total.TotalSargas, total.TotalSlokas})
			grandSargas += total.TotalSargas
			grandSlokas += total.TotalSlokas
		}
		t.AppendFooter(table.Row{"Total", grandSargas, grandSlokas})
		t.Render()
		return nil
	},
}

func init() {
	statsCmd.Flags().IntSliceVar(&statsKandas, "kanda", nil, "Kandas to process, defaults to all of 1..6.")
}
