package cmd

import (
	"fmt"
	"strconv"

	"valmiki-backend/lib/serviceutil"
	"valmiki-backend/lib/textutil"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <kanda> <sarga> [sloka]",
	Short: "Print a sarga (or one sloka of it) from the cache, fetching on a miss.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kanda, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid kanda %q", args[0])
		}
		sarga, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid sarga %q", args[1])
		}
		slokaNum := 0
		if len(args) == 3 {
			slokaNum, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid sloka %q", args[2])
			}
		}

		ctx := serviceutil.SignalContext()

		svc, cleanup, err := setupService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		slokas, err := svc.GetOrFetchSarga(ctx, kanda, sarga)
		if err != nil {
			return err
		}
		if len(slokas) == 0 {
			return fmt.Errorf("sarga %d.%d does not exist", kanda, sarga)
		}

		if slokaNum > 0 {
			if slokaNum > len(slokas) {
				return fmt.Errorf("sarga %d.%d only has %d slokas", kanda, sarga, len(slokas))
			}
			sloka := slokas[slokaNum-1]

			fmt.Printf("৷৷%s৷৷\n\n%s\n\n", sloka.Number, sloka.Text)
			for token, meaning := range sloka.Gloss {
				fmt.Printf("  %s - %s\n", token, meaning)
			}
			if len(sloka.Gloss) > 0 {
				fmt.Println()
			}
			fmt.Println(textutil.TrimClosingFormula(sloka.Translation))

			progress, err := svc.ProgressInKanda(ctx, kanda, sarga, slokaNum)
			if err != nil {
				return err
			}
			_, totalSlokas, err := svc.KandaTotals(ctx, kanda)
			if err != nil {
				return err
			}
			if totalSlokas > 0 {
				fmt.Printf("\n[%d/%d slokas in kanda %d]\n", progress, totalSlokas, kanda)
			}
			return nil
		}

		for _, sloka := range slokas {
			fmt.Printf("৷৷%s৷৷\n%s\n\n", sloka.Number, sloka.Text)
		}
		return nil
	},
}
