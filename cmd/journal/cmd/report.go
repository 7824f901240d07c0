package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trading-journal-go/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print today's trading report",
	RunE: func(cmd *cobra.Command, args []string) error {
		j, log, _, err := buildJournal()
		if err != nil {
			return err
		}
		defer log.Sync()

		j.Refresh(cmd.Context())
		daily := j.DailyReport()
		summary := j.Summary()

		fmt.Printf("Daily report for %s\n", daily.Date)
		fmt.Printf("Win rate: %.1f%%  Daily P/L: %s  Total P/L: %s\n\n",
			daily.WinRate, daily.DailyPL.StringFixed(2), summary.TotalPL.StringFixed(2))

		if len(daily.Rows) == 0 {
			fmt.Println("No trades today.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STOCK\tSTRATEGY\tENTRY\tEXIT\tLOT\tNET P/L\t%")
		for _, row := range daily.Rows {
			sign := ""
			if row.Class == report.ClassPositive {
				sign = "+"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s%s\t%s%%\n",
				row.StockCode, row.Strategy,
				row.EntryPrice.StringFixed(2), row.ExitPrice.StringFixed(2),
				row.Lot, sign, row.NetPL.StringFixed(2), row.PLPercent.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
