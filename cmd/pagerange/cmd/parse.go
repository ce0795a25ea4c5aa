package cmd

import (
	"errors"
	"fmt"
	"strings"

	"go-pagerange/internal/pagerange"

	"github.com/spf13/cobra"
)

var (
	parseMax       int
	parseZeroBased bool
	parseCompact   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse SPEC",
	Short: "Print the pages a specification selects",
	Example: `  pagerange parse "1-3,5,7-" --max 10
  pagerange parse "7-8,1" --max 10 --zero-based`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if parseMax < 0 {
			return errors.New("--max must not be negative")
		}
		pages := pagerange.Parse(args[0], parseMax)
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d pages selected\n", len(pages), parseMax)
		}
		switch {
		case parseCompact:
			fmt.Fprintln(cmd.OutOrStdout(), pagerange.Format(pages))
		case parseZeroBased:
			fmt.Fprintln(cmd.OutOrStdout(), joinInts(pagerange.ZeroBased(pages)))
		default:
			fmt.Fprintln(cmd.OutOrStdout(), joinInts(pages))
		}
		return nil
	},
}

func joinInts(values []int) string {
	return strings.Join(pagerange.Strings(values), " ")
}

func init() {
	parseCmd.Flags().IntVarP(&parseMax, "max", "n", 0, "highest valid page number (page count)")
	parseCmd.Flags().BoolVar(&parseZeroBased, "zero-based", false, "print 0-based indices")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "print the normalized specification")
	_ = parseCmd.MarkFlagRequired("max")
	rootCmd.AddCommand(parseCmd)
}
