// Package cmd implements the pagerange command line tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pagerange",
	Short: "Resolve page range specifications and run page actions on PDFs",
	Long: `pagerange resolves specifications such as "1-3,5,7-" against a page
count and applies them to PDF files.

Commands:
  parse    - print the pages a specification selects
  select   - copy selected pages into a new PDF
  rotate   - rotate selected pages
  remove   - drop selected pages
  stamp    - stamp text on selected pages
  serve    - run the HTTP API`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("pagerange", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file (default: $CONFIG_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
