package cmd

import (
	"errors"
	"fmt"

	"go-pagerange/internal/pagerange"
	"go-pagerange/internal/pdf"

	"github.com/spf13/cobra"
)

var (
	pagesSpec string
	rotateBy  int
	stampText string
)

// pageCommand builds a command of the form "<name> IN OUT --pages SPEC"
// that resolves SPEC against IN's page count and hands the pages to run.
func pageCommand(name, short string, run func(in, out string, pages []int) error) *cobra.Command {
	c := &cobra.Command{
		Use:   name + " IN OUT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			total, err := pdf.PageCount(in)
			if err != nil {
				return err
			}
			pages := pagerange.Parse(pagesSpec, total)
			if len(pages) == 0 {
				return fmt.Errorf("%q selects no pages of %s (%d pages)", pagesSpec, in, total)
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: pages %s of %d\n", name, pagerange.Format(pages), total)
			}
			if err := run(in, out, pages); err != nil {
				return fmt.Errorf("%s failed: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	c.Flags().StringVarP(&pagesSpec, "pages", "p", "", `page range specification, e.g. "1-3,5,7-"`)
	_ = c.MarkFlagRequired("pages")
	return c
}

func init() {
	selectCmd := pageCommand("select", "Copy selected pages into a new PDF", pdf.SelectPages)
	removeCmd := pageCommand("remove", "Write a copy without the selected pages", pdf.RemovePages)

	rotateCmd := pageCommand("rotate", "Rotate selected pages clockwise", func(in, out string, pages []int) error {
		return pdf.RotatePages(in, out, pages, rotateBy)
	})
	rotateCmd.Flags().IntVarP(&rotateBy, "degrees", "d", 90, "rotation, a multiple of 90")

	stampCmd := pageCommand("stamp", "Stamp text on selected pages", func(in, out string, pages []int) error {
		if stampText == "" {
			return errors.New("--text is required")
		}
		return pdf.StampPages(in, out, pages, stampText)
	})
	stampCmd.Flags().StringVarP(&stampText, "text", "t", "", "stamp text")

	rootCmd.AddCommand(selectCmd, rotateCmd, removeCmd, stampCmd)
}
