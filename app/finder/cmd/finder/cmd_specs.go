package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/report"
)

func newSpecsCmd(app *cliApp) *cobra.Command {
	var (
		sel    selectionFlags
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "specs",
		Short: "Print or export the specification tables for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "txt", "csv", "pdf"); err != nil {
				return err
			}
			if format == "pdf" && output == "" {
				return fmt.Errorf("--format pdf needs -o <file>")
			}
			doc, err := app.eng.Specs(sel.selection(app.eng.Catalogue()))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				switch format {
				case "csv":
					return report.WriteCSV(w, doc)
				case "pdf":
					return report.WritePDF(w, doc)
				default:
					return report.WriteText(w, doc)
				}
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&format, "format", "txt", "Output format: txt, csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}

func newCompareCmd(app *cliApp) *cobra.Command {
	var (
		sel    selectionFlags
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the selected fields across categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "txt", "csv"); err != nil {
				return err
			}
			cmp, err := app.eng.Compare(sel.selection(app.eng.Catalogue()))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				if format == "csv" {
					return report.WriteComparisonCSV(w, cmp)
				}
				return report.WriteComparisonText(w, cmp)
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&format, "format", "txt", "Output format: txt or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}
