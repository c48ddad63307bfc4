package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/report"
)

func newAnalyzeCmd(app *cliApp) *cobra.Command {
	var (
		sel      selectionFlags
		typeName string
		format   string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the generative service for an analysis of the selected specifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := analysis.ParseType(typeName)
			if err != nil {
				return err
			}
			if err := checkFormat(format, "txt", "pdf"); err != nil {
				return err
			}
			if format == "pdf" && output == "" {
				return fmt.Errorf("--format pdf needs -o <file>")
			}

			res, err := app.eng.Analyze(cmd.Context(), sel.selection(app.eng.Catalogue()), t)
			if err != nil {
				return err
			}
			if res.Failed {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Text)
				return fmt.Errorf("analysis failed")
			}

			if output == "" && format == "txt" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", analysis.Subject(res.Type, res.Categories), res.Text)
				return nil
			}
			doc := app.eng.AnalysisDocument(res)
			return writeOutput(cmd, output, func(w io.Writer) error {
				if format == "pdf" {
					return report.WriteAnalysisPDF(w, doc)
				}
				return report.WriteAnalysisText(w, doc)
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&typeName, "type", "t", string(analysis.General), "Analysis type: general, gaming, productivity, price_quality")
	cmd.Flags().StringVar(&format, "format", "txt", "Export format: txt or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export file; prints the analysis when empty")
	return cmd
}
