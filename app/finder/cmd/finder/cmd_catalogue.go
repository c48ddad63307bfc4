package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCatalogueCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "List monitor categories and specification fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := app.eng.Catalogue()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Categorii:")
			tw := tablewriter.NewWriter(out)
			tw.SetHeader([]string{"Categorie", "Descriere"})
			tw.SetAutoFormatHeaders(false)
			tw.SetAutoWrapText(false)
			for _, c := range cat.Categories() {
				tw.Append([]string{c.Name, c.Tagline})
			}
			tw.Render()

			fmt.Fprintln(out, "\nSpecificatii:")
			for _, f := range cat.Fields() {
				fmt.Fprintf(out, "  %s %s\n", f.Icon, f.Name)
			}

			st := app.eng.Status()
			fmt.Fprintf(out, "\nCautare: %s (%s)\nAnaliza AI: %s (%s)\n",
				readiness(st.Search), st.SearchProvider, readiness(st.Generator), st.GeneratorProvider)
			return nil
		},
	}
}

func readiness(ok bool) string {
	if ok {
		return "disponibila"
	}
	return "neconfigurata"
}
