package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/engine"
)

func newQueryCmd(app *cliApp) *cobra.Command {
	var (
		sel selectionFlags
		ff  filterFlags
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Build the search query without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.eng.BuildQuery(cmd.Context(), queryOptions(app, &sel, &ff))
			if err != nil {
				return err
			}
			if res.Notice != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Interogarea nu a fost optimizata: %s\n", res.Notice)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Query)
			return nil
		},
	}
	sel.register(cmd)
	ff.register(cmd)
	return cmd
}

func newSearchCmd(app *cliApp) *cobra.Command {
	var (
		sel    selectionFlags
		ff     filterFlags
		enrich bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search Romanian retailers for monitors matching the selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.eng.Search(cmd.Context(), engine.SearchOptions{
				QueryOptions: queryOptions(app, &sel, &ff),
				Enrich:       enrich,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Notice != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Interogarea nu a fost optimizata: %s\n", res.Notice)
			}
			fmt.Fprintf(out, "Interogare: %s\n\n", res.Query)
			if len(res.Results) == 0 {
				fmt.Fprintln(out, "Nu au fost gasite rezultate in magazinele din Romania.")
				return nil
			}
			for i, r := range res.Results {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, r.Title, r.Link)
				if r.Snippet != "" {
					fmt.Fprintf(out, "   %s\n", r.Snippet)
				}
				if r.Excerpt != "" {
					fmt.Fprintf(out, "   > %s\n", r.Excerpt)
				}
			}
			fmt.Fprintf(out, "\n%d din %d rezultate sunt din magazine locale.\n", len(res.Results), res.Total)
			return nil
		},
	}
	sel.register(cmd)
	ff.register(cmd)
	cmd.Flags().BoolVar(&enrich, "enrich", false, "Fetch page text for results with short snippets")
	return cmd
}

func queryOptions(app *cliApp, sel *selectionFlags, ff *filterFlags) engine.QueryOptions {
	return engine.QueryOptions{
		Selection: sel.selection(app.eng.Catalogue()),
		Filters:   ff.filters(),
		Term:      ff.term,
		Optimize:  ff.optimize,
	}
}
