// finder is the operator CLI for the monitor dashboard: catalogue listing, spec
// tables, comparison, search query building, local search and AI analysis.
//
// Usage:
//
//	finder catalogue
//	finder specs   -C "Monitor 24 inch" -F Rezolutie [--format table|csv|txt|pdf] [-o file]
//	finder compare -C "Monitor 24 inch" -C "Monitor 32 inch" -F Pivotare [--format table|csv]
//	finder query   -C "Monitor 27 inch" -F "Rata refresh" --panel IPS [--optimize]
//	finder search  -C "Monitor 27 inch" -F "Rata refresh" --shop emag.ro [--enrich]
//	finder analyze -C "Monitor 24 inch" -F Rezolutie --type gaming [--format txt|pdf] [-o file]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/engine"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// cliApp 各子命令共享的配置和引擎
type cliApp struct {
	configPath string
	logLevel   string

	cfg *config.Config
	eng *engine.Engine
	// 测试中注入替身
	engineOpts []engine.Option
}

func newRootCmd(app *cliApp) *cobra.Command {
	root := &cobra.Command{
		Use:          "finder",
		Short:        "Monitor specifications, local retail search and AI analysis",
		Long:         "finder lists the monitor specification catalogue, builds spec reports,\nsearches Romanian retailers and asks a generative model for an analysis.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: app.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&app.configPath, "config", "c", "", "Config file (YAML); built-in defaults and environment when empty")
	pf.StringVar(&app.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newCatalogueCmd(app))
	root.AddCommand(newSpecsCmd(app))
	root.AddCommand(newCompareCmd(app))
	root.AddCommand(newQueryCmd(app))
	root.AddCommand(newSearchCmd(app))
	root.AddCommand(newAnalyzeCmd(app))
	root.Version = version
	return root
}

func (a *cliApp) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		a.cfg = config.Default()
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if err := logger.InitLogger(a.cfg.Log.Level, a.cfg.Log.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cat, err := catalogue.Default()
	if err != nil {
		return err
	}
	a.eng, err = engine.NewEngine(cmd.Context(), a.cfg, cat, a.engineOpts...)
	return err
}

func main() {
	if err := newRootCmd(&cliApp{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
