package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/query"
)

// selectionFlags -C / -F，可重复，顺序即选择顺序
type selectionFlags struct {
	categories []string
	fields     []string
	all        bool
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&s.categories, "category", "C", nil, "Monitor category, repeatable (e.g. \"Monitor 24 inch\")")
	f.StringArrayVarP(&s.fields, "field", "F", nil, "Specification field, repeatable (e.g. Rezolutie)")
	f.BoolVar(&s.all, "all", false, "Use every category and field not given explicitly")
}

func (s *selectionFlags) selection(cat *catalogue.Catalogue) catalogue.Selection {
	sel := catalogue.Selection{Categories: s.categories, Fields: s.fields}
	if s.all {
		if len(sel.Categories) == 0 {
			sel.Categories = cat.CategoryNames()
		}
		if len(sel.Fields) == 0 {
			sel.Fields = cat.FieldNames()
		}
	}
	return sel
}

// filterFlags 搜索过滤条件
type filterFlags struct {
	resolution   string
	panel        string
	refreshRate  string
	responseTime string
	priceMin     int
	priceMax     int
	features     []string
	shop         string
	term         string
	optimize     bool
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ff.resolution, "resolution", "", "Resolution (Full HD, 2K/QHD, 4K/UHD)")
	f.StringVar(&ff.panel, "panel", "", "Panel type (IPS, VA, TN, OLED)")
	f.StringVar(&ff.refreshRate, "refresh", "", "Refresh rate (e.g. \"144 Hz\")")
	f.StringVar(&ff.responseTime, "response", "", "Response time (e.g. \"1 ms\")")
	f.IntVar(&ff.priceMin, "price-min", 0, fmt.Sprintf("Minimum price in RON (%d-%d)", query.MinPrice, query.MaxPrice))
	f.IntVar(&ff.priceMax, "price-max", 0, fmt.Sprintf("Maximum price in RON (%d-%d)", query.MinPrice, query.MaxPrice))
	f.StringArrayVar(&ff.features, "feature", nil, "Feature tag, repeatable (e.g. HDR)")
	f.StringVar(&ff.shop, "shop", "", "Restrict to one shop domain (e.g. emag.ro)")
	f.StringVar(&ff.term, "term", "", "Extra free-text search term")
	f.BoolVar(&ff.optimize, "optimize", false, "Let the generative service rewrite the query")
}

func (ff *filterFlags) filters() query.Filters {
	f := query.Filters{
		Resolution:   ff.resolution,
		Panel:        ff.panel,
		RefreshRate:  ff.refreshRate,
		ResponseTime: ff.responseTime,
		Features:     ff.features,
		Shop:         ff.shop,
	}
	if ff.priceMin != 0 || ff.priceMax != 0 {
		p := query.PriceRange{Min: query.MinPrice, Max: query.MaxPrice}
		if ff.priceMin != 0 {
			p.Min = ff.priceMin
		}
		if ff.priceMax != 0 {
			p.Max = ff.priceMax
		}
		f.Price = &p
	}
	return f
}

// writeOutput 写到 -o 指定的文件，未指定时写到标准输出
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
	return nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if a == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (want one of %v)", format, allowed)
}
