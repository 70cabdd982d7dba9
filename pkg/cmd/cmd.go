// Package cmd implements the nilu command line interface. Every
// subcommand maps onto one API operation and renders the resulting
// table to stdout.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luftdata/nilu/pkg/client"
	"github.com/luftdata/nilu/pkg/env/api"
	"github.com/luftdata/nilu/pkg/table"
	"github.com/luftdata/nilu/pkg/version"
)

// dateLayouts are the input formats accepted for FROM and TO
// arguments. Only the calendar date is kept.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type cli struct {
	logger  *zap.SugaredLogger
	baseURL string
	output  string
}

// Execute runs the nilu CLI.
func Execute(logger *zap.SugaredLogger) error {
	return RootCommand(logger).Execute()
}

// RootCommand builds the nilu command tree.
func RootCommand(logger *zap.SugaredLogger) *cobra.Command {
	c := &cli{logger: logger}

	root := &cobra.Command{
		Use:           "nilu",
		Short:         "Query the NILU air quality API",
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "override the API base URL")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		c.areasCommand(),
		c.stationsCommand(),
		c.componentsCommand(),
		c.aqiCommand(),
		c.timeseriesCommand(),
		c.observationsCommand(),
	)

	return root
}

func (c *cli) newClient() (*client.Client, error) {
	apie := api.NewAPIEnv()
	if err := apie.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure API access: %w", err)
	}
	if c.baseURL != "" {
		apie.BaseURL = c.baseURL
	}
	c.logger.Debugf("Using NILU API at: %s", apie.BaseURL)

	return client.New(
		client.WithBaseURL(apie.BaseURL),
		client.WithHTTPClient(&http.Client{Timeout: apie.Timeout}),
		client.WithLogger(c.logger),
	), nil
}

func (c *cli) run(cmd *cobra.Command, fetch func(context.Context, *client.Client) (table.Table, error)) error {
	nc, err := c.newClient()
	if err != nil {
		return err
	}

	t, err := fetch(cmd.Context(), nc)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), t, c.output)
}

func (c *cli) areasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List all available areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.Areas(ctx)
			})
		},
	}
}

func (c *cli) stationsCommand() *cobra.Command {
	var (
		area string
		utd  bool
	)

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List measurement stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.StationsOptions{Area: area}
			if cmd.Flags().Changed("utd") {
				opts.UTD = client.Bool(utd)
			}
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.Stations(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&area, "area", "", "only stations within the given area")
	cmd.Flags().BoolVar(&utd, "utd", false, "only stations with new data")

	return cmd
}

func (c *cli) componentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List all measured components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.Components(ctx)
			})
		},
	}
}

func (c *cli) aqiCommand() *cobra.Command {
	var (
		component string
		culture   string
	)

	cmd := &cobra.Command{
		Use:   "aqi",
		Short: "Show the air quality index per component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.AirQualityIndexOptions{
				Component: component,
				Culture:   culture,
			}
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.AirQualityIndex(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&component, "component", "", "only the index for the given component")
	cmd.Flags().StringVar(&culture, "culture", "", `description language, e.g. "en"`)

	return cmd
}

func (c *cli) timeseriesCommand() *cobra.Command {
	var (
		station   string
		component string
		timestep  int
	)

	cmd := &cobra.Command{
		Use:   "timeseries",
		Short: "List available time series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.TimeseriesOptions{
				Station:   station,
				Component: component,
			}
			if cmd.Flags().Changed("timestep") {
				opts.Timestep = client.Int(timestep)
			}
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.Timeseries(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&station, "station", "", "only time series for the given station")
	cmd.Flags().StringVar(&component, "component", "", "only time series for the given component")
	cmd.Flags().IntVar(&timestep, "timestep", 0, "only time series with the given timestep in seconds")

	return cmd
}

func (c *cli) observationsCommand() *cobra.Command {
	var (
		station     string
		components  []string
		showInvalid bool
	)

	cmd := &cobra.Command{
		Use:   "obs FROM TO",
		Short: "List historical observations within a time period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDate(args[0])
			if err != nil {
				return err
			}
			to, err := parseDate(args[1])
			if err != nil {
				return err
			}

			opts := &client.ObservationsOptions{
				Station:    station,
				Components: components,
			}
			if cmd.Flags().Changed("show-invalid") {
				opts.ShowInvalid = client.Bool(showInvalid)
			}
			return c.run(cmd, func(ctx context.Context, nc *client.Client) (table.Table, error) {
				return nc.Observations(ctx, from, to, opts)
			})
		},
	}
	cmd.Flags().StringVar(&station, "station", "", `only observations for the given station (default "all")`)
	cmd.Flags().StringSliceVar(&components, "components", nil, "only observations for the given components")
	cmd.Flags().BoolVar(&showInvalid, "show-invalid", false, "return invalid values as nulls")

	return cmd
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

func render(w io.Writer, t table.Table, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(t)
	case "table":
		columns := t.Columns()

		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(columns, "\t"))
		for _, row := range t {
			cells := make([]string, 0, len(columns))
			for _, column := range columns {
				v, found := row[column]
				if !found || v == nil {
					cells = append(cells, "")
					continue
				}
				cells = append(cells, fmt.Sprint(v))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
