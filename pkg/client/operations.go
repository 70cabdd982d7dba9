package client

import (
	"context"
	"fmt"
	"time"

	"github.com/luftdata/nilu/pkg/table"
)

// StationsOptions filters the station lookup. The zero value applies
// no filters.
type StationsOptions struct {
	// Area restricts the result to stations within the given area.
	Area string
	// UTD, when true, restricts the result to stations with new data.
	UTD *bool
}

// AirQualityIndexOptions filters the air quality index lookup.
type AirQualityIndexOptions struct {
	// Component restricts the result to a single component.
	Component string
	// Culture selects the description language, e.g. "en".
	Culture string
}

// TimeseriesOptions filters the time series lookup.
type TimeseriesOptions struct {
	Station   string
	Component string
	Timestep  *int
}

// ObservationsOptions filters historical observation queries.
type ObservationsOptions struct {
	// Station selects a single station. The default is "all".
	Station string
	// Components restricts the result to the given components.
	Components []string
	// ShowInvalid, when true, returns invalid values as nulls instead
	// of omitting them.
	ShowInvalid *bool
}

// Areas returns all available areas.
func (c *Client) Areas(ctx context.Context) (table.Table, error) {
	return c.get(ctx, "lookup/areas", nil)
}

// Stations returns metadata for all stations matching opts.
func (c *Client) Stations(ctx context.Context, opts *StationsOptions) (table.Table, error) {
	if opts == nil {
		opts = &StationsOptions{}
	}
	return c.get(ctx, "lookup/stations", []param{
		{"area", optString(opts.Area)},
		{"utd", optBool(opts.UTD)},
	})
}

// Components returns all measured components.
func (c *Client) Components(ctx context.Context) (table.Table, error) {
	return c.get(ctx, "lookup/components", nil)
}

// AirQualityIndex returns the air quality index per component, with
// the nested "aqis" classes promoted to top-level columns.
func (c *Client) AirQualityIndex(ctx context.Context, opts *AirQualityIndexOptions) (table.Table, error) {
	if opts == nil {
		opts = &AirQualityIndexOptions{}
	}
	t, err := c.get(ctx, "lookup/aqis", []param{
		{"component", optString(opts.Component)},
		{"culture", optString(opts.Culture)},
	})
	if err != nil {
		return nil, err
	}
	return table.Flatten(t, "aqis"), nil
}

// Timeseries returns all available time series matching opts. A time
// series is one combination of station, component and timestep.
func (c *Client) Timeseries(ctx context.Context, opts *TimeseriesOptions) (table.Table, error) {
	if opts == nil {
		opts = &TimeseriesOptions{}
	}
	return c.get(ctx, "lookup/timeseries", []param{
		{"station", optString(opts.Station)},
		{"component", optString(opts.Component)},
		{"timestep", optInt(opts.Timestep)},
	})
}

// Observations returns all observations between from and to, with the
// nested "values" measurements promoted to top-level columns. Only the
// calendar date of from and to is used; any time of day is dropped.
func (c *Client) Observations(ctx context.Context, from, to time.Time, opts *ObservationsOptions) (table.Table, error) {
	if opts == nil {
		opts = &ObservationsOptions{}
	}

	station := opts.Station
	if station == "" {
		station = "all"
	}
	endpoint := fmt.Sprintf("obs/historical/%s/%s/%s",
		from.Format(DateLayout),
		to.Format(DateLayout),
		station,
	)

	t, err := c.get(ctx, endpoint, []param{
		{"components", joinComponents(opts.Components)},
		{"showinvalid", optBool(opts.ShowInvalid)},
	})
	if err != nil {
		return nil, err
	}
	return table.Flatten(t, "values"), nil
}
