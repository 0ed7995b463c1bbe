package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/travel"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type distanceOptions struct {
	from    string
	to      string
	fromGeo string
	toGeo   string
	units   string
	tick    time.Duration
}

func newDistanceCmd() *cobra.Command {
	opts := distanceOptions{}
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Compute distance and travel time between two map fields",
		Example: `  villagectl distance --from 0,0 --to 30,40 --units legionnaire:10,scout:2
  villagectl distance --from 0,0 --to 12,-9 --from-geo 41.90,12.50 --to-geo 41.11,14.21 --units scout:1 --tick 1m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistance(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "0,0", "origin field as x,y")
	cmd.Flags().StringVar(&opts.to, "to", "", "target field as x,y")
	cmd.Flags().StringVar(&opts.fromGeo, "from-geo", "", "origin as lat,lon for the real distance")
	cmd.Flags().StringVar(&opts.toGeo, "to-geo", "", "target as lat,lon for the real distance")
	cmd.Flags().StringVar(&opts.units, "units", "", "unit selection as name:count,...")
	cmd.Flags().DurationVar(&opts.tick, "tick", time.Second, "length of one game tick")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("units")
	return cmd
}

func runDistance(w io.Writer, opts distanceOptions) error {
	from, err := parseCoordinate(opts.from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseCoordinate(opts.to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	origin := travel.Endpoint{Coordinate: from}
	target := travel.Endpoint{Coordinate: to}
	if opts.fromGeo != "" || opts.toGeo != "" {
		if origin.Geo, err = parseGeo(opts.fromGeo); err != nil {
			return fmt.Errorf("--from-geo: %w", err)
		}
		if target.Geo, err = parseGeo(opts.toGeo); err != nil {
			return fmt.Errorf("--to-geo: %w", err)
		}
	}
	units, err := catalog.ParseSelection(opts.units)
	if err != nil {
		return fmt.Errorf("--units: %w", err)
	}
	speeds, err := catalog.UnitSpeeds(units)
	if err != nil {
		return err
	}

	m, err := travel.NewMovement(travel.MovementParams{
		Kind:       travel.MovementReinforce,
		From:       origin,
		To:         target,
		Units:      units,
		UnitSpeeds: speeds,
		Tick:       opts.tick,
	})
	if err != nil {
		return err
	}

	header(w, "Travel")
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Distance", "Real km", "Slowest speed", "Ticks", "Travel time"}),
	)
	realKm := "-"
	if origin.Geo != nil {
		realKm = fmt.Sprintf("%.1f", m.RealDistanceKm)
	}
	table.Append([]string{
		fmt.Sprintf("%.2f", m.Distance),
		realKm,
		fmt.Sprintf("%g fields/tick", m.Speed),
		fmt.Sprintf("%d", m.TravelTicks),
		economy.FormatDuration(m.ArrivesAt.Sub(m.DepartedAt)),
	})
	table.Render()
	return nil
}

func parseCoordinate(raw string) (travel.Coordinate, error) {
	a, b, err := parsePair(raw)
	if err != nil {
		return travel.Coordinate{}, err
	}
	x, errX := strconv.Atoi(a)
	y, errY := strconv.Atoi(b)
	if errX != nil || errY != nil {
		return travel.Coordinate{}, fmt.Errorf("expected integer x,y, got %q", raw)
	}
	return travel.Coordinate{X: x, Y: y}, nil
}

func parseGeo(raw string) (*travel.GeoPoint, error) {
	a, b, err := parsePair(raw)
	if err != nil {
		return nil, err
	}
	lat, errLat := strconv.ParseFloat(a, 64)
	lon, errLon := strconv.ParseFloat(b, 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("expected lat,lon in degrees, got %q", raw)
	}
	return &travel.GeoPoint{Lat: lat, Lon: lon}, nil
}

func parsePair(raw string) (string, string, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(raw), ",")
	if !ok {
		return "", "", fmt.Errorf("expected two comma separated values, got %q", raw)
	}
	return strings.TrimSpace(a), strings.TrimSpace(b), nil
}
