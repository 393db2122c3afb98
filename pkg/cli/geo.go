package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/caucaconecta/caucaconecta/pkg/cli/config"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdProject() *cli.Command {
	var (
		geoCfg   config.Geo
		lat, lng float64
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.FloatFlag{
				Name:        "lat",
				Usage:       "Latitude in decimal degrees",
				Required:    true,
				Destination: &lat,
			},
			&cli.FloatFlag{
				Name:        "lng",
				Usage:       "Longitude in decimal degrees",
				Required:    true,
				Destination: &lng,
			},
		},
		geoCfg.Flags(),
	)

	return &cli.Command{
		Name:  "project",
		Usage: "Print where a coordinate lands on the map",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			geography, err := geoCfg.Configure()
			if err != nil {
				return err
			}

			coord := model.Coordinate{Lat: lat, Lng: lng}
			if err := coord.Validate(); err != nil {
				return err
			}

			pos := geography.Projector.Project(coord)
			_, err = fmt.Fprintf(c.Root().Writer, "x=%.2f%% y=%.2f%% inside=%t\n",
				pos.X, pos.Y, geography.Projector.Contains(coord))
			return err
		},
	}
}

func cmdRegions() *cli.Command {
	var geoCfg config.Geo

	return &cli.Command{
		Name:      "regions",
		Usage:     "List municipalities or resolve one name",
		ArgsUsage: "[name]",
		Flags:     geoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			geography, err := geoCfg.Configure()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			if name := c.Args().First(); name != "" {
				region, found := geography.Regions.Lookup(name)
				writeRegion(tw, region)
				if !found {
					fmt.Fprintf(tw, "(%q is unknown, showing fallback)\n", name)
				}
				return tw.Flush()
			}

			for _, region := range geography.Regions.All() {
				writeRegion(tw, region)
			}
			return tw.Flush()
		},
	}
}

func writeRegion(tw *tabwriter.Writer, r model.Region) {
	fmt.Fprintf(tw, "%s\t%s\tzoom %d\n", r.Name, r.Coordinate.String(), r.Zoom)
}
