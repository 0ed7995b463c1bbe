package main

import (
	"fmt"
	"io"
	"strings"

	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var building string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print building upgrade costs and unit stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			if building != "" {
				return runBuildingLevels(cmd.OutOrStdout(), building)
			}
			return runCatalog(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&building, "building", "", "show every level of one building")
	return cmd
}

func runCatalog(w io.Writer) error {
	header(w, "Buildings (level 1)")
	buildings := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Building", "Wood", "Clay", "Iron", "Crop", "Build time"}),
	)
	for _, bt := range catalog.AllBuildingTypes() {
		def, err := catalog.Building(string(bt))
		if err != nil {
			return err
		}
		cost, d, err := def.Upgrade(1)
		if err != nil {
			return err
		}
		buildings.Append(append([]string{string(bt)}, costCells(cost, economy.FormatDuration(d))...))
	}
	buildings.Render()

	header(w, "Units")
	units := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Unit", "Speed", "Upkeep", "Train time", "Needs research"}),
	)
	for _, name := range catalog.AllUnitNames() {
		def, err := catalog.Unit(name)
		if err != nil {
			return err
		}
		research := "no"
		if def.Research != nil {
			research = "yes (" + string(def.Research.Requires) + ")"
		}
		units.Append([]string{
			def.Name,
			fmt.Sprintf("%g", def.Speed),
			fmt.Sprintf("%g", def.CropUpkeep),
			economy.FormatDuration(def.TrainDuration),
			research,
		})
	}
	units.Render()
	return nil
}

func runBuildingLevels(w io.Writer, name string) error {
	def, err := catalog.Building(name)
	if err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	header(w, strings.ReplaceAll(string(def.Type), "_", " "))
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Level", "Wood", "Clay", "Iron", "Crop", "Build time"}),
	)
	for level := 1; level <= catalog.MaxLevel; level++ {
		cost, d, err := def.Upgrade(level)
		if err != nil {
			return err
		}
		table.Append(append([]string{fmt.Sprintf("%d", level)}, costCells(cost, economy.FormatDuration(d))...))
	}
	table.Render()
	return nil
}

func costCells(cost economy.Cost, duration string) []string {
	cells := make([]string, 0, 5)
	for _, rt := range economy.AllResourceTypes() {
		cells = append(cells, fmt.Sprintf("%d", cost[rt]))
	}
	return append(cells, duration)
}
