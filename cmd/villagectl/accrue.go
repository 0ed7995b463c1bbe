package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"villagetick/internal/domain/economy"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type accrueOptions struct {
	amount   float64
	capacity float64
	rate     float64
	elapsed  time.Duration
	steps    int
}

func newAccrueCmd() *cobra.Command {
	opts := accrueOptions{}
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Show how a stock fills up over time",
		Example: `  villagectl accrue --amount 750 --capacity 800 --rate 360 --elapsed 10m
  villagectl accrue --amount 400 --capacity 800 --rate -20 --elapsed 24h --steps 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccrue(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Float64Var(&opts.amount, "amount", 0, "current amount")
	cmd.Flags().Float64Var(&opts.capacity, "capacity", 800, "storage capacity")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "production per hour, negative for upkeep")
	cmd.Flags().DurationVar(&opts.elapsed, "elapsed", time.Hour, "time span to project")
	cmd.Flags().IntVar(&opts.steps, "steps", 4, "number of rows between now and the end of the span")
	return cmd
}

func runAccrue(w io.Writer, opts accrueOptions) error {
	if opts.capacity < 0 || opts.amount < 0 {
		return fmt.Errorf("amount and capacity must not be negative")
	}
	if opts.elapsed < 0 {
		return fmt.Errorf("elapsed must not be negative")
	}
	if opts.steps < 1 {
		opts.steps = 1
	}

	header(w, "Resource accrual")
	ratePerSecond := opts.rate / 3600
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Elapsed", "Amount", "Capacity", "Fill %", "Time to full"}),
	)
	for i := 0; i <= opts.steps; i++ {
		at := opts.elapsed * time.Duration(i) / time.Duration(opts.steps)
		amount := economy.Accrue(opts.amount, opts.capacity, ratePerSecond, at.Seconds())
		table.Append([]string{
			economy.FormatDuration(at),
			fmt.Sprintf("%d", int(math.Floor(amount))),
			fmt.Sprintf("%.0f", opts.capacity),
			fmt.Sprintf("%.2f", economy.Percentage(amount, opts.capacity)),
			economy.FormatTimeToFull(amount, opts.capacity, ratePerSecond),
		})
	}
	table.Render()
	return nil
}
