package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kilianp07/berthplan/app"
	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/report"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/infra/logger"
	"github.com/kilianp07/berthplan/infra/mqtt"
	"github.com/kilianp07/berthplan/pkg/export"
)

var optimizeOpts struct {
	input    string
	random   int
	seed     int64
	planDate string
	format   string
	output   string
	chart    string
	publish  bool
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run one optimisation and print the schedules",
	RunE:  runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVarP(&optimizeOpts.input, "input", "i", "", "fixture file (yaml or json); defaults to the configured source")
	f.IntVar(&optimizeOpts.random, "random", 0, "plan a random fleet of this many vessels against the demo berths")
	f.Int64Var(&optimizeOpts.seed, "seed", 1, "seed for --random")
	f.StringVar(&optimizeOpts.planDate, "plan-date", "", "planning floor date (YYYY-MM-DD), overrides scheduler.plan_date")
	f.StringVarP(&optimizeOpts.format, "format", "f", "table", "output format: table, json or csv")
	f.StringVarP(&optimizeOpts.output, "output", "o", "", "write schedules to this file instead of stdout")
	f.StringVar(&optimizeOpts.chart, "chart", "", "also write the berth timeline as HTML to this file")
	f.BoolVar(&optimizeOpts.publish, "publish", false, "publish the plan to the configured MQTT broker")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	fx := cfg.Fixtures
	switch {
	case optimizeOpts.input != "":
		fx.Source, fx.Path = "file", optimizeOpts.input
	case optimizeOpts.random > 0:
		fx.Source, fx.Seed = "random", optimizeOpts.seed
		fx.Random.Vessels = optimizeOpts.random
	}
	berths, vessels, err := app.LoadDataset(fx)
	if err != nil {
		return err
	}

	schedCfg := cfg.Scheduler
	if optimizeOpts.planDate != "" {
		schedCfg.PlanDate = optimizeOpts.planDate
	}
	sched, err := scheduler.New(schedCfg, scheduler.WithLogger(logger.New("scheduler")))
	if err != nil {
		return err
	}
	recorder, err := coremetrics.NewPlanRecorder(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sinks: %w", err)
	}
	defer func() { _ = coremetrics.Close(recorder) }()

	start := time.Now()
	plan, err := sched.Plan(berths, vessels)
	if err != nil {
		return err
	}
	if err := recorder.RecordPlan(coremetrics.PlanEvent{
		RunID:      plan.RunID,
		Source:     "cli",
		Time:       plan.GeneratedAt,
		Duration:   time.Since(start),
		Schedules:  plan.Schedules,
		Unassigned: plan.Unassigned,
	}); err != nil {
		logger.New("cli").Warnf("record plan: %v", err)
	}

	out := cmd.OutOrStdout()
	if optimizeOpts.output != "" {
		f, err := os.Create(optimizeOpts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeSchedules(out, optimizeOpts.format, plan, berths); err != nil {
		return err
	}

	if optimizeOpts.chart != "" {
		f, err := os.Create(optimizeOpts.chart)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteTimelineHTML(f, berths, plan.Schedules); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
	}

	if optimizeOpts.publish {
		return publishOnce(cmd.Context(), planstore.Snapshot{Berths: berths, Vessels: vessels, Plan: plan})
	}
	return nil
}

func writeSchedules(w io.Writer, format string, plan scheduler.Plan, berths []model.Berth) error {
	switch format {
	case "json":
		return export.WriteJSON(w, plan.Schedules)
	case "csv":
		return export.WriteCSV(w, plan.Schedules)
	case "table":
		if err := export.WriteTable(w, plan.Schedules); err != nil {
			return err
		}
		return writeSummary(w, report.Summarize(plan, berths))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeSummary(w io.Writer, s report.Summary) error {
	_, err := fmt.Fprintf(w, "\nassigned %d, unassigned %d, total %s JPY (berth %s, waiting %s), avg wait %.1f days\n",
		s.Assigned, s.Unassigned,
		humanize.Comma(s.TotalCost), humanize.Comma(s.BerthCost), humanize.Comma(s.WaitingCost),
		s.AvgWaitingDays)
	if err != nil {
		return err
	}
	for _, id := range s.UnassignedIDs {
		if _, err := fmt.Fprintf(w, "  unassigned: %s (no berth can hold its cargo)\n", id); err != nil {
			return err
		}
	}
	return nil
}

func publishOnce(ctx context.Context, snap planstore.Snapshot) error {
	if !cfg.MQTT.Enabled() {
		return fmt.Errorf("--publish needs mqtt.broker in the configuration")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cli, err := mqtt.NewPahoClient(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("mqtt client: %w", err)
	}
	defer cli.Disconnect()
	return mqtt.NewPublisher(cli, cfg.MQTT).PublishSnapshot(snap)
}
