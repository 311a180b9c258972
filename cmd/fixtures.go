package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/berthplan/app"
	"github.com/kilianp07/berthplan/internal/fixtures"
)

var fixturesOpts struct {
	random int
	seed   int64
	format string
	output string
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Write the demo dataset or a random fleet as a fixture file",
	RunE:  runFixtures,
}

func init() {
	f := fixturesCmd.Flags()
	f.IntVar(&fixturesOpts.random, "random", 0, "generate this many random vessels instead of the demo fleet")
	f.Int64Var(&fixturesOpts.seed, "seed", 1, "seed for --random")
	f.StringVarP(&fixturesOpts.format, "format", "f", "yaml", "output format: yaml or json")
	f.StringVarP(&fixturesOpts.output, "output", "o", "", "output file, stdout when empty")
	rootCmd.AddCommand(fixturesCmd)
}

func runFixtures(cmd *cobra.Command, _ []string) error {
	fx := cfg.Fixtures
	fx.Source = "demo"
	if fixturesOpts.random > 0 {
		fx.Source, fx.Seed = "random", fixturesOpts.seed
		fx.Random.Vessels = fixturesOpts.random
	}
	berths, vessels, err := app.LoadDataset(fx)
	if err != nil {
		return err
	}
	ds := fixtures.FromModel(berths, vessels)

	var out io.Writer = cmd.OutOrStdout()
	if fixturesOpts.output != "" {
		f, err := os.Create(fixturesOpts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch fixturesOpts.format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	default:
		return fmt.Errorf("unknown format %q", fixturesOpts.format)
	}
}
