// Command induct is the CLI entry point for the metro induction
// scheduling core. It loads a fleet snapshot (from a JSON file or a
// deterministic built-in fixture), runs one Optimise invocation, and
// renders the resulting roster.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kochimetro/induct-scheduler/internal/config"
	"github.com/kochimetro/induct-scheduler/internal/fixture"
	"github.com/kochimetro/induct-scheduler/internal/metrics"
	"github.com/kochimetro/induct-scheduler/internal/snapshot"
	"github.com/kochimetro/induct-scheduler/pkg/logger"
	"github.com/kochimetro/induct-scheduler/pkg/scheduler"
)

var rootCmd = &cobra.Command{
	Use:   "induct",
	Short: "Metro trainset induction scheduling core",
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(optimiseCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("INDUCT")
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Bool("json", false, "emit JSON instead of a table")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func optimiseCmd() *cobra.Command {
	var snapshotPath string
	var fixtureSize int
	var fixtureBays int
	var rosterSize int
	var budgetSeconds float64
	var enableRelaxation bool
	var seed int64
	var metricsDump bool

	cmd := &cobra.Command{
		Use:   "optimise",
		Short: "Run one scheduling pass and print the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console", Output: "stdout"})

			var ds scheduler.FleetDataSource
			if snapshotPath != "" {
				ds, err = snapshot.LoadFile(snapshotPath)
				if err != nil {
					return fmt.Errorf("loading snapshot: %w", err)
				}
			} else {
				ds = fixture.Generate(fixtureSize, fixtureBays)
			}

			if !cmd.Flags().Changed("roster-size") {
				rosterSize = cfg.Induction.RosterSize
			}
			if !cmd.Flags().Changed("budget-seconds") {
				budgetSeconds = cfg.Induction.SolverBudget.Seconds()
			}
			if !cmd.Flags().Changed("enable-relaxation") {
				enableRelaxation = cfg.Induction.EnableRelaxation
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Induction.Seed
			}

			req := scheduler.Request{
				SnapshotTime:        time.Now(),
				RosterSize:          rosterSize,
				SolverBudgetSeconds: budgetSeconds,
				EnableRelaxation:    enableRelaxation,
				DepotBalanceLo:      cfg.Induction.DepotBalanceLo,
				DepotBalanceHi:      cfg.Induction.DepotBalanceHi,
				AgeNewYearsMax:      cfg.Induction.AgeNewYearsMax,
				CriticalBrandingMin: cfg.Induction.CriticalBrandingMin,
				MileageBandLo:       cfg.Induction.MileageBandLo,
				MileageBandHi:       cfg.Induction.MileageBandHi,
				HomeBayMin:          cfg.Induction.HomeBayMin,
				Seed:                seed,
			}

			var collectors *metrics.Collectors
			var registry *prometheus.Registry
			if cfg.Metrics.Enabled {
				registry = prometheus.NewRegistry()
				collectors = metrics.NewCollectors(registry)
			}

			sched := scheduler.New(ds)
			result, err := sched.Optimise(cmd.Context(), req)
			if err != nil {
				return err
			}

			if collectors != nil {
				collectors.RecordOptimise(string(result.Status), float64(result.ExecutionMS)/1000, result.ObjectiveValue)
				collectors.RecordViolations(result.Violations)
				collectors.SetBayAccessDispersion(result.Compliance.BayAccessDispersion)
				if result.Status == scheduler.StatusFallbackUsed {
					collectors.RecordFallback("infeasible_or_error")
				}
				if metricsDump {
					if err := dumpMetrics(registry); err != nil {
						return err
					}
				}
			}

			doc := scheduler.Report(result)
			if viper.GetBool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			renderTable(doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "path to a JSON fleet snapshot (omit to use the built-in fixture)")
	cmd.Flags().IntVar(&fixtureSize, "fixture-size", 30, "number of trainsets in the built-in fixture")
	cmd.Flags().IntVar(&fixtureBays, "fixture-bays", 20, "bays per depot in the built-in fixture")
	cmd.Flags().IntVar(&rosterSize, "roster-size", 0, "override configured roster size")
	cmd.Flags().Float64Var(&budgetSeconds, "budget-seconds", 0, "override configured solver wall-clock budget")
	cmd.Flags().BoolVar(&enableRelaxation, "enable-relaxation", false, "override configured Tier F relaxation flag")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override configured local-search seed")
	cmd.Flags().BoolVar(&metricsDump, "metrics-dump", false, "print the Prometheus metric families after the run")
	return cmd
}

func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func renderTable(doc scheduler.Document) {
	fmt.Printf("status=%s selected=%d rejected=%d objective=%d execution_ms=%d\n",
		doc.SchedulingSummary.Status,
		doc.SchedulingSummary.SelectedCount,
		doc.SchedulingSummary.RejectedCount,
		doc.SchedulingSummary.ObjectiveValue,
		doc.SchedulingSummary.ExecutionMS,
	)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Number", "Score", "Tier", "Bay", "Reason"})
	for _, s := range doc.Selected {
		bay := ""
		if s.Bay != nil {
			bay = fmt.Sprintf("%s/%d", s.Bay.Depot, s.Bay.PositionOrder)
		}
		tw.AppendRow(table.Row{s.Trainset.Number, fmt.Sprintf("%.1f", s.Score), s.Tier, bay, s.SelectionReason})
	}
	tw.Render()

	if len(doc.Rejected) > 0 {
		rw := table.NewWriter()
		rw.SetOutputMirror(os.Stdout)
		rw.AppendHeader(table.Row{"Number", "Score", "Reason"})
		for _, r := range doc.Rejected {
			rw.AppendRow(table.Row{r.Trainset.Number, fmt.Sprintf("%.1f", r.Score), r.ExclusionReason})
		}
		rw.Render()
	}
}

func dumpMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
