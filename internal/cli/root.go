// internal/cli/root.go
// Package cli wires the primedesign command tree. Each subcommand builds on
// the same App: config tables loaded once, one engine, one logger.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/core/thermo"
	"github.com/seqfoundry/primedesign/internal/config"
	"github.com/seqfoundry/primedesign/internal/logging"
)

// App carries the shared dependencies of every subcommand.
type App struct {
	Cfg    config.Config
	Log    *zap.Logger
	Engine *design.Engine
	Folder *fold.Folder
	Sev    fold.SeverityThresholds
}

// NewRootCmd builds the command tree. Dependencies are constructed in the
// persistent pre-run so flag errors surface before any file is read.
func NewRootCmd(version string) *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "primedesign",
		Short: "PCR and mutagenesis primer design with thermodynamic scoring",
		Long: `primedesign designs and analyzes PCR primers: nearest-neighbor melting
temperatures, secondary-structure prediction, binding-site search, and a
mode-aware composite quality score.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return app.init(cfgPath, level, format)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.Log != nil {
				_ = app.Log.Sync()
			}
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "path to YAML parameter file (defaults compiled in)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug | info | warn | error")
	root.PersistentFlags().String("log-format", "console", "log format: console | json")
	root.PersistentFlags().StringP("output", "o", "text", "output format: text | json (design adds pretty, batch adds jsonl)")

	root.AddCommand(
		newDesignCmd(app),
		newBatchCmd(app),
		newAnalyzeCmd(app),
		newFoldCmd(app),
	)
	return root
}

func (a *App) init(cfgPath, level, format string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cond, err := cfg.Conditions()
	if err != nil {
		return fmt.Errorf("reaction conditions: %w", err)
	}

	a.Cfg = cfg
	a.Log = logging.New(level, format)
	a.Sev = cfg.Severity
	a.Folder = fold.Default()
	a.Engine = design.NewEngine(
		thermo.New(thermo.SantaLucia2004(), cond),
		a.Folder,
		score.NewScorer(cfg.Scoring.Weights, cfg.Scoring.Bands, cfg.Scoring.Tiers, cfg.Scoring.CriticalPenalty),
		cfg.Severity,
	)
	a.Log.Debug("engine ready",
		zap.Float64("na_m", cond.NaM),
		zap.Float64("primer_m", cond.PrimerTotalM))
	return nil
}

// outputFormat validates --output; extra lists per-command formats beyond
// the universal text/json pair.
func outputFormat(cmd *cobra.Command, extra ...string) (string, error) {
	f, _ := cmd.Flags().GetString("output")
	allowed := append([]string{"text", "json"}, extra...)
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid --output %q (want %s)", f, strings.Join(allowed, " | "))
}
