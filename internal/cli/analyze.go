// internal/cli/analyze.go
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/seqfoundry/primedesign/core/align"
	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/internal/fasta"
	"github.com/seqfoundry/primedesign/internal/output"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Profile an existing primer or primer pair",
		Long: `analyze reports Tm, GC, secondary structure, and (with --template) the
binding site for a primer you already have. Give --reverse as well to score
the two as a pair.`,
		Example: `  primedesign analyze --primer ATGGCTAGCAAAGGAGAAG
  primedesign analyze --primer ATGGCTAGC... --reverse TTACTTGTACAG... --template gene.fa`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(app, cmd)
		},
	}

	cmd.Flags().StringP("primer", "p", "", "primer sequence 5'→3' (required)")
	_ = cmd.MarkFlagRequired("primer")
	cmd.Flags().StringP("reverse", "r", "", "reverse primer sequence 5'→3' (pair analysis)")
	cmd.Flags().StringP("template", "t", "", "template FASTA file for binding-site search")
	cmd.Flags().String("mode", "", "scoring mode for pair analysis (default amplification)")
	cmd.Flags().Float64("tm-target", design.DefaultOptions().TmTarget, "annealing Tm to score against (°C)")

	return cmd
}

func runAnalyze(app *App, cmd *cobra.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	fwd, _ := cmd.Flags().GetString("primer")
	rev, _ := cmd.Flags().GetString("reverse")
	if fwd == "" {
		return errors.New("--primer is required")
	}

	var template string
	if path, _ := cmd.Flags().GetString("template"); path != "" {
		rec, err := fasta.ReadOne(path)
		if err != nil {
			return err
		}
		template = rec.Seq
	}

	if rev == "" {
		a, err := app.Engine.AnalyzePrimer(template, fwd, align.Forward)
		if err != nil {
			return err
		}
		if format == "json" {
			return output.WritePrimerAnalysisJSON(cmd.OutOrStdout(), a)
		}
		return output.WritePrimerAnalysisText(cmd.OutOrStdout(), a)
	}

	mode, _ := cmd.Flags().GetString("mode")
	if mode != "" {
		if err := validMode(score.Mode(mode)); err != nil {
			return err
		}
	}
	tmTarget, _ := cmd.Flags().GetFloat64("tm-target")

	pa, err := app.Engine.AnalyzePair(template, fwd, rev, score.Mode(mode), tmTarget)
	if err != nil {
		return err
	}
	if format == "json" {
		return output.WritePairAnalysisJSON(cmd.OutOrStdout(), pa)
	}
	if err := output.WritePrimerAnalysisText(cmd.OutOrStdout(), pa.Forward); err != nil {
		return err
	}
	return output.WritePrimerAnalysisText(cmd.OutOrStdout(), pa.Reverse)
}
