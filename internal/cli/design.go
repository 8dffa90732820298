// internal/cli/design.go
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/internal/fasta"
	"github.com/seqfoundry/primedesign/internal/output"
	"github.com/seqfoundry/primedesign/internal/pretty"
)

func newDesignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design a primer pair for an amplification or mutagenesis edit",
		Example: `  primedesign design --template plasmid.fa --op amplify --start 100 --end 700
  primedesign design --template gene.fa --op delete --start 210 --end 270
  primedesign design --template gene.fa --op substitute --start 99 --end 102 --replacement GCG
  primedesign design --template gene.fa --codon 45 --target-aa A --cds-start 12`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDesign(app, cmd)
		},
	}

	cmd.Flags().StringP("template", "t", "", "template FASTA file or '-' for stdin (required)")
	_ = cmd.MarkFlagRequired("template")
	cmd.Flags().String("op", "", "edit operation: amplify | delete | substitute")
	cmd.Flags().Int("start", 0, "edit region start (0-based, inclusive)")
	cmd.Flags().Int("end", 0, "edit region end (0-based, exclusive)")
	cmd.Flags().String("replacement", "", "replacement sequence for --op substitute")
	cmd.Flags().Int("codon", -1, "codon index for an amino-acid substitution (0-based, overrides --op)")
	cmd.Flags().String("target-aa", "", "single-letter target amino acid for --codon")
	cmd.Flags().Int("cds-start", 0, "template offset of the coding sequence for --codon")
	cmd.Flags().Bool("progressive", false, "emit a quick preview before the exhaustive result")

	addDesignFlags(cmd)
	return cmd
}

// addDesignFlags registers the search bounds shared by design and batch.
func addDesignFlags(cmd *cobra.Command) {
	d := design.DefaultOptions()
	cmd.Flags().Float64("tm-target", d.TmTarget, "annealing Tm to aim for (°C)")
	cmd.Flags().Float64("tm-min", d.TmMin, "hard lower Tm bound (°C)")
	cmd.Flags().Float64("tm-max", d.TmMax, "hard upper Tm bound (°C)")
	cmd.Flags().Int("min-len", d.MinLen, "minimum annealing length (bp)")
	cmd.Flags().Int("max-len", d.MaxLen, "maximum primer length (bp)")
	cmd.Flags().Float64("gc-min", d.GCMin, "hard lower GC bound")
	cmd.Flags().Float64("gc-max", d.GCMax, "hard upper GC bound")
	cmd.Flags().String("strategy", string(d.Strategy), "mutagenic layout: back-to-back | overlapping")
	cmd.Flags().String("mode", "", "scoring mode: amplification | mutagenesis | sequencing | golden-gate | assembly (default by op)")
	cmd.Flags().Bool("circular", false, "treat the template as circular")
	cmd.Flags().Bool("exhaustive", true, "search the full candidate lattice")
	cmd.Flags().Int("top-k", d.TopK, "alternatives to report alongside the best pair")
}

func optionsFromFlags(cmd *cobra.Command) (design.Options, error) {
	var o design.Options
	o.TmTarget, _ = cmd.Flags().GetFloat64("tm-target")
	o.TmMin, _ = cmd.Flags().GetFloat64("tm-min")
	o.TmMax, _ = cmd.Flags().GetFloat64("tm-max")
	o.MinLen, _ = cmd.Flags().GetInt("min-len")
	o.MaxLen, _ = cmd.Flags().GetInt("max-len")
	o.GCMin, _ = cmd.Flags().GetFloat64("gc-min")
	o.GCMax, _ = cmd.Flags().GetFloat64("gc-max")
	o.TopK, _ = cmd.Flags().GetInt("top-k")
	o.Circular, _ = cmd.Flags().GetBool("circular")
	o.Exhaustive, _ = cmd.Flags().GetBool("exhaustive")

	strat, _ := cmd.Flags().GetString("strategy")
	switch design.Strategy(strat) {
	case design.StrategyBackToBack, design.StrategyOverlapping:
		o.Strategy = design.Strategy(strat)
	default:
		return o, fmt.Errorf("invalid --strategy %q", strat)
	}

	mode, _ := cmd.Flags().GetString("mode")
	if mode != "" {
		if err := validMode(score.Mode(mode)); err != nil {
			return o, err
		}
		o.Mode = score.Mode(mode)
	}
	return o, nil
}

func validMode(m score.Mode) error {
	for _, k := range score.Modes() {
		if m == k {
			return nil
		}
	}
	return fmt.Errorf("invalid --mode %q", m)
}

func specFromFlags(cmd *cobra.Command, template string) (design.Spec, error) {
	codon, _ := cmd.Flags().GetInt("codon")
	if codon >= 0 {
		aa, _ := cmd.Flags().GetString("target-aa")
		if len(aa) != 1 {
			return design.Spec{}, errors.New("--codon requires a single-letter --target-aa")
		}
		cdsStart, _ := cmd.Flags().GetInt("cds-start")
		return design.SpecFromAminoAcidChange(template, cdsStart, codon, aa[0])
	}

	op, _ := cmd.Flags().GetString("op")
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	switch design.Op(op) {
	case design.OpAmplify:
		return design.Amplify(start, end), nil
	case design.OpDelete:
		return design.Delete(start, end), nil
	case design.OpSubstitute:
		repl, _ := cmd.Flags().GetString("replacement")
		if repl == "" {
			return design.Spec{}, errors.New("--op substitute requires --replacement")
		}
		return design.Substitute(start, end, repl), nil
	case "":
		return design.Spec{}, errors.New("provide --op or --codon")
	default:
		return design.Spec{}, fmt.Errorf("invalid --op %q", op)
	}
}

func readTemplate(cmd *cobra.Command) (fasta.Record, error) {
	path, _ := cmd.Flags().GetString("template")
	return fasta.ReadOne(path)
}

func runDesign(app *App, cmd *cobra.Command) error {
	format, err := outputFormat(cmd, "pretty")
	if err != nil {
		return err
	}
	rec, err := readTemplate(cmd)
	if err != nil {
		return err
	}
	spec, err := specFromFlags(cmd, rec.Seq)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	app.Log.Info("design request",
		zap.String("template", rec.ID),
		zap.Int("template_bp", len(rec.Seq)),
		zap.String("op", string(spec.Op)))

	progressive, _ := cmd.Flags().GetBool("progressive")
	if progressive {
		return runProgressive(app, cmd, rec.Seq, spec, opts, format)
	}

	res, err := app.Engine.Design(cmd.Context(), rec.Seq, spec, opts)
	if err != nil {
		return err
	}
	return writeDesign(cmd, format, rec.Seq, res)
}

// runProgressive streams the quick preview to stderr, then the exhaustive
// result through the normal writer.
func runProgressive(app *App, cmd *cobra.Command, tpl string, spec design.Spec, opts design.Options, format string) error {
	sess := design.NewSession(app.Engine)
	defer sess.Cancel()

	var final *design.Result
	for u := range sess.Submit(cmd.Context(), tpl, spec, opts) {
		switch u.Phase {
		case design.PhasePreview:
			fmt.Fprintf(os.Stderr, "preview: %s / %s (score %.1f)\n",
				u.Result.Forward.Seq, u.Result.Reverse.Seq, u.Result.CompositeScore)
		case design.PhaseFinal:
			if u.Err != nil {
				return u.Err
			}
			r := u.Result
			final = &r
		}
	}
	if final == nil {
		return cmd.Context().Err()
	}
	return writeDesign(cmd, format, tpl, *final)
}

func writeDesign(cmd *cobra.Command, format, tpl string, res design.Result) error {
	switch format {
	case "json":
		return output.WriteDesignJSON(cmd.OutOrStdout(), res)
	case "pretty":
		_, err := fmt.Fprint(cmd.OutOrStdout(), pretty.RenderDesign(tpl, res, pretty.DefaultOptions))
		return err
	default:
		return output.WriteDesignText(cmd.OutOrStdout(), res)
	}
}
