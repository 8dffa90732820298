// internal/cli/fold.go
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/seqfoundry/primedesign/core/dna"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/internal/output"
)

func newFoldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fold",
		Short: "Predict the minimum-free-energy structure of one or two strands",
		Example: `  primedesign fold --seq GGGAAACCCTTTGGGAAACCC
  primedesign fold --seq ATGGCTAGC... --with GCTAGCCAT...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFold(app, cmd)
		},
	}

	cmd.Flags().StringP("seq", "s", "", "sequence 5'→3' (required)")
	_ = cmd.MarkFlagRequired("seq")
	cmd.Flags().String("with", "", "second strand 5'→3' for dimer folding")

	return cmd
}

func runFold(app *App, cmd *cobra.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	seq, _ := cmd.Flags().GetString("seq")
	if seq == "" {
		return errors.New("--seq is required")
	}
	second, _ := cmd.Flags().GetString("with")

	var r fold.Result
	if second != "" {
		r, err = app.Folder.FoldDimer(seq, second)
	} else {
		r, err = app.Folder.Fold(seq)
	}
	if err != nil {
		return err
	}

	// Severity is classified against the first strand's 3' end.
	firstLen := len(dna.Normalize(seq))
	sev := app.Sev.Classify(r, firstLen)

	if format == "json" {
		return output.WriteFoldJSON(cmd.OutOrStdout(), r, sev)
	}
	shown := dna.Normalize(seq)
	if second != "" {
		shown += dna.Normalize(second)
	}
	return output.WriteFoldText(cmd.OutOrStdout(), shown, r, sev)
}
