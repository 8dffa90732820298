// internal/cli/batch.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/internal/output"
	"github.com/seqfoundry/primedesign/internal/writers"
)

// specEntry is one edit in a batch YAML file.
type specEntry struct {
	Op          string `yaml:"op"`
	Start       int    `yaml:"start"`
	End         int    `yaml:"end"`
	Replacement string `yaml:"replacement"`
}

func newBatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Design primer pairs for a YAML list of edits on one template",
		Long: `batch runs one design per entry in a YAML spec file against a shared
template. Entries are independent: a failed design is reported in place and
never aborts its siblings.

Spec file format:
  - op: delete
    start: 210
    end: 270
  - op: substitute
    start: 99
    end: 102
    replacement: GCG`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(app, cmd)
		},
	}

	cmd.Flags().StringP("template", "t", "", "template FASTA file or '-' for stdin (required)")
	_ = cmd.MarkFlagRequired("template")
	cmd.Flags().StringP("specs", "s", "", "YAML file listing the edits (required)")
	_ = cmd.MarkFlagRequired("specs")

	addDesignFlags(cmd)
	return cmd
}

func loadSpecFile(path string) ([]design.Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specs: %w", err)
	}
	var entries []specEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse specs %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("specs %s: no entries", path)
	}

	specs := make([]design.Spec, 0, len(entries))
	for i, e := range entries {
		switch design.Op(e.Op) {
		case design.OpAmplify:
			specs = append(specs, design.Amplify(e.Start, e.End))
		case design.OpDelete:
			specs = append(specs, design.Delete(e.Start, e.End))
		case design.OpSubstitute:
			specs = append(specs, design.Substitute(e.Start, e.End, e.Replacement))
		default:
			return nil, fmt.Errorf("specs %s: entry %d: invalid op %q", path, i, e.Op)
		}
	}
	return specs, nil
}

func runBatch(app *App, cmd *cobra.Command) error {
	format, err := outputFormat(cmd, "jsonl")
	if err != nil {
		return err
	}
	rec, err := readTemplate(cmd)
	if err != nil {
		return err
	}
	specsPath, _ := cmd.Flags().GetString("specs")
	specs, err := loadSpecFile(specsPath)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	app.Log.Info("batch request",
		zap.String("template", rec.ID),
		zap.Int("specs", len(specs)))

	items := app.Engine.DesignBatch(cmd.Context(), rec.Seq, specs, opts)
	for _, it := range items {
		if !it.OK() {
			app.Log.Warn("batch item failed",
				zap.Int("index", it.Index),
				zap.Error(it.Err))
		}
	}

	switch format {
	case "json":
		return output.WriteBatchJSON(cmd.OutOrStdout(), items)
	case "jsonl":
		return writers.WriteBatchJSONL(cmd.OutOrStdout(), output.ToAPIBatch(items))
	default:
		return output.WriteBatchText(cmd.OutOrStdout(), items)
	}
}
