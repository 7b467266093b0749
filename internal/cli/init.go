package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
	Verbose    bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample model override file",
		Long:  "Scaffold a commented model override file documenting the filters and switches the normalizer understands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &InitConfig{
				OutputPath: out,
				Force:      force,
				Verbose:    verbose,
			}
			return initRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("out", "overrides.yaml", "Where to write the sample override file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig) error {
	_ = ctx

	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "overrides.yaml"
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force {
		if st.Mode().IsRegular() {
			return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot create parent directory: %v", err))
	}

	content := strings.TrimSpace(sampleOverridesYAML) + "\n"

	// Atomic write via temp + rename
	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v", absPath, err))
	}
	fmt.Fprintf(os.Stdout, "Wrote sample overrides to %s\n", absPath)
	return nil
}

// sampleOverridesYAML is a commented example override file documenting the
// fields the normalizer consumes.
const sampleOverridesYAML = `# swagger2model override configuration (YAML)
# All fields are optional.

# Skip operations entirely. Patterns are "operation.verb" with per-segment
# wildcards: "listWidgets.get", "*.delete", "listWidgets.*", "*.*".
# ignoreOperations: []

# Skip request headers. Patterns are "operation.header":
# "listWidgets.X-Api-Key", "*.X-Api-Key", "listWidgets.*", "*.*".
# ignoreRequestHeaders: []

# Skip response headers. Patterns are "operation.code.header", e.g.
# "listWidgets.200.X-Next-Token", "listWidgets.*.X-Next-Token", "*.*.*".
# ignoreResponseHeaders: []

# Treat string patterns shaped like "^a|b|c$" as enumerated value lists
# instead of regular expressions.
# modelStringPatternsAreAlternativeList: false

# The fields below are passed through to the code-emission backend and do
# not influence normalization.
# namingOverrides: {}
# requiredOverrides: {}
# defaultValues: {}
`
