package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2model/internal/override"
	genspec "github.com/mark3labs/swagger2model/internal/spec"
	"github.com/mark3labs/swagger2model/internal/walker"
)

// BuildConfig captures all inputs that influence the build command after
// merging defaults, config file values, and CLI overrides.
type BuildConfig struct {
	Input      string
	Overrides  string
	Out        string
	Pretty     bool
	ConfigPath string
	Verbose    bool
}

var buildRunner = runBuild

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a normalized service model from an OpenAPI/Swagger document",
		Long: "Build a normalized service model from an OpenAPI/Swagger document and " +
			"write it as JSON. Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  swagger2model build --input spec.yaml --out model.json
  swagger2model --config config.yaml build --overrides overrides.yaml --pretty`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveBuildConfig(cmd)
			if err != nil {
				return err
			}
			return buildRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the Swagger/OpenAPI document")
	flags.String("overrides", "", "Path to a YAML model override file")
	flags.String("out", "", "Output path for the model JSON (stdout when omitted)")
	flags.Bool("pretty", false, "Indent the model JSON output")

	return cmd
}

func resolveBuildConfig(cmd *cobra.Command) (*BuildConfig, error) {
	cfg := &BuildConfig{}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyBuildConfigFromFile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyBuildFlagOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}

	cfg.Input = strings.TrimSpace(cfg.Input)
	cfg.Overrides = strings.TrimSpace(cfg.Overrides)
	cfg.Out = strings.TrimSpace(cfg.Out)
	if cfg.Input == "" {
		return nil, newUsageError("build: --input is required (set via flag or config file)")
	}
	return cfg, nil
}

func applyBuildFlagOverrides(flags *pflag.FlagSet, cfg *BuildConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("overrides") {
		value, err := flags.GetString("overrides")
		if err != nil {
			return err
		}
		cfg.Overrides = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("pretty") {
		value, err := flags.GetBool("pretty")
		if err != nil {
			return err
		}
		cfg.Pretty = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}
	return nil
}

func applyBuildConfigFromFile(cfg *BuildConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "overrides":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Overrides = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "pretty":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Pretty = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}
	return nil
}

func runBuild(ctx context.Context, cfg *BuildConfig) error {
	// 1) Load the spec (file or http/https URL) with validation and conversion.
	doc, err := genspec.Load(ctx, cfg.Input)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			if se.JSONPointer != "" {
				msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
			}
			return newUsageError(msg)
		}
		return err
	}

	// 2) Load the override configuration when provided.
	ov := &override.Override{}
	if cfg.Overrides != "" {
		ov, err = override.LoadFile(cfg.Overrides)
		if err != nil {
			return newUsageError(err.Error())
		}
	}

	// 3) Build the normalized service model.
	sm, err := walker.Build(ctx, doc, ov)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "model: %d structures, %d fields, %d operations\n",
			len(sm.Structures), len(sm.Fields), len(sm.Operations))
	}

	// 4) Serialize for the emission backend.
	var out []byte
	if cfg.Pretty {
		out, err = json.MarshalIndent(sm, "", "  ")
	} else {
		out, err = json.Marshal(sm)
	}
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	out = append(out, '\n')

	if cfg.Out == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return writeFileAtomic(cfg.Out, out)
}

func writeFileAtomic(path string, data []byte) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("build: resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("build: cannot create parent directory: %v", err))
	}
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return newUsageError(fmt.Sprintf("build: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("build: cannot place file at %s: %v", abs, err))
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
