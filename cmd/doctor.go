package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/conneroisu/basset/internal/config"
)

// doctorCheck is one diagnostic result.
type doctorCheck struct {
	Name       string `json:"name" yaml:"name"`
	Status     string `json:"status" yaml:"status"` // "ok", "warning", "error"
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and storage problems",
	Long: `Run diagnostic checks against the current setup: config file syntax,
resolved configuration validity, storage disk writability and cache-map
directory writability.

Examples:
  basset doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := []doctorCheck{
		checkConfigFile(),
		checkConfigValues(),
		checkStorageWritable(),
		checkCacheMapWritable(),
	}

	failed := false
	for _, check := range checks {
		symbol := "✓"
		switch check.Status {
		case "warning":
			symbol = "!"
		case "error":
			symbol = "✗"
			failed = true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-22s %s\n", symbol, check.Name, check.Message)
		if check.Suggestion != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", check.Suggestion)
		}
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}

	return nil
}

// checkConfigFile parses the config file as raw YAML, catching syntax
// errors viper would otherwise swallow.
func checkConfigFile() doctorCheck {
	file := viper.ConfigFileUsed()
	if file == "" {
		return doctorCheck{
			Name:       "config file",
			Status:     "warning",
			Message:    "no config file found, using defaults",
			Suggestion: "create .basset.yml to pin storage and cache-map settings",
		}
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return doctorCheck{Name: "config file", Status: "error", Message: err.Error()}
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return doctorCheck{
			Name:       "config file",
			Status:     "error",
			Message:    fmt.Sprintf("%s is not valid YAML: %v", file, err),
			Suggestion: "fix the syntax error or remove the file to fall back to defaults",
		}
	}

	return doctorCheck{Name: "config file", Status: "ok", Message: file}
}

func checkConfigValues() doctorCheck {
	cfg, err := config.Load()
	if err != nil {
		return doctorCheck{Name: "configuration", Status: "error", Message: err.Error()}
	}

	return doctorCheck{
		Name:    "configuration",
		Status:  "ok",
		Message: fmt.Sprintf("disk %s, base path %s", cfg.Storage.Root, cfg.Assets.Path),
	}
}

func checkStorageWritable() doctorCheck {
	cfg, err := config.Load()
	if err != nil {
		return doctorCheck{Name: "storage disk", Status: "error", Message: err.Error()}
	}

	return writableCheck("storage disk", filepath.Join(cfg.Storage.Root, cfg.Assets.Path))
}

func checkCacheMapWritable() doctorCheck {
	cfg, err := config.Load()
	if err != nil {
		return doctorCheck{Name: "cache map", Status: "error", Message: err.Error()}
	}

	if !cfg.CacheMap.Enabled {
		return doctorCheck{Name: "cache map", Status: "warning", Message: "disabled"}
	}

	return writableCheck("cache map", filepath.Join(cfg.CacheMap.Root, filepath.Dir(cfg.CacheMap.Path)))
}

// writableCheck probes a directory with a throwaway file.
func writableCheck(name, dir string) doctorCheck {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{
			Name:       name,
			Status:     "error",
			Message:    fmt.Sprintf("cannot create %s: %v", dir, err),
			Suggestion: "check directory permissions",
		}
	}

	probe := filepath.Join(dir, ".basset-doctor")
	if err := os.WriteFile(probe, []byte("probe"), 0o644); err != nil {
		return doctorCheck{
			Name:       name,
			Status:     "error",
			Message:    fmt.Sprintf("%s is not writable: %v", dir, err),
			Suggestion: "check directory permissions",
		}
	}
	os.Remove(probe)

	return doctorCheck{Name: name, Status: "ok", Message: dir}
}
