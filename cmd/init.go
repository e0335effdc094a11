package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eigengo/quality/internal"
	tt "github.com/eigengo/quality/internal/types"
	"github.com/eigengo/quality/lint"
)

// initCmd: qlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ruleset configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing ruleset file", zap.Error(err))
			return
		}
		fmt.Printf("Ruleset file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".qlint.yaml"
	}

	// Create a yaml file listing every rule at its default severity
	enabled := true
	config := lint.Config{
		Name:  "quality",
		Rules: map[string]tt.ConfigRule{},
	}
	for name, severity := range internal.DefaultRuleSeverities() {
		s := severity
		config.Rules[name] = tt.ConfigRule{Enabled: &enabled, Severity: &s}
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
