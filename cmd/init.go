package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/fisherbryan/boolint/internal/types"
	"github.com/fisherbryan/boolint/lint"
)

// initCmd: boolint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = ".boolint.yaml"
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".boolint.yaml"
	}

	ignoreConstants := true
	config := lint.Config{
		Name: "boolint",
		Rules: map[string]tt.ConfigRule{
			"pointless-bool": {
				Severity:        tt.SeverityWarning,
				IgnoreConstants: &ignoreConstants,
			},
			"constant-condition": {
				Severity: tt.SeverityWarning,
			},
		},
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
	if err != nil {
		return err
	}

	return nil
}
