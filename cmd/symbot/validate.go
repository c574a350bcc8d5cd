package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keepmind9/symbot/internal/core"
)

var (
	validateConfig string
	validateJSON   bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Config   string   `json:"config"`
	Host     string   `json:"host,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the symbot configuration file",
	Long: `Validate the symbot configuration file without connecting to the pod.

This command checks:
  - YAML syntax
  - Required connection parameters (host, public_key, private_key, passphrase)
  - Key file readability

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile := validateConfig
		if configFile == "" {
			for _, loc := range []string{
				"config.yaml",
				filepath.Join(os.Getenv("HOME"), ".config/symbot/config.yaml"),
				"/etc/symbot/config.yaml",
			} {
				if _, err := os.Stat(loc); err == nil {
					configFile = loc
					break
				}
			}
		}

		if configFile == "" {
			fmt.Println("❌ No configuration file found")
			fmt.Println("\nSpecify a config file with --config or ensure one exists at:")
			fmt.Println("  - ./config.yaml")
			fmt.Println("  - ~/.config/symbot/config.yaml")
			fmt.Println("  - /etc/symbot/config.yaml")
			os.Exit(1)
		}

		cfg, err := core.LoadConfig(configFile)
		if err != nil {
			outputValidationResult(ValidationResult{
				Valid:  false,
				Config: configFile,
				Errors: []string{err.Error()},
			}, validateJSON)
			os.Exit(1)
		}

		result := ValidationResult{
			Valid:  true,
			Config: configFile,
			Host:   cfg.Symphony.Host,
		}
		for _, keyFile := range []string{cfg.Symphony.PublicKey, cfg.Symphony.PrivateKey} {
			if _, err := os.Stat(keyFile); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("key file not readable: %s", keyFile))
			}
		}

		outputValidationResult(result, validateJSON)
	},
}

func outputValidationResult(result ValidationResult, asJSON bool) {
	if asJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Printf("{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Println(string(output))
		return
	}

	if result.Valid {
		fmt.Printf("✅ Configuration is valid: %s\n", result.Config)
		fmt.Printf("   Host: %s\n", result.Host)
	} else {
		fmt.Printf("❌ Configuration is invalid: %s\n", result.Config)
		for _, e := range result.Errors {
			fmt.Printf("   error: %s\n", e)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("   warning: %s\n", w)
	}
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "", "Path to configuration file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}
