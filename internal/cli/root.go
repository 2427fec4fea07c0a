package cli

import (
	"fmt"
	"os"

	"github.com/dkosarev/claimtriage/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimtriage",
	Short: "claimtriage - Deterministic FNOL claim triage",
	Long: `claimtriage extracts structured fields from insurance First Notice of
Loss (FNOL) documents, checks for missing mandatory data, classifies the
claim, and routes it through a fixed priority-ordered rule set.

Every decision is deterministic and explainable: the same document always
produces the same route, and the reasoning string states exactly which rule
fired. When the engine cannot route safely (missing mandatory fields,
missing damage estimate), it defaults to Manual Review rather than guessing.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for claimtriage.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimtriage v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimtriage/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimtriage")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMTRIAGE_*
	viper.SetEnvPrefix("CLAIMTRIAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the process configuration: defaults overlaid with the
// config file and environment. Flag overrides and validation happen in the
// individual commands.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// finalizeConfig normalizes keyword casing and fails fast on configuration
// that would make routing meaningless. Must run before any claim is
// processed.
func finalizeConfig(cfg *model.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configureLLM fills in the LLM settings from flags and environment.
// The API key is environment-only and never read from the config file.
func configureLLM(cfg *model.Config, provider, llmModel string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = llmModel

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
