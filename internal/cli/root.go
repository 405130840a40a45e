package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"noweb/config"
	"noweb/internal/adapter/dialect"
)

var (
	cfgFile     string
	cfg         *config.Config
	rootDir     string
	dialectName string
	logLevel    string
	dlct        *dialect.Dialect
)

var rootCmd = &cobra.Command{
	Use:   "noweb",
	Short: "Extract code chunks from literate programming documents",
	Long: `noweb extracts a named chunk of code from a literate document and expands
every chunk it references, preserving relative indentation.

Two dialects are supported:
  fenced  *name* on its own line followed by a fenced code block; #*name*# references
  angle   <<name>>= opens a chunk, @ closes it; <<name>> references

Example usage:
  noweb tangle prog.md -R main -o main.py -x   # Extract chunk "main" to an executable file
  noweb list prog.md --roots                   # Show chunks nothing else references
  noweb check docs/                            # Find references to undefined chunks
  noweb weave prog.md -o prog.html             # Render the document as HTML`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
			if err == nil {
				err = cfg.ApplyEnv("")
			}
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dialectName != "" {
			cfg.Dialect.Name = dialectName
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		setupLogging(cmd.ErrOrStderr(), cfg.Logging)

		dlct, err = cfg.BuildDialect()
		if err != nil {
			return fmt.Errorf("failed to load dialect: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./noweb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "document dialect: fenced, angle or custom (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// GetDialect returns the dialect compiled for this invocation.
func GetDialect() *dialect.Dialect {
	return dlct
}
