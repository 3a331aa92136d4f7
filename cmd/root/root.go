// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/receipt-parser/internal/common"
	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/store"
	"fjacquet/receipt-parser/internal/textextract"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "receipt-parser",
		Short: "A CLI tool to extract transactions from receipts and bank statements.",
		Long: `receipt-parser is a CLI tool that extracts transactions from receipt and
statement documents (PDF or image) using the Gemini model, with a heuristic
line-item fallback when no model output is available.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to receipt-parser!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all packages
			adapter := logging.NewLogrusAdapterFromLogger(Log)
			store.SetLogger(adapter)
			textextract.SetLogger(adapter)
			common.SetLogger(adapter)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific categorize command flags
	Description string
)

// GetLogrusAdapter returns the shared logger wrapped in the logging interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "csv", "Output format: csv or json")
}
