// Package categorize handles ad-hoc transaction categorization commands
package categorize

import (
	"github.com/spf13/cobra"

	"fjacquet/receipt-parser/cmd/root"
	"fjacquet/receipt-parser/internal/categorizer"
	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/store"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long:  `Categorize a transaction description using the configured keyword rules.`,
	Run:   categorizeFunc,
}

func init() {
	// Categorize command flags
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	root.Log.Info("Categorize command called")

	cfg, err := config.InitializeConfig()
	if err != nil {
		logger.Fatalf("Error loading configuration: %v", err)
	}

	catStore := store.NewCategoryStore(cfg.Categories.File)
	categories, err := catStore.LoadCategories()
	if err != nil {
		logger.Fatalf("Error loading categories: %v", err)
	}

	cat := categorizer.NewCategorizer(categories, logger)
	cat.SetFallback(cfg.Categories.FallbackCategory)
	category := cat.Infer(root.Description)
	root.Log.Infof("Category: %s", category)
}
