// Package extract handles receipt and statement extraction commands
package extract

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/receipt-parser/cmd/root"
	"fjacquet/receipt-parser/internal/aiextract"
	"fjacquet/receipt-parser/internal/categorizer"
	"fjacquet/receipt-parser/internal/common"
	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/normalizer"
	"fjacquet/receipt-parser/internal/pipeline"
	"fjacquet/receipt-parser/internal/store"
	"fjacquet/receipt-parser/internal/textextract"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from a receipt or statement",
	Long: `Extract transactions from a PDF or image document using the Gemini model,
falling back to heuristic line-item extraction when no model output is available.`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	root.Log.Info("Extract command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)

	if root.SharedFlags.Input == "" {
		logger.Fatal("Input file is required (use --input)")
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		logger.Fatalf("Error loading configuration: %v", err)
	}

	content, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error reading input file: %v", err)
	}

	catStore := store.NewCategoryStore(cfg.Categories.File)
	categories, err := catStore.LoadCategories()
	if err != nil {
		logger.Fatalf("Error loading categories: %v", err)
	}

	cat := categorizer.NewCategorizer(categories, logger)
	cat.SetFallback(cfg.Categories.FallbackCategory)
	norm := normalizer.New(cat, logger)
	ai := aiextract.NewGeminiExtractor(cfg, cat.CategoryNames(), logger)
	defer ai.Close()

	p := pipeline.New(cfg, ai, textextract.NewPdftotextExtractor(), norm, logger)

	doc := pipeline.Document{
		Content:  content,
		MIMEType: detectMIMEType(root.SharedFlags.Input, content),
	}

	result, err := p.Extract(context.Background(), doc)
	if err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}
	if len(result.Transactions) == 0 {
		logger.Fatal("No transactions found in document")
	}

	root.Log.Infof("Extracted %d transactions via %s", len(result.Transactions), result.Provider)

	if err := writeOutput(result, root.SharedFlags.Output, root.SharedFlags.Format); err != nil {
		logger.Fatalf("Error writing output: %v", err)
	}
	root.Log.Info("Extraction completed successfully!")
}

// detectMIMEType resolves the document MIME type from the file extension,
// falling back to content sniffing for unknown extensions.
func detectMIMEType(path string, content []byte) string {
	if mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); mimeType != "" {
		return mimeType
	}
	return http.DetectContentType(content)
}

func writeOutput(result pipeline.Result, output, format string) error {
	if output != "" && strings.EqualFold(format, "csv") {
		return common.WriteTransactionsToCSV(result.Transactions, output)
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if strings.EqualFold(format, "json") {
		return common.WriteTransactionsJSON(result.Transactions, w)
	}
	return common.WriteTransactionsCSV(result.Transactions, w)
}
