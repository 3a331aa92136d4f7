// Package store provides functionality for loading the category enumeration.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"

	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStore loads the ordered category list consumed by the categorizer
// and the normalization pipeline. The list is read once and treated as
// read-only afterwards.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a new store for category data. An empty file name
// means the built-in default set is used.
func NewCategoryStore(categoriesFile string) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/receipt-parser/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "receipt-parser", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories returns the ordered category list. When no file is
// configured, or the configured file cannot be found, the built-in default
// set is returned; a malformed file is an error.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if s.CategoriesFile == "" {
		return DefaultCategories(), nil
	}

	path, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		log.WithField("file", s.CategoriesFile).Warn("Categories file not found, using built-in categories")
		return DefaultCategories(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read categories file %s: %w", path, err)
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse categories file %s: %w", path, err)
	}

	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	log.WithField("count", len(cfg.Categories)).Debug("Loaded categories from YAML file")
	return cfg.Categories, nil
}

// DefaultCategories returns the built-in ordered category set with its
// keyword inference rules. Order matters: inference walks the list top to
// bottom and the first matching keyword wins.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategorySalary, Keywords: []string{"salary", "payroll", "wages", "paycheck"}},
		{Name: models.CategoryTransportation, Keywords: []string{"uber", "lyft", "taxi", "bus", "train", "metro", "fuel", "gas station", "parking", "toll", "transport"}},
		{Name: models.CategoryFood, Keywords: []string{"restaurant", "cafe", "coffee", "grocery", "groceries", "dining", "pizza", "bakery", "takeaway", "food"}},
		{Name: models.CategoryHousing, Keywords: []string{"rent", "lease", "mortgage"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"subscription", "streaming", "netflix", "spotify", "cinema", "movie", "concert", "game"}},
		{Name: models.CategoryUtilities, Keywords: []string{"electric", "electricity", "water", "internet", "phone", "utility", "broadband", "bill"}},
		{Name: models.CategoryHealth, Keywords: []string{"health", "fitness", "gym", "pharmacy", "medical", "doctor", "dental", "clinic"}},
		{Name: models.CategoryEducation, Keywords: []string{"tuition", "school", "course", "university", "textbook", "education"}},
		{Name: models.CategoryTravel, Keywords: []string{"hotel", "flight", "airline", "airbnb", "booking", "travel"}},
		{Name: models.CategoryGifts, Keywords: []string{"gift", "donation", "charity"}},
		{Name: models.CategoryShopping, Keywords: []string{"shop", "store", "amazon", "retail", "mall", "clothing", "electronics"}},
		{Name: models.CategoryOther, CatchAll: true},
	}
}
