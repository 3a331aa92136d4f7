package models

// Category name constants for the built-in category set.
const (
	CategorySalary         = "Salary"
	CategoryTransportation = "Transportation"
	CategoryFood           = "Food"
	CategoryHousing        = "Housing"
	CategoryEntertainment  = "Entertainment"
	CategoryUtilities      = "Utilities"
	CategoryHealth         = "Health"
	CategoryEducation      = "Education"
	CategoryTravel         = "Travel"
	CategoryGifts          = "Gifts"
	CategoryShopping       = "Shopping"
	CategoryOther          = "Other"
)

// CategoryConfig represents a category entry in the categories YAML file.
// Order matters: keyword inference walks the list top to bottom and the
// first matching rule wins.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	CatchAll bool     `yaml:"catch_all,omitempty"`
}

// CategoriesConfig represents the structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
