package entities

// Category labels a group of FAQ entries.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryServices    Category = "Services"
	CategoryScheduling  Category = "Scheduling"
	CategoryPayments    Category = "Payments"
	CategoryExperience  Category = "Experience"
	CategoryGroupEvents Category = "Group & Events"
	CategoryPolicies    Category = "Policies"
	CategoryTech        Category = "Tech"
)

// KnownCategories lists every category an entry may belong to, in the order
// the category picker shows them. CategoryAll is not part of it.
var KnownCategories = []Category{
	CategoryServices,
	CategoryScheduling,
	CategoryPayments,
	CategoryExperience,
	CategoryGroupEvents,
	CategoryPolicies,
	CategoryTech,
}

// IsKnown reports whether c is an entry category.
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// FaqEntry is a single question/answer pair in the FAQ catalog.
type FaqEntry struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Category Category `json:"category" yaml:"category"`
}

// FaqSection is one rendered bucket of the grouped FAQ view.
type FaqSection struct {
	Category Category   `json:"category"`
	Entries  []FaqEntry `json:"entries"`
}

// FaqSearchResult is the response of a catalog query.
type FaqSearchResult struct {
	Query    string       `json:"query"`
	Category Category     `json:"category"`
	Total    int          `json:"total"`
	Entries  []FaqEntry   `json:"entries"`
	Sections []FaqSection `json:"sections"`
}

// CategorySummary is a category chip with the number of entries behind it.
type CategorySummary struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}
