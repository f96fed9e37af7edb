package model

// Parameter types supported by contract templates.
const (
	ParamNumber = "number"
	ParamDate   = "date"
	ParamSelect = "select"
	ParamString = "string"
)

// ParamDef describes one editable parameter of a template section.
type ParamDef struct {
	Type       string   `yaml:"type" json:"type"`
	Required   bool     `yaml:"required" json:"required"`
	Min        *float64 `yaml:"min" json:"min,omitempty"`
	Max        *float64 `yaml:"max" json:"max,omitempty"`
	Options    []string `yaml:"options" json:"options,omitempty"`
	Default    any      `yaml:"default" json:"default,omitempty"`
	Validation string   `yaml:"validation" json:"validation,omitempty"` // e.g. "after:startDate"
}

// TemplateSection is one titled block of a contract template. Content may
// embed {paramName} placeholders resolved from the submitted parameters.
type TemplateSection struct {
	Title      string              `yaml:"title" json:"title"`
	Content    string              `yaml:"content" json:"content"`
	Editable   bool                `yaml:"editable" json:"editable"`
	Parameters map[string]ParamDef `yaml:"parameters" json:"parameterDefinitions,omitempty"`
}

// ContractTemplate is process-wide configuration loaded at startup; it is
// never persisted per-contract.
type ContractTemplate struct {
	Title    string            `yaml:"title" json:"title"`
	Sections []TemplateSection `yaml:"sections" json:"sections"`
}

// SectionByTitle returns the template section with the given title, or nil.
func (t *ContractTemplate) SectionByTitle(title string) *TemplateSection {
	for i := range t.Sections {
		if t.Sections[i].Title == title {
			return &t.Sections[i]
		}
	}
	return nil
}

// SubmittedSection is a client-chosen copy of a template section with
// concrete parameter values.
type SubmittedSection struct {
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// FieldError is one validation failure; the API returns these as a 400 array.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DocumentSection is one section of a formal document with placeholders
// resolved.
type DocumentSection struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	FormattedContent string `json:"formattedContent"`
}

// FormalDocument is the fully substituted, human-readable rendering of a
// contract's sections. Derived on demand, never persisted.
type FormalDocument struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Client     string            `json:"client"`
	Freelancer string            `json:"freelancer"`
	Sections   []DocumentSection `json:"sections"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}
