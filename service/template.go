package service

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"gopkg.in/yaml.v3"
)

// TemplateStore holds the contract template loaded at startup. Immutable
// after load.
type TemplateStore struct {
	tmpl *model.ContractTemplate
}

// NewTemplateStore loads the template from the given YAML file, or falls
// back to the built-in default template when path is empty.
func NewTemplateStore(path string) (*TemplateStore, error) {
	if path == "" {
		slog.Info("using built-in contract template")
		return &TemplateStore{tmpl: defaultTemplate()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var tmpl model.ContractTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}
	if tmpl.Title == "" || len(tmpl.Sections) == 0 {
		return nil, fmt.Errorf("template %q is missing a title or sections", path)
	}

	slog.Info("contract template loaded", "path", path, "sections", len(tmpl.Sections))
	return &TemplateStore{tmpl: &tmpl}, nil
}

// Default returns the active contract template.
func (s *TemplateStore) Default() *model.ContractTemplate {
	return s.tmpl
}

func floatPtr(f float64) *float64 { return &f }

func defaultTemplate() *model.ContractTemplate {
	return &model.ContractTemplate{
		Title: "Freelance Service Agreement",
		Sections: []model.TemplateSection{
			{
				Title: "Parties",
				Content: "This agreement is entered into between the Client and the " +
					"Freelancer identified on the contract record. Both parties agree " +
					"to the terms set out in the sections below.",
			},
			{
				Title:    "Scope of Work",
				Editable: true,
				Content: "The Freelancer will perform the following work: {projectDescription} " +
					"The expected effort is {hoursPerWeek} hours per week, with up to " +
					"{revisionRounds} rounds of revisions included.",
				Parameters: map[string]model.ParamDef{
					"projectDescription": {
						Type:    model.ParamString,
						Default: "the work agreed between the parties",
					},
					"hoursPerWeek": {
						Type:    model.ParamNumber,
						Min:     floatPtr(1),
						Max:     floatPtr(60),
						Default: 20,
					},
					"revisionRounds": {
						Type:    model.ParamSelect,
						Options: []string{"1", "2", "3", "unlimited"},
						Default: "2",
					},
				},
			},
			{
				Title:    "Payment Terms",
				Editable: true,
				Content: "Payment is due on acceptance of each agreed milestone. Invoices " +
					"are payable within 14 days of receipt.",
			},
			{
				Title:    "Timeline",
				Editable: true,
				Content: "Work begins once this contract is accepted by the Freelancer and " +
					"continues until all milestones are delivered and approved.",
			},
			{
				Title: "Confidentiality",
				Content: "Each party agrees to keep confidential any non-public information " +
					"disclosed by the other party in connection with this agreement.",
			},
			{
				Title: "Termination",
				Content: "Either party may terminate this agreement with written notice. " +
					"Work completed and approved before termination remains payable.",
			},
		},
	}
}
