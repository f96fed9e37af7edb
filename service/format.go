package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
)

// FormatDocument expands a contract's parameterized sections into the
// formal-document view by substituting every {paramName} placeholder with
// its submitted value. Sections without parameters pass their content
// through unchanged. Deterministic and side-effect free; repeated calls on
// the same contract snapshot produce identical output.
func FormatDocument(contract *model.Contract, clientName, freelancerName string) *model.FormalDocument {
	doc := &model.FormalDocument{
		ID:         contract.ID,
		Title:      contract.Title,
		Client:     clientName,
		Freelancer: freelancerName,
		CreatedAt:  contract.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  contract.UpdatedAt.Format(time.RFC3339),
	}

	for _, sec := range contract.Sections {
		doc.Sections = append(doc.Sections, model.DocumentSection{
			Title:            sec.Title,
			Content:          sec.Content,
			FormattedContent: substitute(sec.Content, sec.Parameters),
		})
	}
	return doc
}

// substitute replaces every occurrence of each {key} placeholder.
func substitute(content string, params map[string]any) string {
	if len(params) == 0 {
		return content
	}
	for key, value := range params {
		content = strings.ReplaceAll(content, "{"+key+"}", stringify(value))
	}
	return content
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0".
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
