package service

import "github.com/Nabz863/group17-freelance-sd-sub000/model"

// FillDefaults returns a copy of the submitted sections with template
// defaults injected for any editable-section parameter the submission left
// out. Non-editable sections and parameters without declared defaults pass
// through unchanged. Pure function; the input is never mutated.
func FillDefaults(sections []model.SubmittedSection, tmpl *model.ContractTemplate) []model.SubmittedSection {
	out := make([]model.SubmittedSection, len(sections))
	for i, sub := range sections {
		out[i] = sub
		if sub.Parameters != nil {
			params := make(map[string]any, len(sub.Parameters))
			for k, v := range sub.Parameters {
				params[k] = v
			}
			out[i].Parameters = params
		}

		ts := tmpl.SectionByTitle(sub.Title)
		if ts == nil || !ts.Editable || len(ts.Parameters) == 0 {
			continue
		}

		for name, def := range ts.Parameters {
			if def.Default == nil {
				continue
			}
			if v, present := out[i].Parameters[name]; present && !isEmpty(v) {
				continue
			}
			if out[i].Parameters == nil {
				out[i].Parameters = make(map[string]any)
			}
			out[i].Parameters[name] = def.Default
		}
	}
	return out
}
