package ai

import "sort"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ModelInfo describes a known inference model.
type ModelInfo struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ContextTokens int    `json:"context_tokens"`
}

var catalog = map[string]ModelInfo{
	"gemini-2.0-flash": {
		Name:          "gemini-2.0-flash",
		Description:   "Fast general-purpose model, good default for data analysis",
		ContextTokens: 1048576,
	},
	"gemini-2.0-flash-lite": {
		Name:          "gemini-2.0-flash-lite",
		Description:   "Cheapest option; fine for type classification and short summaries",
		ContextTokens: 1048576,
	},
	"gemini-1.5-pro": {
		Name:          "gemini-1.5-pro",
		Description:   "Higher quality narrative reports, slower and pricier",
		ContextTokens: 2097152,
	},
}

// Catalog returns known models sorted by name.
func Catalog() []ModelInfo {
	out := make([]ModelInfo, 0, len(catalog))
	for _, m := range catalog {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KnownModel reports whether the named model is in the catalog. Unknown
// models are still sent to the API; the catalog is advisory.
func KnownModel(name string) bool {
	_, ok := catalog[name]
	return ok
}
