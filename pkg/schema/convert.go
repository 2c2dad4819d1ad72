package schema

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// schemaOrgPrefix turns bare enumeration codes into schema.org URIs.
const schemaOrgPrefix = types.SchemaOrgContext + "/"

// schemaURI maps a stored code such as "InStock" to
// "https://schema.org/InStock". Values that are already absolute URIs pass
// through.
func schemaURI(code string) any {
	if strings.HasPrefix(code, "http://") || strings.HasPrefix(code, "https://") {
		return code
	}
	return schemaOrgPrefix + code
}

// lines splits newline-separated metadata into trimmed, non-blank entries.
func lines(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// lineList converts newline-separated metadata into a JSON array of strings.
func lineList(raw string) any {
	entries := lines(raw)
	out := make([]any, len(entries))
	for i, entry := range entries {
		out[i] = entry
	}
	return out
}

// howToSteps converts one instruction per line into HowToStep objects.
func howToSteps(raw string) any {
	entries := lines(raw)
	out := make([]any, len(entries))
	for i, entry := range entries {
		out[i] = types.NewTypedDocument("HowToStep").Set("text", entry)
	}
	return out
}

// faqPair is one stored question and answer.
type faqPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// faqQuestions converts stored FAQ items into Question objects. The metadata
// is either a JSON array of {"question","answer"} objects or one
// "question|answer" pair per line. Pairs missing either side are dropped and
// malformed JSON yields nothing.
func faqQuestions(raw string) any {
	var pairs []faqPair
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
			return nil
		}
	} else {
		for _, line := range lines(raw) {
			q, a, ok := strings.Cut(line, "|")
			if !ok {
				continue
			}
			pairs = append(pairs, faqPair{Question: q, Answer: a})
		}
	}

	var out []any
	for _, p := range pairs {
		q := strings.TrimSpace(p.Question)
		a := strings.TrimSpace(p.Answer)
		if q == "" || a == "" {
			continue
		}
		answer := types.NewTypedDocument("Answer").Set("text", a)
		out = append(out, types.NewTypedDocument("Question").
			Set("name", q).
			Set("acceptedAnswer", answer))
	}
	return out
}

// firstCategory is the fallback for category-like properties.
func firstCategory(e *types.Entity) string {
	return e.FirstCategory()
}

// entityTitle is the fallback for properties that mirror the title.
func entityTitle(e *types.Entity) string {
	return e.Title
}
