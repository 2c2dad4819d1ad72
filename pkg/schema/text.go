package schema

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags returns the text content of an HTML fragment: tags removed,
// script and style bodies dropped, entities decoded, surrounding whitespace
// trimmed.
func StripTags(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	raw := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if isRawTextTag(z) {
				raw++
			}
		case html.EndTagToken:
			if isRawTextTag(z) && raw > 0 {
				raw--
			}
		case html.TextToken:
			if raw == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
