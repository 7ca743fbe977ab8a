// Package langdetect guesses the language of a fenced code block that has no
// info string, so the block can still carry a lang-<id> class.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates limits the classifier to languages commonly fenced in Markdown.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// pattern is a cheap textual signal checked before the classifier.
type pattern struct {
	lang  string
	match func(text, trimmed string) bool
}

// patterns are tried in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(text, _ string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__") ||
			(strings.Contains(text, "from ") && strings.Contains(text, "import ") && !strings.Contains(text, "import ("))
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<body>")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && !strings.Contains(trimmed, ";")
	}},
	{"dockerfile", func(text, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			(strings.Contains(text, "WORKDIR ") && strings.Contains(text, "COPY "))
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(text, _ string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(text, _ string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ")
	}},
	{"yaml", func(text, _ string) bool {
		return yamlKeys(text) >= 2
	}},
}

// Detect returns the language id of a code snippet, or "" when no guess is
// safe. Shebangs are trusted first, then textual patterns, then the go-enry
// classifier when it is confident.
func Detect(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe {
		return Normalize(lang)
	}

	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(content), candidates); safe && lang != "" {
		return Normalize(lang)
	}
	return ""
}

// Normalize maps a go-enry language name or a common alias such as "golang"
// or "sh" to the lower-case id used in lang-<id> classes. Unknown names are
// lower-cased.
func Normalize(name string) string {
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		name = lang
	}
	if name == "Shell" {
		return "bash"
	}
	return strings.ToLower(name)
}

// yamlKeys counts "key: value" lines and root list items.
func yamlKeys(text string) int {
	count := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count
}
