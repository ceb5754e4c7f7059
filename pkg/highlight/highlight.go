// Package highlight wraps the chroma registry that backs the language and style
// choices of stored scripts.
package highlight

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// IsLanguage reports whether name is a lexer name or alias known to the registry.
func IsLanguage(name string) bool {
	if name == "" {
		return false
	}
	return lexers.Get(name) != nil
}

// IsStyle reports whether name is a registered style.
func IsStyle(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// Languages returns the lexer aliases, sorted.
func Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lexers.GlobalLexerRegistry.Lexers {
		for _, alias := range l.Config().Aliases {
			if !seen[alias] {
				seen[alias] = true
				out = append(out, alias)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Styles returns the registered style names, sorted.
func Styles() []string {
	return styles.Names()
}

// HTML renders code as a standalone HTML document.
func HTML(code, language, style string, linenos bool) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("unknown language %q", language)
	}
	lexer = chroma.Coalesce(lexer)

	st, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("unknown style %q", style)
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s code: %w", language, err)
	}

	formatter := html.New(html.Standalone(true), html.WithLineNumbers(linenos))
	var buf bytes.Buffer
	if err := formatter.Format(&buf, st, iterator); err != nil {
		return "", fmt.Errorf("failed to format code: %w", err)
	}
	return buf.String(), nil
}
