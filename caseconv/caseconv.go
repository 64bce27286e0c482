// Package caseconv converts identifier names between the case formats
// used by class descriptions and the Go identifiers derived from them.
// Conversions are acronym-aware: common initialisms such as ID, HTTP
// and URL keep their upper-case spelling inside Pascal and camel forms.
package caseconv

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format enumerates the identifier case formats Detect can recognize.
type Format uint8

// Recognized identifier formats.
const (
	FormatUnknown Format = iota
	FormatSnake
	FormatScreamingSnake
	FormatKebab
	FormatCamel
	FormatPascal
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSnake:
		return "snake"
	case FormatScreamingSnake:
		return "screaming-snake"
	case FormatKebab:
		return "kebab"
	case FormatCamel:
		return "camel"
	case FormatPascal:
		return "pascal"
	default:
		return "unknown"
	}
}

var (
	mu       sync.RWMutex
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// ruleset returns the inflection ruleset seeded with the common
// initialisms from golint.
func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC", "MB",
		"QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO", "TCP",
		"TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM",
		"XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym registers an additional initialism to keep upper-cased in
// Pascal and camel conversions.
func AddAcronym(word string) {
	mu.Lock()
	defer mu.Unlock()
	upper := strings.ToUpper(word)
	acronyms[upper] = struct{}{}
	rules.AddAcronym(upper)
}

func isAcronym(word string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := acronyms[strings.ToUpper(word)]
	return ok
}

func isSeparator(r rune) bool { return r == '_' || r == '-' }

func pascalWords(words []string) string {
	caser := cases.Title(language.Und)
	for i, w := range words {
		if isAcronym(w) {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, "")
}

// Pascal converts names like "user_id" or "full-admin" to their
// exported Go form ("UserID", "FullAdmin").
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	return pascalWords(words)
}

// Camel converts names like "user_id" to their unexported Go form
// ("userID"). The leading word is lower-cased as-is, acronym or not.
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 1 {
		return strings.ToLower(words[0])
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

// Snake converts names like "UserID" or "getHTTPResponse" to their
// snake-case form ("user_id", "get_http_response").
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, the current
		// letter is uppercase, and the previous letter is lowercase or
		// the next letter is lowercase.
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// LowerFirst lowers the first rune of s and leaves the rest untouched.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// Singularize returns the singular form of a plural word ("tags"
// becomes "tag"). Words without a known plural form pass through.
func Singularize(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	return rules.Singularize(s)
}

// Identifiers a receiver name must not shadow in generated code.
var reservedRecv = map[string]struct{}{
	"b": {}, "bytes": {}, "context": {}, "errors": {}, "fmt": {},
	"strings": {}, "time": {}, "uuid": {},
}

// Receiver derives a short receiver name from a type name: the first
// letter of each word, extended when the name would shadow a package
// identifier used in generated code.
func Receiver(s string) (r string) {
	s = strings.Trim(s, "[]*&0123456789")
	parts := strings.Split(Snake(s), "_")
	min := len(parts[0])
	for _, w := range parts[1:] {
		if len(w) < min {
			min = len(w)
		}
	}
	for i := 1; i < min; i++ {
		r := parts[0][:i]
		for _, w := range parts[1:] {
			r += w[:i]
		}
		if _, ok := reservedRecv[r]; !ok {
			return r
		}
	}
	for _, w := range parts {
		r += w[:1]
	}
	return r
}

// Detect reports the case format of s, or FormatUnknown when the name
// mixes conventions.
func Detect(s string) Format {
	switch {
	case s == "":
		return FormatUnknown
	case strings.ContainsRune(s, '_'):
		switch s {
		case strings.ToUpper(s):
			return FormatScreamingSnake
		case strings.ToLower(s):
			return FormatSnake
		}
		return FormatUnknown
	case strings.ContainsRune(s, '-'):
		if s == strings.ToLower(s) {
			return FormatKebab
		}
		return FormatUnknown
	default:
		var hasLower, hasOther bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				// uppercase runes are valid; the arm only keeps them out of hasOther
			case unicode.IsLower(r):
				hasLower = true
			case !unicode.IsDigit(r):
				hasOther = true
			}
		}
		if hasOther {
			return FormatUnknown
		}
		first, _ := utf8.DecodeRuneInString(s)
		switch {
		case unicode.IsLower(first):
			return FormatCamel
		case unicode.IsUpper(first) && hasLower:
			return FormatPascal
		}
		return FormatUnknown
	}
}
