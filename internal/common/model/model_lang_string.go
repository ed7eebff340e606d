package model

import (
	"sort"
	"strings"
)

// DefaultLanguage is used whenever a language tag is needed and none is known.
const DefaultLanguage = "en"

// LangStringSet maps a language tag to text. Keys are unique; order is irrelevant.
type LangStringSet map[string]string

// NewLangStringSet returns a set holding one entry, or an empty set when text is blank.
func NewLangStringSet(language, text string) LangStringSet {
	s := LangStringSet{}
	if strings.TrimSpace(text) != "" {
		s[language] = text
	}
	return s
}

// IsEmpty reports whether the set has no entry with non-blank text.
func (s LangStringSet) IsEmpty() bool {
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Languages returns the tags of all non-blank entries, sorted.
func (s LangStringSet) Languages() []string {
	out := make([]string, 0, len(s))
	for k, v := range s {
		if strings.TrimSpace(v) != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Preferred returns the text for language, falling back to English and then
// to the first language in sorted order.
func (s LangStringSet) Preferred(language string) string {
	if v := strings.TrimSpace(s[language]); v != "" {
		return s[language]
	}
	if v := strings.TrimSpace(s[DefaultLanguage]); v != "" {
		return s[DefaultLanguage]
	}
	for _, lang := range s.Languages() {
		return s[lang]
	}
	return ""
}

// Clone returns an independent copy. A nil set stays nil.
func (s LangStringSet) Clone() LangStringSet {
	if s == nil {
		return nil
	}
	out := make(LangStringSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
