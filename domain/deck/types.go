package deck

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageKind selects the interactive widget rendered under a page's text.
type PageKind string

const (
	KindStatic PageKind = "static"
	KindEDF    PageKind = "edf"
	KindDemo   PageKind = "demo"
)

// IsValid reports whether the kind is one the shell knows how to render.
func (k PageKind) IsValid() bool {
	switch k {
	case KindStatic, KindEDF, KindDemo:
		return true
	}
	return false
}

// PageDescriptor identifies one page in the presentation.
type PageDescriptor struct {
	Ordinal      int      `json:"ordinal"`
	Identifier   string   `json:"identifier"`
	DisplayTitle string   `json:"display_title"`
	Kind         PageKind `json:"kind"`
	Source       string   `json:"source,omitempty"`
}

// Number is the 1-based position shown to viewers.
func (p PageDescriptor) Number() int {
	return p.Ordinal + 1
}

var ordinalPrefix = regexp.MustCompile(`^\d+_`)

var titleCaser = cases.Title(language.English, cases.NoLower)

// DeriveTitle turns an identifier such as "4_R_Implementation" into "R Implementation".
// A leading ordinal prefix is dropped, separators become spaces and each word gets an
// upper-case first letter; existing capitals (ANCOVA, SAS) are kept.
func DeriveTitle(identifier string) string {
	trimmed := ordinalPrefix.ReplaceAllString(strings.TrimSpace(identifier), "")
	words := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(words) == 0 {
		return strings.TrimSpace(identifier)
	}
	return titleCaser.String(strings.Join(words, " "))
}
