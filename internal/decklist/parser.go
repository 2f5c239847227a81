package decklist

import (
	"regexp"
	"strings"

	"deblinger/internal/resolver"
	"deblinger/internal/textutil"
)

// Field separators include Unicode spaces such as the NBSP left by copying
// from web pages. Names may contain anything but a line terminator.
const (
	fieldSpace = `[\t\n\v\f\r \p{Zs}\x{2028}\x{2029}\x{FEFF}]+`
	nameChars  = `[^\n\r\x{2028}\x{2029}]+?`
)

// cardLineRe matches "<qty> <name> <SET> <NUM>". The name is non-greedy so the
// set code and number bind to the last two tokens.
var cardLineRe = regexp.MustCompile(`^(\d+)` + fieldSpace + `(` + nameChars + `)` + fieldSpace + `([A-Z0-9-]+)` + fieldSpace + `(\d+)$`)

// sectionMarkers are checked in order; the first marker found in a line wins.
var sectionMarkers = []struct {
	marker  string
	section resolver.CardType
}{
	{"Pokémon:", resolver.Pokemon},
	{"Pokemon:", resolver.Pokemon},
	{"Trainer:", resolver.Trainer},
	{"Energy:", resolver.Energy},
}

// ParseContext carries the section state across the lines of one decklist.
type ParseContext struct {
	Section resolver.CardType
}

// NewParseContext returns a context positioned in the Pokémon section.
func NewParseContext() *ParseContext {
	return &ParseContext{Section: resolver.Pokemon}
}

// CardRef is a parsed card line.
type CardRef struct {
	// Quantity is kept as written; "04" stays "04".
	Quantity string
	Name     string
	Set      string
	Number   string
	// Type is the section active when the line was read.
	Type resolver.CardType
	// Original is the unmodified line text.
	Original string
}

// Line is one decklist line, either a card or pass-through text.
type Line struct {
	Raw  string
	Card *CardRef
}

// IsCard reports whether the line parsed as a card reference.
func (l Line) IsCard() bool {
	return l.Card != nil
}

// ParseLine classifies a single line. Section headers update ctx and, like
// blank or unrecognised lines, are returned as pass-through.
func ParseLine(line string, ctx *ParseContext) Line {
	if textutil.IsBlank(line) {
		return Line{Raw: line}
	}

	for _, sm := range sectionMarkers {
		if strings.Contains(line, sm.marker) {
			ctx.Section = sm.section
			return Line{Raw: line}
		}
	}

	m := cardLineRe.FindStringSubmatch(line)
	if m == nil {
		return Line{Raw: line}
	}

	return Line{
		Raw: line,
		Card: &CardRef{
			Quantity: m[1],
			Name:     m[2],
			Set:      m[3],
			Number:   m[4],
			Type:     ctx.Section,
			Original: line,
		},
	}
}

// ParseLines splits a decklist on "\n" and parses every line with a fresh context.
func ParseLines(decklist string) []Line {
	ctx := NewParseContext()
	raw := strings.Split(decklist, "\n")

	lines := make([]Line, len(raw))
	for i, l := range raw {
		lines[i] = ParseLine(l, ctx)
	}
	return lines
}
