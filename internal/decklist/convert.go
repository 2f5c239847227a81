package decklist

import (
	"errors"
	"strings"

	"deblinger/internal/resolver"
	"deblinger/internal/textutil"

	"github.com/rs/zerolog/log"
)

// ErrTableNotLoaded is returned when a conversion is attempted without reprint data.
var ErrTableNotLoaded = errors.New("reprint data not loaded")

// TableNotLoadedMessage replaces the output of a conversion that had no reprint data.
const TableNotLoadedMessage = "Error: Reprint data not loaded. Please load a reprint table and try again."

// CardResolver resolves card printings. *resolver.Resolver implements it.
type CardResolver interface {
	Explain(name, set, number string, cardType resolver.CardType) resolver.Resolution
	Ready() bool
}

// Change records one card line whose printing was rewritten.
type Change struct {
	// Line is the 1-based line number in the decklist.
	Line int           `json:"line"`
	Name string        `json:"name"`
	From string        `json:"from"`
	To   string        `json:"to"`
	Rule resolver.Rule `json:"rule"`
}

// Result is the output of a decklist conversion.
type Result struct {
	Text    string   `json:"decklist"`
	Cards   int      `json:"cards"`
	Changes []Change `json:"changes"`
}

// Converter rewrites decklists to first printings.
type Converter struct {
	resolver CardResolver
}

// NewConverter creates a converter backed by r.
func NewConverter(r CardResolver) *Converter {
	return &Converter{resolver: r}
}

// Convert rewrites every card line of decklist to its first printing. Line
// count and order are preserved and non-card lines are copied unchanged.
func (c *Converter) Convert(decklist string) (*Result, error) {
	if c.resolver == nil || !c.resolver.Ready() {
		log.Error().Msg("Reprint data not loaded or empty")
		return nil, ErrTableNotLoaded
	}

	lines := ParseLines(decklist)
	out := make([]string, len(lines))
	result := &Result{Changes: []Change{}}

	for i, l := range lines {
		if !l.IsCard() {
			out[i] = l.Raw
			continue
		}

		card := l.Card
		result.Cards++

		res := c.resolver.Explain(card.Name, card.Set, card.Number, card.Type)
		out[i] = card.Quantity + " " + card.Name + " " + res.Set + " " + res.Number

		if res.Changed(card.Set, card.Number) {
			result.Changes = append(result.Changes, Change{
				Line: i + 1,
				Name: card.Name,
				From: card.Set + " " + card.Number,
				To:   res.ID(),
				Rule: res.Rule,
			})
			log.Debug().
				Int("line", i+1).
				Str("original", textutil.Truncate(card.Original, 60)).
				Str("printing", res.ID()).
				Msg("Card rewritten")
		}
	}

	result.Text = strings.Join(out, "\n")

	log.Info().
		Str("decklist", textutil.Hash(decklist)[:12]).
		Int("lines", len(lines)).
		Int("cards", result.Cards).
		Int("rewritten", len(result.Changes)).
		Msg("Decklist converted")

	return result, nil
}

// ConvertText is the fail-soft boundary used by the CLI, HTTP and MCP
// surfaces: on failure it returns an explanatory message in place of the
// converted decklist.
func (c *Converter) ConvertText(decklist string) string {
	result, err := c.Convert(decklist)
	if err != nil {
		if errors.Is(err, ErrTableNotLoaded) {
			return TableNotLoadedMessage
		}
		return "Error: " + err.Error()
	}
	return result.Text
}
