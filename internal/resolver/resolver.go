package resolver

import (
	"fmt"
	"strings"

	"deblinger/internal/reprint"

	"github.com/rs/zerolog/log"
)

// CardType is the decklist section a card was listed under.
type CardType string

const (
	Pokemon CardType = "pokemon"
	Trainer CardType = "trainer"
	Energy  CardType = "energy"
)

// ParseCardType parses a section name case-insensitively.
func ParseCardType(s string) (CardType, error) {
	switch t := CardType(strings.ToLower(s)); t {
	case Pokemon, Trainer, Energy:
		return t, nil
	default:
		return "", fmt.Errorf("unknown card type %q", s)
	}
}

// Rule names the step that decided a resolution.
type Rule string

const (
	RuleEnergyOverride Rule = "energy-override"
	RuleTrainerName    Rule = "trainer-name"
	RuleReprint        Rule = "reprint"
	RuleFirstPrinting  Rule = "first-printing"
	RuleUnmatched      Rule = "unmatched"
)

// Resolution is a resolved printing together with the rule that produced it.
type Resolution struct {
	reprint.Printing
	Rule Rule `json:"rule"`
	// Group is the matched group name, empty for energy overrides and misses.
	Group string `json:"group,omitempty"`
}

// Changed reports whether the resolution differs from the given input.
func (r Resolution) Changed(set, number string) bool {
	return r.Set != set || r.Number != number
}

// Resolver maps any printing of a card to its canonical first printing.
type Resolver struct {
	table *reprint.Table
}

// New creates a resolver over table. A nil table is allowed; every lookup
// other than an energy override then returns its input.
func New(table *reprint.Table) *Resolver {
	return &Resolver{table: table}
}

// Table returns the underlying reprint table.
func (r *Resolver) Table() *reprint.Table {
	return r.table
}

// Resolve returns the first printing to use for a card.
func (r *Resolver) Resolve(name, set, number string, cardType CardType) reprint.Printing {
	return r.Explain(name, set, number, cardType).Printing
}

// Explain resolves a card and reports which rule decided it. It never fails:
// anything unmatched comes back unchanged.
func (r *Resolver) Explain(name, set, number string, cardType CardType) Resolution {
	original := reprint.Printing{Set: set, Number: number}

	if p, ok := LookupEnergy(name); ok {
		log.Debug().Str("card", name).Str("printing", p.ID()).Msg("Using basic energy exception")
		return Resolution{Printing: p, Rule: RuleEnergyOverride}
	}

	// Trainers are matched by name only; same-named trainers collapse into
	// the first group in table order.
	if cardType == Trainer {
		g, ok := r.table.ByName(name)
		if !ok {
			log.Debug().Str("card", name).Str("printing", original.ID()).Msg("No name match for trainer, keeping original")
			return Resolution{Printing: original, Rule: RuleUnmatched}
		}
		p := reprint.SplitID(g.FirstPrinting.ID)
		log.Debug().Str("card", name).Str("printing", p.ID()).Msg("Trainer matched by name")
		return Resolution{Printing: p, Rule: RuleTrainerName, Group: g.Name}
	}

	cardID := set + " " + number
	m, ok := r.table.ByID(cardID)
	switch {
	case !ok:
		log.Debug().Str("card", name).Str("printing", cardID).Msg("No id match, keeping original")
		return Resolution{Printing: original, Rule: RuleUnmatched}
	case m.IsReprint:
		p := reprint.SplitID(m.Group.FirstPrinting.ID)
		log.Debug().Str("card", name).Str("from", cardID).Str("to", p.ID()).Msg("Reprint converted to first printing")
		return Resolution{Printing: p, Rule: RuleReprint, Group: m.Group.Name}
	default:
		log.Debug().Str("card", name).Str("printing", cardID).Msg("Card is already first printing")
		return Resolution{Printing: original, Rule: RuleFirstPrinting, Group: m.Group.Name}
	}
}

// Ready reports whether a non-empty table is loaded.
func (r *Resolver) Ready() bool {
	return r != nil && r.table.Len() > 0
}
