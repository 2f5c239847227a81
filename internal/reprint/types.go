package reprint

import "strings"

// PrintingRef identifies one physical printing as "<SET> <NUMBER>", e.g. "SVI 81".
type PrintingRef struct {
	ID string `json:"id" yaml:"id"`
}

// Group is one entry of the reprint table: a first printing and its later reprints.
type Group struct {
	Name          string        `json:"name" yaml:"name"`
	FirstPrinting PrintingRef   `json:"first_printing" yaml:"first_printing"`
	Reprints      []PrintingRef `json:"reprints" yaml:"reprints"`
}

// Printing is a resolved (set, number) pair.
type Printing struct {
	Set    string `json:"set"`
	Number string `json:"number"`
}

// ID joins the pair back into "<SET> <NUMBER>" form.
func (p Printing) ID() string {
	return p.Set + " " + p.Number
}

// SplitID splits a printing id on single spaces. The first token is the set
// code and the second the card number; a missing number yields "".
func SplitID(id string) Printing {
	parts := strings.Split(id, " ")
	p := Printing{Set: parts[0]}
	if len(parts) > 1 {
		p.Number = parts[1]
	}
	return p
}

// HasReprint reports whether id is listed among the group's reprints.
func (g Group) HasReprint(id string) bool {
	for _, r := range g.Reprints {
		if r.ID == id {
			return true
		}
	}
	return false
}
