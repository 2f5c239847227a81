package decklist

import (
	"strings"
	"testing"

	"deblinger/internal/reprint"
	"deblinger/internal/resolver"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(id string) reprint.PrintingRef { return reprint.PrintingRef{ID: id} }

func newConverter() *Converter {
	table := reprint.NewTable([]reprint.Group{
		{Name: "Charizard", FirstPrinting: ref("BASE 4"), Reprints: []reprint.PrintingRef{ref("SVI 125")}},
		{Name: "Iono", FirstPrinting: ref("PAL 185"), Reprints: []reprint.PrintingRef{ref("PAL 254"), ref("PAF 80")}},
		{Name: "Double Turbo Energy", FirstPrinting: ref("BRS 151"), Reprints: []reprint.PrintingRef{ref("ASR 216")}},
		{Name: "Pidgeot ex", FirstPrinting: ref("OBF 164"), Reprints: []reprint.PrintingRef{ref("PAF 221")}},
	})
	return NewConverter(resolver.New(table))
}

func TestConvertDecklist(t *testing.T) {
	input := strings.Join([]string{
		"Pokémon: 3",
		"4 Charizard SVI 125",
		"2 Pidgeot ex OBF 164",
		"1 Pidgeot ex PAF 221",
		"",
		"Trainer: 1",
		"4 Iono PAF 80",
		"Energy: 2",
		"2 Grass Energy SVI 1",
		"3 Double Turbo Energy ASR 216",
		"",
		"Total Cards: 60",
	}, "\n")

	want := strings.Join([]string{
		"Pokémon: 3",
		"4 Charizard BASE 4",
		"2 Pidgeot ex OBF 164",
		"1 Pidgeot ex OBF 164",
		"",
		"Trainer: 1",
		"4 Iono PAL 185",
		"Energy: 2",
		"2 Grass Energy SVE 1",
		"3 Double Turbo Energy BRS 151",
		"",
		"Total Cards: 60",
	}, "\n")

	result, err := newConverter().Convert(input)
	require.NoError(t, err)

	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Errorf("converted decklist mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 6, result.Cards)
	assert.Equal(t, []Change{
		{Line: 2, Name: "Charizard", From: "SVI 125", To: "BASE 4", Rule: resolver.RuleReprint},
		{Line: 4, Name: "Pidgeot ex", From: "PAF 221", To: "OBF 164", Rule: resolver.RuleReprint},
		{Line: 7, Name: "Iono", From: "PAF 80", To: "PAL 185", Rule: resolver.RuleTrainerName},
		{Line: 9, Name: "Grass Energy", From: "SVI 1", To: "SVE 1", Rule: resolver.RuleEnergyOverride},
		{Line: 10, Name: "Double Turbo Energy", From: "ASR 216", To: "BRS 151", Rule: resolver.RuleReprint},
	}, result.Changes)
}

func TestConvertPreservesLineCountAndPassThrough(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"Pokémon: 12\n4 Charizard SVI 125",
		"4 Charizard SVI 125\n",
		"garbage line\r\n4 Charizard SVI 125\r\n  \nTrainer: 2\n",
		"Energy:\n// comment\n4 Charizard  SVI  125",
	}

	c := newConverter()
	for _, input := range inputs {
		result, err := c.Convert(input)
		require.NoError(t, err)

		in := strings.Split(input, "\n")
		out := strings.Split(result.Text, "\n")
		require.Len(t, out, len(in), "input %q", input)

		parsed := ParseLines(input)
		for i := range in {
			if !parsed[i].IsCard() {
				assert.Equal(t, in[i], out[i], "line %d of %q", i, input)
			}
		}
	}
}

func TestConvertNormalizesCardLineSpacing(t *testing.T) {
	result, err := newConverter().Convert("04 Mew  ex\tMEW 151")
	require.NoError(t, err)
	assert.Equal(t, "04 Mew  ex MEW 151", result.Text)
	assert.Empty(t, result.Changes)
}

func TestConvertUnicodeSeparatedLine(t *testing.T) {
	result, err := newConverter().Convert("Pokémon: 1\n4 Charizard\u00a0SVI\u00a0125\n")
	require.NoError(t, err)
	assert.Equal(t, "Pokémon: 1\n4 Charizard BASE 4\n", result.Text)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 2, result.Changes[0].Line)
}

func TestConvertWithoutTable(t *testing.T) {
	input := "Pokémon: 1\n4 Charizard SVI 125"

	for _, c := range []*Converter{
		NewConverter(nil),
		NewConverter(resolver.New(nil)),
		NewConverter(resolver.New(reprint.NewTable(nil))),
	} {
		_, err := c.Convert(input)
		assert.ErrorIs(t, err, ErrTableNotLoaded)
		assert.Equal(t, TableNotLoadedMessage, c.ConvertText(input))
	}
}

func TestConvertText(t *testing.T) {
	assert.Equal(t, "4 Charizard BASE 4", newConverter().ConvertText("4 Charizard SVI 125"))
}
