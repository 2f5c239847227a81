package decklist

import (
	"testing"

	"deblinger/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineCard(t *testing.T) {
	tests := []struct {
		line string
		want CardRef
	}{
		{"4 Charizard SVI 125", CardRef{Quantity: "4", Name: "Charizard", Set: "SVI", Number: "125"}},
		{"3 Charizard ex OBF 125", CardRef{Quantity: "3", Name: "Charizard ex", Set: "OBF", Number: "125"}},
		{"1 Professor's Research SVI 189", CardRef{Quantity: "1", Name: "Professor's Research", Set: "SVI", Number: "189"}},
		{"2 Pikachu PR-SV 27", CardRef{Quantity: "2", Name: "Pikachu", Set: "PR-SV", Number: "27"}},
		{"04 Iono  PAL\t185", CardRef{Quantity: "04", Name: "Iono", Set: "PAL", Number: "185"}},
		{"1 Team Rocket's Mewtwo ex DRI 81", CardRef{Quantity: "1", Name: "Team Rocket's Mewtwo ex", Set: "DRI", Number: "81"}},
		{"4 Charizard\u00a0SVI\u00a0125", CardRef{Quantity: "4", Name: "Charizard", Set: "SVI", Number: "125"}},
		{"2\u3000Iono\u2009PAL\u202f185", CardRef{Quantity: "2", Name: "Iono", Set: "PAL", Number: "185"}},
		{"1 Mew\u00a0ex\vMEW\ufeff151", CardRef{Quantity: "1", Name: "Mew\u00a0ex", Set: "MEW", Number: "151"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseLine(tt.line, NewParseContext())
			require.True(t, got.IsCard())

			want := tt.want
			want.Type = resolver.Pokemon
			want.Original = tt.line
			assert.Equal(t, want, *got.Card)
			assert.Equal(t, tt.line, got.Raw)
		})
	}
}

func TestParseLinePassThrough(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"\t",
		"Total Cards: 60",
		"// sideboard",
		"Charizard SVI 125",
		"4 Charizard svi 125",
		"4 Charizard SVI",
		"4 SVI 125",
		"x4 Charizard SVI 125",
		"4 Charizard SVI 125 ",
		"4 Charizard SVI 125\r",
		"4 Char\rizard SVI 125",
		"4 Char\u2028izard SVI 125",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			ctx := NewParseContext()
			got := ParseLine(line, ctx)
			assert.False(t, got.IsCard())
			assert.Equal(t, line, got.Raw)
			assert.Equal(t, resolver.Pokemon, ctx.Section)
		})
	}
}

func TestParseLineSectionHeaders(t *testing.T) {
	tests := []struct {
		line string
		want resolver.CardType
	}{
		{"Pokémon: 12", resolver.Pokemon},
		{"Pokemon: 12", resolver.Pokemon},
		{"Trainer: 36", resolver.Trainer},
		{"Energy: 12", resolver.Energy},
		{"## Trainer: 36 ##", resolver.Trainer},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ctx := &ParseContext{Section: resolver.Energy}
			if tt.want == resolver.Energy {
				ctx.Section = resolver.Pokemon
			}
			got := ParseLine(tt.line, ctx)
			assert.False(t, got.IsCard())
			assert.Equal(t, tt.line, got.Raw)
			assert.Equal(t, tt.want, ctx.Section)
		})
	}
}

func TestParseLinesTracksSections(t *testing.T) {
	lines := ParseLines("Pokémon: 1\n4 Charizard SVI 125\n\nTrainer: 1\n4 Iono PAL 185\nEnergy: 1\n8 Fire Energy SVE 2\n1 Energy Switch SVI 173")
	require.Len(t, lines, 8)

	var types []resolver.CardType
	for _, l := range lines {
		if l.IsCard() {
			types = append(types, l.Card.Type)
		}
	}

	assert.Equal(t, []resolver.CardType{resolver.Pokemon, resolver.Trainer, resolver.Energy, resolver.Energy}, types)
}

func TestParseLinesDefaultsToPokemon(t *testing.T) {
	lines := ParseLines("2 Pikachu SVI 62")
	require.True(t, lines[0].IsCard())
	assert.Equal(t, resolver.Pokemon, lines[0].Card.Type)
}
