package textutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Charizard", Truncate("Charizard", 9))
	assert.Equal(t, "Chari...", Truncate("Charizard", 5))
	assert.Equal(t, "...", Truncate("Charizard", 0))

	// "é" spans bytes 3 and 4 of "Pokémon".
	got := Truncate("Pokémon: 12", 4)
	assert.Equal(t, "Pok...", got)
	assert.True(t, utf8.ValidString(got))

	for n := 0; n < len("Pokémon: 12"); n++ {
		assert.True(t, utf8.ValidString(Truncate("Pokémon: 12", n)), n)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" 4 Iono PAL 185"))
}
