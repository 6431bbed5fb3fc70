package ticket

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^EVT-[0-9A-Z]{6}$`)

func TestGenerate_Shape(t *testing.T) {
	g := NewCodeGenerator("evt")

	for i := 0; i < 500; i++ {
		code := g.Generate()
		require.Regexp(t, codePattern, code)
		assert.True(t, ValidCode("EVT", code))
	}
}

func TestGenerate_DefaultPrefix(t *testing.T) {
	g := NewCodeGenerator("  ")

	assert.Equal(t, DefaultPrefix, g.Prefix())
	assert.True(t, ValidCode(DefaultPrefix, g.Generate()))
}

func TestGenerate_Distinct(t *testing.T) {
	g := NewCodeGenerator("TIX")
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		seen[g.Generate()] = struct{}{}
	}

	// 1000 draws over 36^6 suffixes: a handful of collisions at most.
	assert.Greater(t, len(seen), 995)
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("TIX", "TIX-A1B2C3"))
	assert.False(t, ValidCode("TIX", "TIX-a1b2c3"))
	assert.False(t, ValidCode("TIX", "TIX-A1B2C"))
	assert.False(t, ValidCode("TIX", "EVT-A1B2C3"))
	assert.False(t, ValidCode("TIX", "TIXA1B2C3"))
}

func TestHasInvite(t *testing.T) {
	assert.False(t, Ticket{}.HasInvite())
	assert.True(t, Ticket{CalendarInvite: []byte("BEGIN:VCALENDAR")}.HasInvite())
}
