// AngelaMos | 2026
// mask_test.go

package privacy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskNamePreservesLength(t *testing.T) {
	names := []string{
		"Rajesh Kumar",
		"TechnoLogic Solutions",
		"A",
		"Jo",
		"Ana",
		"Kuma",
		"Priya Venkataraman",
		"X Y Z",
	}

	for _, name := range names {
		masked := MaskName(name)
		assert.Equal(t, len(name), len(masked), "length for %q", name)
		assert.Equal(t,
			len(strings.Split(name, " ")),
			len(strings.Split(masked, " ")),
			"word count for %q", name,
		)
	}
}

func TestMaskNameEmptyString(t *testing.T) {
	assert.Equal(t, "", MaskName(""))
}

func TestMaskNameShortWords(t *testing.T) {
	assert.Equal(t, "*", MaskName("A"))
	assert.Equal(t, "J*", MaskName("Jo"))
	assert.Equal(t, "A**", MaskName("Ana"))
	assert.Equal(t, "Ku*a", MaskName("Kuma"))
}

func TestMaskNameLongWordsKeepEdges(t *testing.T) {
	words := []string{"Rajesh", "Venkataraman", "TechnoLogic", "Kumar"}

	for _, word := range words {
		masked := MaskName(word)
		require.Len(t, masked, len(word))
		assert.Equal(t, word[:2], masked[:2], "leading chars of %q", word)
		assert.Equal(t,
			word[len(word)-2:],
			masked[len(masked)-2:],
			"trailing chars of %q", word,
		)
		assert.Contains(t, masked, "*", "at least one asterisk in %q", word)

		interior := masked[2 : len(masked)-2]
		assert.Equal(t,
			strings.Repeat("*", len(word)-4),
			interior,
			"interior of %q fully starred", word,
		)
	}
}

func TestMaskNameFounderExample(t *testing.T) {
	masked := MaskName("Rajesh Kumar")

	require.Len(t, masked, len("Rajesh Kumar"))

	parts := strings.Split(masked, " ")
	require.Len(t, parts, 2)

	assert.Equal(t, "Ra**sh", parts[0])
	assert.Equal(t, "Ku*ar", parts[1])
}

func TestMaskNameIsDeterministic(t *testing.T) {
	first := MaskName("TechnoLogic Solutions")
	second := MaskName("TechnoLogic Solutions")
	assert.Equal(t, first, second)
}
