package jets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	seq, err := Parse([]byte(Sample + "\n"))
	require.NoError(t, err)
	require.Len(t, seq, 40)
	assert.Equal(t, Right, seq[0])
	assert.Equal(t, Left, seq[3])
	for i, d := range seq {
		assert.Equal(t, Sample[i], d.Symbol(), "position %d", i)
	}
}

func TestParseOnlyFirstLine(t *testing.T) {
	seq, err := Parse([]byte("<>\r\nthis line is ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, Sequence{Left, Right}, seq)
}

func TestParseRejectsUnknownSymbols(t *testing.T) {
	_, err := Parse([]byte("<<>x>"))
	require.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "position 3")
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n<<>"} {
		_, err := Parse([]byte(in))
		assert.ErrorIs(t, err, ErrEmpty, "input %q", in)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("<=>") })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "jets.txt")
	require.NoError(t, os.WriteFile(good, []byte(Sample+"\n"), 0o644))
	seq, err := Load(good)
	require.NoError(t, err)
	assert.Len(t, seq, 40)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("<<v"), 0o644))
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Contains(t, err.Error(), bad)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCursorWraps(t *testing.T) {
	c := NewCursor(Sequence{Left, Right, Right})
	var got []Direction
	for n := 0; n < 7; n++ {
		got = append(got, c.Next())
	}
	assert.Equal(t, []Direction{Left, Right, Right, Left, Right, Right, Left}, got)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 3, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Index())
}

func TestDirectionSymbols(t *testing.T) {
	for _, b := range []byte("<>") {
		d, ok := FromSymbol(b)
		require.True(t, ok)
		assert.Equal(t, b, d.Symbol())
	}
	_, ok := FromSymbol('^')
	assert.False(t, ok)
	assert.Equal(t, byte('?'), Direction(0).Symbol())
	assert.Equal(t, "Direction(0)", Direction(0).String())
}
