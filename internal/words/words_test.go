package words

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/board"
)

func TestIsValid(t *testing.T) {
	d := New([]string{"cat", "Level", "it", "c4t", " radar "})

	assert.True(t, d.IsValid("CAT"))
	assert.True(t, d.IsValid("cat"))
	assert.True(t, d.IsValid("level"))
	assert.True(t, d.IsValid("RADAR"))
	assert.False(t, d.IsValid("it"), "short words are never valid")
	assert.False(t, d.IsValid("ca"))
	assert.False(t, d.IsValid("cats"))
	assert.False(t, d.IsValid("c4t"))
	assert.Equal(t, 3, d.Len())
}

func TestHasPrefix(t *testing.T) {
	d := New([]string{"rotate", "rotor"})
	assert.True(t, d.HasPrefix("ro"))
	assert.True(t, d.HasPrefix("ROTA"))
	assert.True(t, d.HasPrefix(""))
	assert.False(t, d.HasPrefix("rx"))
	assert.False(t, d.HasPrefix("ro-"))
}

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader("# comment\n\ncat\ndog\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.IsValid("DOG"))
}

func TestDefaultDictionary(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, d, again)

	assert.True(t, d.IsValid("cat"))
	assert.True(t, d.IsValid("CAT"))
	assert.False(t, d.IsValid("it"))
	assert.True(t, d.IsValid("radar"))
	assert.True(t, d.IsValid("north"))
}

func TestConcurrentReads(t *testing.T) {
	d := New([]string{"cat", "dog", "level"})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.True(t, d.IsValid("level"))
				assert.False(t, d.IsValid("lev"))
			}
		}()
	}
	wg.Wait()
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryDirection, Classify("north"))
	assert.Equal(t, CategoryAction, Classify("ROTATE"))
	assert.Equal(t, CategoryEmotion, Classify("happy"))
	assert.Equal(t, CategoryNone, Classify("table"))

	d, ok := DirectionOf("left")
	assert.True(t, ok)
	assert.Equal(t, board.West, d)
	_, ok = DirectionOf("cat")
	assert.False(t, ok)
}
