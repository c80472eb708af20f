package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonHasSixtySixBooks(t *testing.T) {
	books := Canon()
	require.Len(t, books, 66)

	assert.Equal(t, "Genesis", books[0].Name)
	assert.Equal(t, "Malachi", books[38].Name)
	assert.Equal(t, "Old", books[38].Testament)
	assert.Equal(t, "Matthew", books[39].Name)
	assert.Equal(t, "New", books[39].Testament)
	assert.Equal(t, "Revelation", books[65].Name)

	for i, b := range books {
		assert.Equal(t, i+1, b.Order, "canon order must be contiguous")
		assert.Equal(t, Testament(b.Order), b.Testament)
		assert.NotEmpty(t, b.Abbrev)
		assert.Positive(t, b.Chapters)
	}
}

func TestCanonIndex(t *testing.T) {
	nodes, edges := Collect(CanonIndex())

	assert.Empty(t, edges)
	// 66 books + 1189 chapters
	require.Len(t, nodes, 1255)

	var bookCount, chapterCount int
	for i, n := range nodes {
		assert.Equal(t, uint64(i), n.ID)
		switch n.Label {
		case "book":
			bookCount++
			assert.Contains(t, n.Properties, "abbreviation")
			assert.Contains(t, n.Properties, "chapter_count")
		case "chapter":
			chapterCount++
			assert.Contains(t, n.Properties, "book")
			assert.Contains(t, n.Properties, "bookOrder")
			assert.NotContains(t, n.Properties, "verse_count", "index stubs carry no verse data")
		default:
			t.Fatalf("unexpected label %q", n.Label)
		}
	}
	assert.Equal(t, 66, bookCount)
	assert.Equal(t, 1189, chapterCount)
}

func TestCanonIndexFirstBook(t *testing.T) {
	var first *Record
	for rec := range CanonIndex() {
		first = &rec
		break
	}

	require.NotNil(t, first)
	require.NotNil(t, first.Node)
	assert.Equal(t, uint64(0), first.Node.ID)
	assert.Equal(t, "Genesis", first.Node.Properties["name"])
	assert.Equal(t, "Gen", first.Node.Properties["abbreviation"])
	assert.Equal(t, 50, first.Node.Properties["chapter_count"])
}
