package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), data)
}

func TestFetchURLStripsBOM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})
		_, _ = w.Write([]byte(`[{"name":"Genesis"}]`))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0], "BOM should be stripped")
}

func TestFetchURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFid,name\n"), 0o600))

	data, err := Fetch(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("id,name\n"), data)
}

func TestFetchLocalFileMissing(t *testing.T) {
	_, err := Fetch(context.Background(), nil, filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://localhost:8080/api/v1/nodes"))
	assert.True(t, IsURL("https://example.com/data.csv"))
	assert.False(t, IsURL("transformed.csv"))
	assert.False(t, IsURL("./data/rows.csv"))
}

func TestDecodeCSV(t *testing.T) {
	data := []byte("commandment_number,title,description\n1,First,No other gods\n2,Second,No idols\n")

	table, err := DecodeCSV(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"commandment_number", "title", "description"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "First", table.Rows[0]["title"])
	assert.Equal(t, "No idols", table.Rows[1]["description"])
}

func TestDecodeCSVEmpty(t *testing.T) {
	_, err := DecodeCSV(nil)
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestDecodeCSVRaggedRow(t *testing.T) {
	_, err := DecodeCSV([]byte("a,b\n1\n"))
	require.Error(t, err)
}

func TestDecodeCorpus(t *testing.T) {
	data := []byte(`[{"abbrev":"gn","name":"Genesis","chapters":[["v1","v2"],["v1"]]}]`)

	books, err := DecodeCorpus(data)
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "Genesis", books[0].Name)
	assert.Equal(t, "gn", books[0].Abbrev)
	require.Len(t, books[0].Chapters, 2)
	assert.Equal(t, []string{"v1", "v2"}, books[0].Chapters[0])
}

func TestDecodeCorpusInvalid(t *testing.T) {
	_, err := DecodeCorpus([]byte(`{"not":"an array"}`))
	require.Error(t, err)
}
