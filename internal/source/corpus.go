package source

import (
	"encoding/json"
	"fmt"
)

// Book is one book of a scripture corpus: a name plus chapters, each
// chapter an ordered list of verse texts. Canonical order is the order
// of books in the input document.
type Book struct {
	Name     string     `json:"name"`
	Abbrev   string     `json:"abbrev"`
	Chapters [][]string `json:"chapters"`
}

// DecodeCorpus parses a corpus document: a top-level JSON array of books.
func DecodeCorpus(data []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	return books, nil
}
