package record

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/graphload/internal/source"
	"github.com/leapstack-labs/graphload/pkg/graph"
)

// Node labels and the containment edge label used by the corpus
// generators.
const (
	LabelBook    = "book"
	LabelChapter = "chapter"
	LabelVerse   = "verse"
	EdgeContains = "contains"
)

// CorpusOptions configures the hierarchical generator.
type CorpusOptions struct {
	// WithEdges emits containment edges after each child node:
	// book→chapter and chapter→verse, plus a direct book→verse edge
	// so traversals can skip the chapter level.
	WithEdges bool
}

// Corpus walks books in canonical order and emits book, chapter, and
// verse nodes. Every node's properties carry enough ancestry to place
// it without edges; ids are assigned from a single counter starting
// at 0, nodes only.
func Corpus(books []source.Book, opts CorpusOptions) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		var id uint64
		for i, book := range books {
			order := i + 1
			testament := Testament(order)

			bookID := id
			bookNode := graph.NewNode(LabelBook, graph.Properties{
				"name":          book.Name,
				"testament":     testament,
				"order":         order,
				"chapter_count": len(book.Chapters),
				"type":          "book",
			})
			bookNode.ID = bookID
			if !yield(nodeRecord(bookNode)) {
				return
			}
			id++

			for ci, chapter := range book.Chapters {
				chapterNum := ci + 1

				chapterID := id
				chapterNode := graph.NewNode(LabelChapter, graph.Properties{
					"book":        book.Name,
					"chapter":     chapterNum,
					"testament":   testament,
					"bookOrder":   order,
					"verse_count": len(chapter),
					"reference":   fmt.Sprintf("%s %d", book.Name, chapterNum),
					"type":        "chapter",
				})
				chapterNode.ID = chapterID
				if !yield(nodeRecord(chapterNode)) {
					return
				}
				id++

				if opts.WithEdges {
					if !yield(edgeRecord(graph.NewEdge(bookID, chapterID, EdgeContains, 1))) {
						return
					}
				}

				for vi, text := range chapter {
					verseNum := vi + 1

					verseID := id
					verseNode := graph.NewNode(LabelVerse, graph.Properties{
						"book":       book.Name,
						"chapter":    chapterNum,
						"verse":      verseNum,
						"testament":  testament,
						"bookOrder":  order,
						"reference":  fmt.Sprintf("%s %d:%d", book.Name, chapterNum, verseNum),
						"content":    text,
						"word_count": wordCount(text),
						"char_count": charCount(text),
						"type":       "verse",
					})
					verseNode.ID = verseID
					if !yield(nodeRecord(verseNode)) {
						return
					}
					id++

					if opts.WithEdges {
						if !yield(edgeRecord(graph.NewEdge(chapterID, verseID, EdgeContains, 1))) {
							return
						}
						if !yield(edgeRecord(graph.NewEdge(bookID, verseID, EdgeContains, 1))) {
							return
						}
					}
				}
			}
		}
	}
}

// wordCount counts whitespace-separated fields.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// charCount counts characters, not bytes, so accented text measures
// the same as it reads.
func charCount(text string) int {
	return utf8.RuneCountInString(text)
}
