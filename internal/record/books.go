package record

import (
	"iter"

	"github.com/leapstack-labs/graphload/pkg/graph"
)

// CanonIndex emits an index of the canon without verse content: one
// node per book, each followed by stub nodes for its chapters. Useful
// for seeding a sink with the book/chapter skeleton before a full
// corpus load. Ids come from a single counter starting at 0.
func CanonIndex() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		var id uint64
		for _, b := range Canon() {
			bookNode := graph.NewNode(LabelBook, graph.Properties{
				"name":          b.Name,
				"abbreviation":  b.Abbrev,
				"testament":     b.Testament,
				"chapter_count": b.Chapters,
				"order":         b.Order,
				"type":          "book",
			})
			bookNode.ID = id
			if !yield(nodeRecord(bookNode)) {
				return
			}
			id++

			for c := 1; c <= b.Chapters; c++ {
				chapterNode := graph.NewNode(LabelChapter, graph.Properties{
					"book":      b.Name,
					"chapter":   c,
					"testament": b.Testament,
					"bookOrder": b.Order,
					"type":      "chapter",
				})
				chapterNode.ID = id
				if !yield(nodeRecord(chapterNode)) {
					return
				}
				id++
			}
		}
	}
}
