package commands

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/graphload/internal/cli/output"
	"github.com/leapstack-labs/graphload/internal/record"
	"github.com/leapstack-labs/graphload/internal/upload"
)

// summarize consumes the record sequence without delivering anything,
// tallying what an upload would send. Batch counting mirrors the
// uploader: a batch closes when its node count reaches batchSize, and
// one final batch carries any remainder of nodes or edges.
func summarize(ref string, batchSize int, records iter.Seq[record.Record]) output.DryRunOutput {
	counts := make(map[string]int)
	var nodes, edges, batches int
	var pendingNodes, pendingEdges int

	for rec := range records {
		switch {
		case rec.Node != nil:
			nodes++
			counts[rec.Node.Label]++
			pendingNodes++
			if pendingNodes >= batchSize {
				batches++
				pendingNodes, pendingEdges = 0, 0
			}
		case rec.Edge != nil:
			edges++
			pendingEdges++
		}
	}
	if pendingNodes > 0 || pendingEdges > 0 {
		batches++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := output.DryRunOutput{
		Source:    ref,
		Nodes:     nodes,
		Edges:     edges,
		Batches:   batches,
		BatchSize: batchSize,
		Labels:    make([]output.LabelCount, 0, len(labels)),
	}
	for _, label := range labels {
		out.Labels = append(out.Labels, output.LabelCount{Label: label, Count: counts[label]})
	}
	return out
}

// renderDryRun reports what would be uploaded, in the active output mode.
func renderDryRun(r *output.Renderer, out output.DryRunOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return dryRunMarkdown(r, out)
	default:
		return dryRunText(r, out)
	}
}

func dryRunMarkdown(r *output.Renderer, out output.DryRunOutput) error {
	r.Println(output.FormatHeader(1, "Dry Run"))
	r.Println("")
	r.Println(output.FormatKeyValue("Source", out.Source))
	for _, lc := range out.Labels {
		r.Println(output.FormatKeyValue(lc.Label, fmt.Sprintf("%d", lc.Count)))
	}
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", out.Nodes)))
	if out.Edges > 0 {
		r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d", out.Edges)))
	}
	r.Printf("**Batches:** %d (batch size %d)\n", out.Batches, out.BatchSize)
	r.Println("")
	r.Println("Nothing was uploaded.")
	return nil
}

func dryRunText(r *output.Renderer, out output.DryRunOutput) error {
	r.Header(1, "Dry Run")
	r.Muted("Source: " + out.Source)
	r.Println("")

	if len(out.Labels) > 0 {
		titleCaser := cases.Title(language.English)

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Label", "Nodes"})
		for _, lc := range out.Labels {
			t.AppendRow(table.Row{titleCaser.String(lc.Label), lc.Count})
		}
		t.Render()
		r.Println("")
	}

	r.Printf("%d nodes", out.Nodes)
	if out.Edges > 0 {
		r.Printf(", %d edges", out.Edges)
	}
	r.Printf(" in %d batches of up to %d\n", out.Batches, out.BatchSize)
	r.Println("")
	r.Muted("Nothing was uploaded.")
	return nil
}

// renderUpload reports a completed upload run, in the active output mode.
func renderUpload(r *output.Renderer, out output.UploadOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return uploadMarkdown(r, out)
	default:
		return uploadText(r, out)
	}
}

func uploadMarkdown(r *output.Renderer, out output.UploadOutput) error {
	r.Println(output.FormatHeader(1, "Upload Complete"))
	r.Println("")
	r.Println(output.FormatKeyValue("Source", out.Source))
	r.Println(output.FormatKeyValue("Destination", out.URL))
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", out.Nodes)))
	if out.Edges > 0 {
		r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d", out.Edges)))
	}
	r.Println(output.FormatKeyValue("Batches", fmt.Sprintf("%d", out.Batches)))
	r.Printf("**Elapsed:** %s\n", out.Elapsed)
	return nil
}

func uploadText(r *output.Renderer, out output.UploadOutput) error {
	r.Println("")
	if out.Edges > 0 {
		r.Success(fmt.Sprintf("Uploaded %d nodes and %d edges in %d batches", out.Nodes, out.Edges, out.Batches))
	} else {
		r.Success(fmt.Sprintf("Uploaded %d nodes in %d batches", out.Nodes, out.Batches))
	}
	r.Muted("Destination: " + out.URL)
	r.Muted("Elapsed: " + out.Elapsed)
	return nil
}

// uploadOutput converts an upload summary into its renderable form.
func uploadOutput(ref, url string, s *upload.Summary) output.UploadOutput {
	return output.UploadOutput{
		Source:  ref,
		URL:     url,
		Batches: s.Batches,
		Nodes:   s.Nodes,
		Edges:   s.Edges,
		Elapsed: s.Elapsed.Round(time.Millisecond).String(),
	}
}

// flushStatus renders one per-batch progress line in text mode.
func flushStatus(r *output.Renderer) func(upload.Flush) {
	if r.EffectiveMode() != output.ModeText {
		return nil
	}
	return func(f upload.Flush) {
		detail := fmt.Sprintf("%d nodes", f.Nodes)
		if f.Edges > 0 {
			detail = fmt.Sprintf("%d nodes, %d edges", f.Nodes, f.Edges)
		}
		r.StatusLine(fmt.Sprintf("batch %d", f.Batch), "success", detail)
	}
}
