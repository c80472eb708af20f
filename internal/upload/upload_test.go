package upload

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/graphload/internal/record"
	"github.com/leapstack-labs/graphload/internal/testutil"
	"github.com/leapstack-labs/graphload/pkg/graph"
)

// capture remembers every request body a test sink received.
type capture struct {
	mu       sync.Mutex
	bodies   [][]byte
	payloads []Payload
	times    []time.Time
	status   int
	reply    string
}

func (c *capture) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload Payload
		require.NoError(t, json.Unmarshal(body, &payload))

		c.mu.Lock()
		c.bodies = append(c.bodies, body)
		c.payloads = append(c.payloads, payload)
		c.times = append(c.times, time.Now())
		status, reply := c.status, c.reply
		c.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(reply))
		}
	}
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func nodeSeq(n int) iter.Seq[record.Record] {
	return func(yield func(record.Record) bool) {
		for i := range n {
			node := graph.NewNode("item", graph.Properties{"order": i})
			node.ID = uint64(i)
			if !yield(record.Record{Node: &node}) {
				return
			}
		}
	}
}

func TestRunBatching(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL, BatchSize: 2, Pause: time.Millisecond, Logger: testutil.NewTestLogger(t)})
	summary, err := u.Run(context.Background(), nodeSeq(5))
	require.NoError(t, err)

	require.Equal(t, 3, sink.count())
	assert.Len(t, sink.payloads[0].Nodes, 2)
	assert.Len(t, sink.payloads[1].Nodes, 2)
	assert.Len(t, sink.payloads[2].Nodes, 1)

	assert.Equal(t, 3, summary.Batches)
	assert.Equal(t, 5, summary.Nodes)
	assert.Equal(t, 0, summary.Edges)
	assert.Greater(t, summary.Elapsed, time.Duration(0))
}

func TestRunPreservesOrder(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL, BatchSize: 3, Pause: time.Millisecond})
	_, err := u.Run(context.Background(), nodeSeq(7))
	require.NoError(t, err)

	var ids []uint64
	for _, p := range sink.payloads {
		for _, n := range p.Nodes {
			ids = append(ids, n.ID)
		}
	}
	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6}, ids)
}

func TestRunEdgesRideAlong(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	seq := func(yield func(record.Record) bool) {
		for i := range 4 {
			node := graph.NewNode("item", nil)
			node.ID = uint64(i)
			if !yield(record.Record{Node: &node}) {
				return
			}
			if i > 0 {
				edge := graph.NewEdge(uint64(i-1), uint64(i), "next", 1)
				if !yield(record.Record{Edge: &edge}) {
					return
				}
			}
		}
	}

	u := New(Config{URL: srv.URL, BatchSize: 2, Pause: time.Millisecond})
	summary, err := u.Run(context.Background(), seq)
	require.NoError(t, err)

	// Nodes alone trip the flush threshold, so the three edges land in
	// whichever batch is open when they are generated.
	require.Equal(t, 2, sink.count())
	assert.Len(t, sink.payloads[0].Nodes, 2)
	assert.Len(t, sink.payloads[0].Edges, 1)
	assert.Len(t, sink.payloads[1].Nodes, 2)
	assert.Len(t, sink.payloads[1].Edges, 2)

	assert.Equal(t, 4, summary.Nodes)
	assert.Equal(t, 3, summary.Edges)
}

func TestRunNodeOnlyBodyOmitsEdges(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL, BatchSize: 10, Pause: time.Millisecond})
	_, err := u.Run(context.Background(), nodeSeq(3))
	require.NoError(t, err)

	require.Equal(t, 1, sink.count())
	assert.NotContains(t, string(sink.bodies[0]), `"edges"`)
	assert.Contains(t, string(sink.bodies[0]), `"nodes"`)
}

func TestRunTrailingEdgesFlush(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	// Batch size 1 forces a flush right after each node, leaving each
	// edge to be carried by a later flush. The final edge has no node
	// behind it and must still go out.
	seq := func(yield func(record.Record) bool) {
		a := graph.NewNode("item", nil)
		b := graph.NewNode("item", nil)
		b.ID = 1
		edge := graph.NewEdge(0, 1, "next", 1)
		for _, rec := range []record.Record{{Node: &a}, {Node: &b}, {Edge: &edge}} {
			if !yield(rec) {
				return
			}
		}
	}

	u := New(Config{URL: srv.URL, BatchSize: 1, Pause: time.Millisecond})
	summary, err := u.Run(context.Background(), seq)
	require.NoError(t, err)

	require.Equal(t, 3, sink.count())
	assert.Empty(t, sink.payloads[2].Nodes)
	assert.Len(t, sink.payloads[2].Edges, 1)
	assert.Equal(t, 3, summary.Batches)
}

func TestRunAbortsOnRejection(t *testing.T) {
	sink := &capture{status: http.StatusUnprocessableEntity, reply: `{"error":"label required"}`}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL, BatchSize: 2, Pause: time.Millisecond})
	summary, err := u.Run(context.Background(), nodeSeq(6))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "label required")

	// The run stops at the first rejection instead of draining the rest.
	assert.Equal(t, 1, sink.count())
	assert.Equal(t, 0, summary.Batches)
}

func TestRunPausesBetweenFlushes(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	pause := 30 * time.Millisecond
	u := New(Config{URL: srv.URL, BatchSize: 2, Pause: pause})
	_, err := u.Run(context.Background(), nodeSeq(4))
	require.NoError(t, err)

	require.Equal(t, 2, sink.count())
	assert.GreaterOrEqual(t, sink.times[1].Sub(sink.times[0]), pause)
}

func TestRunContextCancellation(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	u := New(Config{URL: srv.URL, BatchSize: 1, Pause: time.Minute})

	done := make(chan error, 1)
	go func() {
		_, err := u.Run(ctx, nodeSeq(3))
		done <- err
	}()

	// Let the first flush land, then cancel during the pause.
	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancellation")
	}
	assert.Equal(t, 1, sink.count())
}

func TestRunEmptySequence(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL})
	summary, err := u.Run(context.Background(), func(yield func(record.Record) bool) {})
	require.NoError(t, err)

	assert.Equal(t, 0, sink.count())
	assert.Equal(t, 0, summary.Batches)
	assert.Equal(t, 0, summary.Nodes)
}

func TestRunOnFlush(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	var flushes []Flush
	u := New(Config{
		URL:       srv.URL,
		BatchSize: 2,
		Pause:     time.Millisecond,
		OnFlush:   func(f Flush) { flushes = append(flushes, f) },
	})
	_, err := u.Run(context.Background(), nodeSeq(5))
	require.NoError(t, err)

	require.Len(t, flushes, 3)
	assert.Equal(t, Flush{Batch: 1, Nodes: 2}, flushes[0])
	assert.Equal(t, Flush{Batch: 3, Nodes: 1}, flushes[2])
}

func TestRunUnreachableSink(t *testing.T) {
	u := New(Config{URL: "http://127.0.0.1:1/api/v1/nodes", BatchSize: 2})
	_, err := u.Run(context.Background(), nodeSeq(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach sink")
}

func TestNewDefaults(t *testing.T) {
	u := New(Config{URL: "http://localhost:8080"})
	assert.Equal(t, DefaultBatchSize, u.batchSize)
	assert.Equal(t, DefaultFlushPause, u.pause)
	require.NotNil(t, u.client)
	assert.Equal(t, DefaultRequestTimeout, u.client.Timeout)
	assert.NotNil(t, u.logger)
}

func TestRunLargeSequence(t *testing.T) {
	sink := &capture{}
	srv := httptest.NewServer(sink.handler(t))
	defer srv.Close()

	u := New(Config{URL: srv.URL, BatchSize: 500, Pause: time.Millisecond})
	summary, err := u.Run(context.Background(), nodeSeq(1255))
	require.NoError(t, err)

	require.Equal(t, 3, sink.count())
	assert.Len(t, sink.payloads[0].Nodes, 500)
	assert.Len(t, sink.payloads[1].Nodes, 500)
	assert.Len(t, sink.payloads[2].Nodes, 255)
	assert.Equal(t, 1255, summary.Nodes)
}
