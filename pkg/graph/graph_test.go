package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeJSONShape(t *testing.T) {
	n := NewNode("verse", Properties{"book": "Genesis", "chapter": 1})
	n.ID = 7

	b, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, float64(7), decoded["id"])
	assert.Equal(t, "verse", decoded["label"])
	assert.Contains(t, decoded, "properties")

	// Sink-assigned timestamps stay off the wire until set
	assert.NotContains(t, decoded, "created_at")
	assert.NotContains(t, decoded, "updated_at")
}

func TestEdgeJSONShape(t *testing.T) {
	e := NewEdge(1, 2, "contains", 1)

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, float64(1), decoded["from_id"])
	assert.Equal(t, float64(2), decoded["to_id"])
	assert.Equal(t, "contains", decoded["label"])
	assert.Equal(t, float64(1), decoded["weight"])
	assert.NotContains(t, decoded, "id", "store-assigned edge id should be omitted when empty")
}

func TestPropertiesScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    Properties
		wantErr bool
	}{
		{name: "bytes", src: []byte(`{"name":"Genesis"}`), want: Properties{"name": "Genesis"}},
		{name: "string", src: `{"order":1}`, want: Properties{"order": float64(1)}},
		{name: "nil maps to empty", src: nil, want: Properties{}},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Properties
			err := p.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPropertiesValue(t *testing.T) {
	p := Properties{"testament": "Old"}
	v, err := p.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"testament":"Old"}`, v.(string))

	var empty Properties
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestPropertiesInt(t *testing.T) {
	p := Properties{"a": 1, "b": int64(2), "c": float64(3), "d": "x"}

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := p.Int(key)
		assert.True(t, ok, "key %q", key)
		assert.Equal(t, want, got)
	}

	_, ok := p.Int("d")
	assert.False(t, ok)
	_, ok = p.Int("missing")
	assert.False(t, ok)
}
