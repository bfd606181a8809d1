package server

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/config"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// session encodes requests, runs the server to completion and returns a
// decoder over everything it wrote.
func session(t *testing.T, requests ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	srv := NewServerWithIO(analysis.New(analysis.DefaultOptions()), config.DefaultConfig().Server, &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready HealthResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	assert.False(t, ready.Loaded)
	return dec
}

func decode[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	require.NoError(t, dec.Decode(&v))
	return v
}

const sample = "123456\npassword\n123456\nmypass123\nmypass123\nadmin\n"

func TestNotLoaded(t *testing.T) {
	dec := session(t,
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "s", Action: ActionStats},
		Request{ID: "l", Action: ActionLookup, Prefix: "pa"},
	)

	health := decode[HealthResponse](t, dec)
	assert.Equal(t, HealthResponse{ID: "h", Status: "ok", Loaded: false}, health)

	for _, id := range []string{"s", "l"} {
		e := decode[ErrorResponse](t, dec)
		assert.Equal(t, id, e.ID)
		assert.Equal(t, 404, e.Code)
	}
}

func TestLoadTextAndQuery(t *testing.T) {
	dec := session(t,
		Request{ID: "load", Action: ActionLoad, Text: sample},
		Request{ID: "stats", Action: ActionStats},
		Request{ID: "heat", Action: ActionHeatmap},
		Request{ID: "part", Action: ActionPartial, Limit: 1},
		Request{ID: "cloud", Action: ActionCloud, Limit: 2, Dark: true},
		Request{ID: "look", Action: ActionLookup, Prefix: "12"},
	)

	load := decode[LoadResponse](t, dec)
	assert.Equal(t, "load", load.ID)
	assert.Equal(t, 6, load.Total)
	assert.Equal(t, 4, load.Unique)

	st := decode[StatsResponse](t, dec)
	require.NotNil(t, st.Stats)
	assert.Equal(t, 6, st.Stats.TotalPasswords)
	assert.Equal(t, "123456", st.Stats.Top10[0].Password)
	assert.GreaterOrEqual(t, st.TimeTaken, int64(0))

	heat := decode[HeatmapResponse](t, dec)
	require.NotNil(t, heat.Heatmap)
	assert.Len(t, heat.Bands, 8)
	assert.Equal(t, "100+", heat.Bands[7])
	assert.Equal(t, 5, heat.Heatmap.MinLength)

	part := decode[PartialResponse](t, dec)
	assert.Len(t, part.Phrases, 1)
	assert.False(t, part.NoMatches)

	cl := decode[CloudResponse](t, dec)
	assert.Equal(t, 2, cl.Count)
	assert.Equal(t, "123456", cl.Words[0].Text)

	look := decode[LookupResponse](t, dec)
	assert.Equal(t, []corpus.Entry{{Word: "123456", Count: 2}}, look.Entries)
	assert.Equal(t, []uint16{1}, look.Ranks)
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	dec := session(t,
		Request{ID: "a", Action: ActionLoad, Path: path},
		Request{ID: "b", Action: ActionLoad, Path: filepath.Join(t.TempDir(), "missing.txt")},
		Request{ID: "c", Action: ActionLoad},
		Request{ID: "d", Action: ActionHealth},
	)

	load := decode[LoadResponse](t, dec)
	assert.Equal(t, path, load.Source)

	missing := decode[ErrorResponse](t, dec)
	assert.Equal(t, 404, missing.Code)

	empty := decode[ErrorResponse](t, dec)
	assert.Equal(t, 400, empty.Code)

	health := decode[HealthResponse](t, dec)
	assert.True(t, health.Loaded, "a failed load keeps the previous list")
}

func TestBadRequests(t *testing.T) {
	dec := session(t,
		"not a map",
		Request{ID: "x", Action: "explode"},
		Request{ID: "y", Action: ActionLoad, Text: "\n\n"},
		Request{ID: "z", Action: ActionStats},
		Request{ID: "p", Action: ActionLookup},
	)

	malformed := decode[ErrorResponse](t, dec)
	assert.Equal(t, 400, malformed.Code)

	unknown := decode[ErrorResponse](t, dec)
	assert.Equal(t, "x", unknown.ID)
	assert.Equal(t, 400, unknown.Code)

	load := decode[LoadResponse](t, dec)
	assert.Equal(t, 0, load.Total)

	empty := decode[ErrorResponse](t, dec)
	assert.Equal(t, 404, empty.Code)
	assert.Equal(t, "password list is empty", empty.Error)

	noPrefix := decode[ErrorResponse](t, dec)
	assert.Equal(t, 400, noPrefix.Code)
}

func TestCapLimit(t *testing.T) {
	assert.Equal(t, 200, capLimit(0, 200))
	assert.Equal(t, 200, capLimit(500, 200))
	assert.Equal(t, 20, capLimit(20, 200))
}
