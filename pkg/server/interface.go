/*
Package server implements msgpack IPC over stdin/stdout for password list analysis.

A client (an editor plugin, a dashboard, a script) spawns `passcloud -serve`,
writes one msgpack map per request on stdin, and reads one msgpack map per
response on stdout. Logs never go to stdout.

# IPC

On start the server announces itself:

	{"id": "", "status": "ready", "loaded": false}

Every request names an action and carries an ID that is echoed back:

	{"id": "r1", "action": "load", "path": "/lists/rockyou.txt"}
	{"id": "r2", "action": "load", "text": "123456\npassword\n"}
	{"id": "r3", "action": "stats"}
	{"id": "r4", "action": "heatmap"}
	{"id": "r5", "action": "partial", "limit": 50}
	{"id": "r6", "action": "cloud", "limit": 100, "stem": true, "dark": true}
	{"id": "r7", "action": "lookup", "prefix": "pass", "limit": 10}
	{"id": "r8", "action": "health"}

Responses carry the elapsed time in microseconds under "t":

	{"id": "r7", "e": [{"w": "password", "c": 3}, {"w": "pass123", "c": 2}], "r": [1, 2], "n": 2, "t": 41}

Failures never stop the loop; they are answered with an ErrorResponse:

	{"id": "r3", "e": "no password list loaded", "c": 404}

Codes: 400 for malformed or unknown requests, 404 when there is nothing to
analyze, 500 for anything else. Requests are handled one at a time, in order.
*/
package server

import (
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/bastiangx/passcloud/pkg/stats"
)

// Actions understood by the server.
const (
	ActionLoad    = "load"
	ActionStats   = "stats"
	ActionHeatmap = "heatmap"
	ActionPartial = "partial"
	ActionCloud   = "cloud"
	ActionLookup  = "lookup"
	ActionHealth  = "health"
)

// Request is the single request shape; fields unused by an action are ignored.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Path   string `msgpack:"path,omitempty"`
	Text   string `msgpack:"text,omitempty"`
	Prefix string `msgpack:"prefix,omitempty"`
	Limit  int    `msgpack:"limit,omitempty"`
	Stem   bool   `msgpack:"stem,omitempty"`
	Dark   bool   `msgpack:"dark,omitempty"`
}

// HealthResponse reports liveness and whether a list is loaded.
type HealthResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Loaded bool   `msgpack:"loaded"`
}

// LoadResponse confirms a new list is active.
type LoadResponse struct {
	ID        string `msgpack:"id"`
	Source    string `msgpack:"source"`
	Total     int    `msgpack:"total"`
	Unique    int    `msgpack:"unique"`
	TimeTaken int64  `msgpack:"t"`
}

// StatsResponse carries the statistics summary.
type StatsResponse struct {
	ID        string         `msgpack:"id"`
	Stats     *stats.Summary `msgpack:"stats"`
	TimeTaken int64          `msgpack:"t"`
}

// HeatmapResponse carries the heatmap and the band labels of its columns.
type HeatmapResponse struct {
	ID        string          `msgpack:"id"`
	Bands     []string        `msgpack:"bands"`
	Heatmap   *heatmap.Result `msgpack:"heatmap"`
	TimeTaken int64           `msgpack:"t"`
}

// PartialResponse carries ranked partial-match phrases.
type PartialResponse struct {
	ID        string            `msgpack:"id"`
	Phrases   []partial.Phrase  `msgpack:"p"`
	StemUsage []partial.StemUse `msgpack:"s"`
	Extracted int               `msgpack:"x"`
	NoMatches bool              `msgpack:"none"`
	TimeTaken int64             `msgpack:"t"`
}

// CloudResponse carries the coloured word cloud list.
type CloudResponse struct {
	ID        string       `msgpack:"id"`
	Words     []cloud.Word `msgpack:"w"`
	Count     int          `msgpack:"n"`
	TimeTaken int64        `msgpack:"t"`
}

// LookupResponse lists passwords starting with the requested prefix, most
// frequent first. Ranks[i] is the 1-based rank of Entries[i].
type LookupResponse struct {
	ID        string         `msgpack:"id"`
	Entries   []corpus.Entry `msgpack:"e"`
	Ranks     []uint16       `msgpack:"r"`
	Count     int            `msgpack:"n"`
	TimeTaken int64          `msgpack:"t"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
