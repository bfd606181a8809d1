package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/passcloud/internal/logger"
	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/config"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/heatmap"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLookupLimit = 10

// Server answers msgpack requests against one Analyzer.
type Server struct {
	analyzer     *analysis.Analyzer
	limits       config.ServerConfig
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	log          *log.Logger
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(analyzer *analysis.Analyzer, limits config.ServerConfig) *Server {
	return NewServerWithIO(analyzer, limits, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w.
func NewServerWithIO(analyzer *analysis.Analyzer, limits config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		analyzer: analyzer,
		limits:   limits,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		log:      logger.New("server"),
	}
}

// Start answers requests until the input ends. A broken msgpack stream is
// returned as an error; bad requests inside a valid stream are not.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	s.send(HealthResponse{Status: "ready", Loaded: s.analyzer.Loaded()})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Reading request stream: %v", err)
			return fmt.Errorf("read request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Warnf("Malformed request: %v", err)
			s.sendError("", "malformed request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	start := time.Now()
	s.log.Debug("Processing request", "id", req.ID, "action", req.Action)

	switch req.Action {
	case ActionHealth:
		s.send(HealthResponse{ID: req.ID, Status: "ok", Loaded: s.analyzer.Loaded()})
	case ActionLoad:
		s.handleLoad(req, start)
	case ActionStats:
		summary, err := s.analyzer.Stats()
		if s.fail(req.ID, err) {
			return
		}
		s.send(StatsResponse{ID: req.ID, Stats: summary, TimeTaken: since(start)})
	case ActionHeatmap:
		h, err := s.analyzer.Heatmap()
		if s.fail(req.ID, err) {
			return
		}
		s.send(HeatmapResponse{ID: req.ID, Bands: bandLabels(), Heatmap: h, TimeTaken: since(start)})
	case ActionPartial:
		s.handlePartial(req, start)
	case ActionCloud:
		limit := capLimit(req.Limit, s.limits.MaxCloudWords)
		words, err := s.analyzer.Cloud(cloud.Options{StemMode: req.Stem, Limit: limit, Dark: req.Dark})
		if s.fail(req.ID, err) {
			return
		}
		s.send(CloudResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: since(start)})
	case ActionLookup:
		s.handleLookup(req, start)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

func (s *Server) handleLoad(req Request, start time.Time) {
	var info analysis.Info
	switch {
	case req.Path != "":
		var err error
		info, err = s.analyzer.LoadFile(req.Path)
		if s.fail(req.ID, err) {
			return
		}
	case req.Text != "":
		source := req.ID
		if source == "" {
			source = "inline"
		}
		info = s.analyzer.LoadText(req.Text, source)
	default:
		s.sendError(req.ID, "load needs 'path' or 'text'", 400)
		return
	}
	s.send(LoadResponse{
		ID:        req.ID,
		Source:    info.Source,
		Total:     info.TotalPasswords,
		Unique:    info.UniquePasswords,
		TimeTaken: since(start),
	})
}

func (s *Server) handlePartial(req Request, start time.Time) {
	res, err := s.analyzer.Partial()
	if s.fail(req.ID, err) {
		return
	}
	phrases := res.Phrases
	if limit := capLimit(req.Limit, s.limits.MaxPhrases); len(phrases) > limit {
		phrases = phrases[:limit]
	}
	s.send(PartialResponse{
		ID:        req.ID,
		Phrases:   phrases,
		StemUsage: res.StemUsage,
		Extracted: res.TotalExtracted,
		NoMatches: res.NoMatches(),
		TimeTaken: since(start),
	})
}

func (s *Server) handleLookup(req Request, start time.Time) {
	if req.Prefix == "" {
		s.sendError(req.ID, "missing 'prefix' parameter", 400)
		return
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLookupLimit
	}
	entries, err := s.analyzer.Lookup(req.Prefix, limit)
	if s.fail(req.ID, err) {
		return
	}
	s.send(LookupResponse{
		ID:        req.ID,
		Entries:   entries,
		Ranks:     utils.CreateRankList(len(entries)),
		Count:     len(entries),
		TimeTaken: since(start),
	})
}

// capLimit applies a server-side ceiling; a non-positive request means "up to the ceiling".
func capLimit(requested, ceiling int) int {
	if requested < 1 || requested > ceiling {
		return ceiling
	}
	return requested
}

func bandLabels() []string {
	labels := make([]string, len(heatmap.Bands))
	for i, b := range heatmap.Bands {
		labels[i] = b.Label
	}
	return labels
}

func since(start time.Time) int64 {
	return time.Since(start).Microseconds()
}

// fail answers err, if any, and reports whether it did.
func (s *Server) fail(id string, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, analysis.ErrNotLoaded):
		s.sendError(id, "no password list loaded", 404)
	case errors.Is(err, corpus.ErrNoData):
		s.sendError(id, "password list is empty", 404)
	case errors.Is(err, os.ErrNotExist):
		s.sendError(id, err.Error(), 404)
	default:
		s.log.Errorf("Request %s failed: %v", id, err)
		s.sendError(id, err.Error(), 500)
	}
	return true
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
