// Package cli runs the interactive prompt for exploring a loaded password list.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/passcloud/internal/logger"
	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/config"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/dictionary"
	"github.com/bastiangx/passcloud/pkg/render"
	"github.com/charmbracelet/log"
)

const helpText = `commands:
  stats            statistics summary
  heatmap          length × frequency heatmap
  partial          partial-match phrases
  cloud            word cloud list
  stem on|off      toggle stem mode for the cloud
  load <path>      analyze another list (.txt or .pcs)
  stems <path>     use another stem dictionary (.txt or .bin)
  help             this text
  quit             leave
anything else lists loaded passwords starting with it`

// InputHandler reads commands and prefixes from a reader and answers on a
// writer. Limits and theme come from the loaded config.
type InputHandler struct {
	analyzer *analysis.Analyzer
	theme    render.Theme
	in       io.Reader
	out      io.Writer
	log      *log.Logger

	minPrefixLength int
	maxPrefixLength int
	lookupLimit     int
	cloudLimit      int
	stemMode        bool
	requestCount    int
}

// NewInputHandler creates a handler over analyzer using cfg's cli, cloud and render sections.
func NewInputHandler(analyzer *analysis.Analyzer, cfg *config.Config, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		analyzer:        analyzer,
		theme:           render.NewTheme(cfg.Render.DarkMode, cfg.Render.BarWidth),
		in:              in,
		out:             out,
		log:             logger.New("cli"),
		minPrefixLength: cfg.CLI.MinPrefix,
		maxPrefixLength: cfg.CLI.MaxPrefix,
		lookupLimit:     cfg.CLI.LookupLimit,
		cloudLimit:      cfg.Cloud.MaxWords,
		stemMode:        cfg.Cloud.StemMode,
	}
}

// Start runs the prompt until quit or end of input.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, h.theme.Title.Render("PassCloud interactive"))
	fmt.Fprintln(h.out, h.theme.Dim.Render("type a command or a prefix, 'help' for commands (Ctrl+D to exit)"))

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	start := time.Now()
	defer func() {
		h.log.Debugf("Took [ %v ] for %q", time.Since(start), line)
	}()

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "help":
		fmt.Fprintln(h.out, helpText)
	case "stats":
		s, err := h.analyzer.Stats()
		if h.report(err) {
			render.TextStats(h.out, s, h.theme)
		}
	case "heatmap":
		r, err := h.analyzer.Heatmap()
		if h.report(err) {
			render.TextHeatmap(h.out, r, h.theme)
		}
	case "partial":
		p, err := h.analyzer.Partial()
		if h.report(err) {
			render.TextPartial(h.out, p, h.theme, 0)
		}
	case "cloud":
		words, err := h.analyzer.Cloud(cloud.Options{StemMode: h.stemMode, Limit: h.cloudLimit, Dark: h.theme.Dark})
		if h.report(err) {
			render.TextCloud(h.out, words, h.theme)
		}
	case "stem":
		h.handleStem(arg)
	case "load":
		h.handleLoad(arg)
	case "stems":
		h.handleStems(arg)
	default:
		h.handleLookup(line)
	}
}

// report prints err for the user and returns whether the caller may continue.
func (h *InputHandler) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, analysis.ErrNotLoaded):
		fmt.Fprintln(h.out, h.theme.Warning.Render("no list loaded, use: load <path>"))
	case errors.Is(err, corpus.ErrNoData):
		fmt.Fprintln(h.out, h.theme.Warning.Render("the loaded list has no passwords"))
	default:
		h.log.Error("Request failed", "err", err)
		fmt.Fprintln(h.out, h.theme.Warning.Render(err.Error()))
	}
	return false
}

func (h *InputHandler) handleStem(arg string) {
	switch arg {
	case "on":
		h.stemMode = true
	case "off":
		h.stemMode = false
	case "":
	default:
		fmt.Fprintln(h.out, h.theme.Warning.Render("usage: stem on|off"))
		return
	}
	state := "off"
	if h.stemMode {
		state = "on"
	}
	fmt.Fprintf(h.out, "stem mode %s\n", h.theme.Value.Render(state))
}

func (h *InputHandler) handleLoad(path string) {
	if path == "" {
		fmt.Fprintln(h.out, h.theme.Warning.Render("usage: load <path>"))
		return
	}
	info, err := h.analyzer.LoadFile(path)
	if !h.report(err) {
		return
	}
	fmt.Fprintf(h.out, "loaded %s: %s lines, %s unique\n",
		h.theme.Label.Render(info.Source),
		h.theme.Value.Render(utils.FormatWithCommas(info.TotalPasswords)),
		h.theme.Value.Render(utils.FormatWithCommas(info.UniquePasswords)))
}

func (h *InputHandler) handleStems(path string) {
	if path == "" {
		fmt.Fprintln(h.out, h.theme.Warning.Render("usage: stems <path>"))
		return
	}
	stems, err := dictionary.LoadStems(path)
	if !h.report(err) {
		return
	}
	h.analyzer.SetStems(stems)
	fmt.Fprintf(h.out, "using %s stems from %s\n",
		h.theme.Value.Render(fmt.Sprint(stems.Len())), h.theme.Label.Render(path))
}

func (h *InputHandler) handleLookup(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		fmt.Fprintln(h.out, h.theme.Warning.Render(fmt.Sprintf("prefix too short: %s", prefix)))
		return
	}
	if h.maxPrefixLength > 0 && n > h.maxPrefixLength {
		fmt.Fprintln(h.out, h.theme.Warning.Render(fmt.Sprintf("prefix too long: %s", prefix)))
		return
	}

	entries, err := h.analyzer.Lookup(prefix, h.lookupLimit)
	if !h.report(err) {
		return
	}
	if len(entries) == 0 {
		fmt.Fprintf(h.out, "no passwords start with '%s'\n", prefix)
		return
	}

	total, err := h.analyzer.PrefixTotal(prefix)
	if !h.report(err) {
		return
	}

	fmt.Fprintf(h.out, "found %d passwords starting with '%s' (%s occurrences):\n",
		len(entries), prefix, utils.FormatWithCommas(total))
	for i, e := range entries {
		fmt.Fprintf(h.out, "%2d. %-40s %s\n", i+1, h.theme.Label.Render(e.Word),
			h.theme.Count.Render(fmt.Sprintf("(count: %8s)", utils.FormatWithCommas(e.Count))))
	}
}
