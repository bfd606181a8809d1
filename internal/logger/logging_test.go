package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterUsesPrefixAndLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	log.SetLevel(log.InfoLevel)
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "server")

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("loaded", "path", "list.txt")
	assert.Contains(t, buf.String(), "server")
	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "list.txt")
}

func TestSetup(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
