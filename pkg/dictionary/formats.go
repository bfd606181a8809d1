package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the file formats passcloud understands
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // one entry per line
	FormatStems               // binary stem list
	FormatSnapshot            // binary corpus frequency table
)

// FormatInfo contains metadata about a file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

// maxHeaderCount is the sanity bound for binary entry-count headers.
const maxHeaderCount = 50_000_000

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text List",
		Extensions:  []string{".txt", ".lst"},
		MinSize:     0,
	},
	FormatStems: {
		Format:      FormatStems,
		Description: "Binary Stem Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // int32 count header
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Corpus Snapshot",
		Extensions:  []string{".pcs"},
		MinSize:     8, // int32 entry count + int32 total lines
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !hasExtension(formatInfo, ext) {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatStems || expectedFormat == FormatSnapshot {
		return validateBinaryHeader(filename)
	}
	return nil
}

func hasExtension(info FormatInfo, ext string) bool {
	for _, e := range info.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// validateBinaryHeader checks the leading int32 entry count
func validateBinaryHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if count < 0 {
		return fmt.Errorf("invalid entry count in %s: %d (negative)", filename, count)
	}
	if count > maxHeaderCount {
		return fmt.Errorf("suspicious entry count in %s: %d (too large)", filename, count)
	}

	log.Debugf("Binary file %s validated: %d entries", filename, count)
	return nil
}

// DetectFileFormat detects the format of a file from its extension and header
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range []FileFormat{FormatSnapshot, FormatStems, FormatText} {
		if !hasExtension(supportedFormats[format], ext) {
			continue
		}
		if err := ValidateFileFormat(filename, format); err != nil {
			return FormatUnknown, err
		}
		return format, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
