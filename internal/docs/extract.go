// Package docs handles document text extraction for the document-analysis
// pipeline. Extraction is extension-dispatched through a registry so binary
// formats can plug in without touching callers.
package docs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ritik-gupta001/nexalyze/models"
)

// Extractor converts one document format to plain text.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// Registry maps lowercase file extensions (with dot) to extractors.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry returns a registry with the plain-text extractor registered
// for .txt.
func NewRegistry() *Registry {
	r := &Registry{byExt: map[string]Extractor{}}
	r.Register(".txt", TextExtractor{})
	return r
}

// Register binds an extractor to an extension.
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Supported reports whether the filename's extension has an extractor. Used
// at the API boundary to reject uploads before a task record exists.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions lists the registered extensions for error messages.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// Extract dispatches on the filename's extension.
func (r *Registry) Extract(content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: file type %q", models.ErrUnsupportedInput, ext)
	}
	text, err := e.Extract(content)
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", filename, err)
	}
	slog.Info("extracted document text", "filename", filename, "chars", len(text))
	return text, nil
}

// TextExtractor reads plain text, dropping invalid UTF-8 bytes.
type TextExtractor struct{}

func (TextExtractor) Extract(content []byte) (string, error) {
	return strings.ToValidUTF8(string(content), ""), nil
}

// ChunkText splits text into overlapping windows for piecewise processing.
// An overlap at or above the chunk size is clamped to keep the scan moving.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []string
	for start := 0; start < len(text); start = start + chunkSize - overlap {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
