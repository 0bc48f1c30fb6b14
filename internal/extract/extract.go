// Package extract pulls best-effort plain text out of uploaded
// documents so it can seed a generation request. The contract is
// narrow: bytes in, plain text out, empty text plus a logged reason on
// failure. Images are never OCR'd locally — they pass through as
// attachments for multimodal models.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"katooh/internal/llm"
)

// Kind identifies a supported source document type.
type Kind string

const (
	KindText  Kind = "text"
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindImage Kind = "image"
)

// imageMIMEs maps image file extensions to their media types.
var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// KindForFile maps a file name to its Kind via the extension.
func KindForFile(name string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt", ".md":
		return KindText, true
	case ".pdf":
		return KindPDF, true
	case ".docx":
		return KindDOCX, true
	}
	if _, ok := imageMIMEs[ext]; ok {
		return KindImage, true
	}
	return "", false
}

// Input is what a document contributes to a generation request:
// extracted plain text, or image attachments, never both.
type Input struct {
	Text   string
	Images []llm.Image
}

// Empty reports whether extraction produced nothing usable.
func (in Input) Empty() bool {
	return in.Text == "" && len(in.Images) == 0
}

// Extractor converts uploaded documents into generation input.
type Extractor struct {
	logger *zap.Logger
}

// New creates an Extractor logging failures to the given logger.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// FromFile reads and extracts a document from disk. An unreadable file
// or unsupported extension is an error; a readable document that yields
// no text is the best-effort empty Input, with the reason logged.
func (e *Extractor) FromFile(path string) (Input, error) {
	kind, ok := KindForFile(path)
	if !ok {
		return Input{}, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read document: %w", err)
	}

	return e.FromBytes(filepath.Base(path), data, kind), nil
}

// FromBytes extracts from in-memory document bytes. Best-effort: on
// failure it logs the reason and returns the empty Input rather than an
// error, so a bad document degrades instead of aborting the caller.
func (e *Extractor) FromBytes(name string, data []byte, kind Kind) Input {
	switch kind {
	case KindText:
		return Input{Text: string(data)}

	case KindPDF:
		text, err := pdfText(data)
		if err != nil {
			e.logger.Warn("pdf text extraction failed",
				zap.String("document", name), zap.Error(err))
			return Input{}
		}
		return Input{Text: text}

	case KindDOCX:
		text, err := docxText(data)
		if err != nil {
			e.logger.Warn("docx text extraction failed",
				zap.String("document", name), zap.Error(err))
			return Input{}
		}
		return Input{Text: text}

	case KindImage:
		mime := imageMIMEs[strings.ToLower(filepath.Ext(name))]
		if mime == "" {
			e.logger.Warn("unrecognized image type",
				zap.String("document", name))
			return Input{}
		}
		return Input{Images: []llm.Image{{MIME: mime, Data: data}}}
	}

	e.logger.Warn("unknown document kind",
		zap.String("document", name), zap.String("kind", string(kind)))
	return Input{}
}

// pdfText extracts the text layer of a PDF. Layout analysis and OCR of
// scanned pages are out of scope; a PDF without a text layer yields
// empty text.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text layer: %w", err)
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(string(text)), nil
}
