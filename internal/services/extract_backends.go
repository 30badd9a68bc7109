package services

import (
	"bytes"
	"fmt"
	"strings"

	dslipakpdf "github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"
	ledongpdf "github.com/ledongthuc/pdf"
)

// ExtractionBackend is one strategy for turning a document file into raw
// text. Backends are tried in a fixed priority order by the extractor; a
// backend error never aborts the chain.
type ExtractionBackend interface {
	Name() string
	Extract(path string) (string, error)
}

// layoutBackend walks PDF pages with ledongthuc/pdf and concatenates their
// plain text. Primary backend: cheap and good on text-native PDFs.
type layoutBackend struct{}

func NewLayoutBackend() ExtractionBackend {
	return &layoutBackend{}
}

func (b *layoutBackend) Name() string { return "pdf-layout" }

func (b *layoutBackend) Extract(path string) (string, error) {
	f, r, err := ledongpdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

// plainTextBackend uses dslipak/pdf's whole-document text stream. Its
// content-stream walker recovers text on some files the layout backend
// truncates.
type plainTextBackend struct{}

func NewPlainTextBackend() ExtractionBackend {
	return &plainTextBackend{}
}

func (b *plainTextBackend) Name() string { return "pdf-plaintext" }

func (b *plainTextBackend) Extract(path string) (string, error) {
	r, err := dslipakpdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to drain plain text: %w", err)
	}

	return buf.String(), nil
}

// renderBackend extracts text through MuPDF's renderer (go-fitz), which
// handles malformed cross-reference tables and exotic encodings better than
// the pure-Go parsers.
type renderBackend struct{}

func NewRenderBackend() ExtractionBackend {
	return &renderBackend{}
}

func (b *renderBackend) Name() string { return "pdf-render" }

func (b *renderBackend) Extract(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}
