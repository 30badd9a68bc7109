package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// minSufficientChars is the trimmed length at which extracted text is
// considered good enough to stop trying further backends. Below it the
// document is treated as degraded input by the scorer, not as an error.
const minSufficientChars = 50

// ocrRenderDPI is the rasterization density for the recognition fallback.
// 300 DPI is the commonly recommended input resolution for OCR engines.
const ocrRenderDPI = 300

// ImageRecognizer maps a rendered page image to text. The OCR engine itself
// is an external capability; here it is backed by Gemini vision. Recognition
// goes over the network, so the call carries a retry budget.
type ImageRecognizer interface {
	RecognizeImageWithRetry(ctx context.Context, imagePNG []byte, maxRetries int) (string, error)
}

// PageRenderer rasterizes a document's pages to PNG images for the
// recognition fallback.
type PageRenderer interface {
	RenderPages(path string) ([][]byte, error)
}

// ExtractionResult carries the raw text and, for diagnostics only, the
// backend that produced it.
type ExtractionResult struct {
	Text   string
	Method string
}

// ExtractorService drives the backend chain: each backend is tried in
// order, the longest output wins, and the chain stops early once a backend
// clears the sufficiency threshold. Optical recognition runs last, and only
// when every parser came up short.
type ExtractorService interface {
	Extract(ctx context.Context, path string) ExtractionResult
}

type extractorService struct {
	backends   []ExtractionBackend
	renderer   PageRenderer
	recognizer ImageRecognizer
	maxRetries int
}

// NewExtractorService builds the default chain. recognizer may be nil, in
// which case the OCR fallback is skipped.
func NewExtractorService(recognizer ImageRecognizer, maxRetries int) ExtractorService {
	return NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			NewLayoutBackend(),
			NewPlainTextBackend(),
			NewRenderBackend(),
		},
		NewFitzPageRenderer(),
		recognizer,
		maxRetries,
	)
}

func NewExtractorServiceWithBackends(backends []ExtractionBackend, renderer PageRenderer, recognizer ImageRecognizer, maxRetries int) ExtractorService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &extractorService{
		backends:   backends,
		renderer:   renderer,
		recognizer: recognizer,
		maxRetries: maxRetries,
	}
}

func (e *extractorService) Extract(ctx context.Context, path string) ExtractionResult {
	best := ExtractionResult{Method: "none"}

	for _, backend := range e.backends {
		text, err := backend.Extract(path)
		if err != nil {
			log.Printf("⚠️  Extraction backend %s failed for %s: %v", backend.Name(), path, err)
			continue
		}

		if len(text) > len(best.Text) {
			best = ExtractionResult{Text: text, Method: backend.Name()}
		}

		if sufficientText(best.Text) {
			return best
		}
	}

	if e.recognizer != nil && e.renderer != nil {
		if text, err := e.extractViaOCR(ctx, path); err != nil {
			log.Printf("⚠️  OCR fallback failed for %s: %v", path, err)
		} else if len(text) > len(best.Text) {
			best = ExtractionResult{Text: text, Method: "ocr"}
		}
	}

	return best
}

// extractViaOCR renders each page to a raster image and runs the
// recognition oracle over it, concatenating the per-page output.
func (e *extractorService) extractViaOCR(ctx context.Context, path string) (string, error) {
	pages, err := e.renderer.RenderPages(path)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for i, page := range pages {
		text, err := e.recognizer.RecognizeImageWithRetry(ctx, page, e.maxRetries)
		if err != nil {
			log.Printf("⚠️  Recognition failed on page %d of %s: %v", i+1, path, err)
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func sufficientText(text string) bool {
	return len(strings.TrimSpace(text)) >= minSufficientChars
}

// fitzPageRenderer rasterizes pages through MuPDF at the fixed OCR DPI.
type fitzPageRenderer struct{}

func NewFitzPageRenderer() PageRenderer {
	return &fitzPageRenderer{}
}

func (r *fitzPageRenderer) RenderPages(path string) ([][]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages [][]byte
	for page := 0; page < doc.NumPage(); page++ {
		img, err := doc.ImageDPI(page, ocrRenderDPI)
		if err != nil {
			log.Printf("⚠️  Failed to render page %d of %s: %v", page+1, path, err)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			log.Printf("⚠️  Failed to encode page %d of %s: %v", page+1, path, err)
			continue
		}

		pages = append(pages, buf.Bytes())
	}

	return pages, nil
}
