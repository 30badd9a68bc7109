package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubBackend struct {
	name string
	text string
	err  error
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Extract(string) (string, error) {
	return s.text, s.err
}

type stubRenderer struct {
	pages [][]byte
	err   error
}

func (s *stubRenderer) RenderPages(string) ([][]byte, error) {
	return s.pages, s.err
}

type stubRecognizer struct {
	text       string
	err        error
	calls      int
	maxRetries int
}

func (s *stubRecognizer) RecognizeImageWithRetry(_ context.Context, _ []byte, maxRetries int) (string, error) {
	s.calls++
	s.maxRetries = maxRetries
	return s.text, s.err
}

func TestExtract_StopsOnceTextIsSufficient(t *testing.T) {
	long := strings.Repeat("resume content ", 20)
	third := &stubBackend{name: "c", text: "should never run"}

	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", text: "short text"},
			&stubBackend{name: "b", text: long},
			third,
		},
		nil, nil, 1,
	)

	result := e.Extract(context.Background(), "resume.pdf")

	assert.Equal(t, long, result.Text)
	assert.Equal(t, "b", result.Method)
}

func TestExtract_KeepsLongerOutputAcrossBackends(t *testing.T) {
	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", text: "twenty characters..."},
			&stubBackend{name: "b", text: "ten chars."},
		},
		nil, nil, 1,
	)

	result := e.Extract(context.Background(), "resume.pdf")

	assert.Equal(t, "twenty characters...", result.Text)
	assert.Equal(t, "a", result.Method)
}

func TestExtract_BackendErrorDoesNotAbortChain(t *testing.T) {
	long := strings.Repeat("good output ", 10)

	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", err: errors.New("corrupt xref table")},
			&stubBackend{name: "b", text: long},
		},
		nil, nil, 1,
	)

	result := e.Extract(context.Background(), "resume.pdf")

	assert.Equal(t, long, result.Text)
}

func TestExtract_OCRTriggeredOnlyWhenAllBackendsShort(t *testing.T) {
	ocrText := strings.Repeat("recognized text ", 10)
	recognizer := &stubRecognizer{text: ocrText}

	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", text: "tiny"},
			&stubBackend{name: "b", text: "also tiny"},
		},
		&stubRenderer{pages: [][]byte{{1}, {2}}},
		recognizer,
		1,
	)

	result := e.Extract(context.Background(), "scanned.pdf")

	assert.Equal(t, 2, recognizer.calls, "one recognition call per page")
	assert.Equal(t, "ocr", result.Method)
	assert.Contains(t, result.Text, "recognized text")
}

func TestExtract_OCRSkippedWhenParserSucceeds(t *testing.T) {
	recognizer := &stubRecognizer{text: "should not be used"}

	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", text: strings.Repeat("parsed ", 10)},
		},
		&stubRenderer{pages: [][]byte{{1}}},
		recognizer,
		1,
	)

	e.Extract(context.Background(), "resume.pdf")

	assert.Equal(t, 0, recognizer.calls)
}

func TestExtract_OCRCarriesConfiguredRetryBudget(t *testing.T) {
	recognizer := &stubRecognizer{text: strings.Repeat("recognized ", 10)}

	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", text: "tiny"},
		},
		&stubRenderer{pages: [][]byte{{1}}},
		recognizer,
		4,
	)

	e.Extract(context.Background(), "scanned.pdf")

	assert.Equal(t, 4, recognizer.maxRetries)
}

func TestExtract_AllBackendsFailYieldsEmptyText(t *testing.T) {
	e := NewExtractorServiceWithBackends(
		[]ExtractionBackend{
			&stubBackend{name: "a", err: errors.New("boom")},
			&stubBackend{name: "b", err: errors.New("boom")},
		},
		&stubRenderer{err: errors.New("render failed")},
		&stubRecognizer{},
		1,
	)

	result := e.Extract(context.Background(), "broken.pdf")

	assert.Equal(t, "", result.Text)
	assert.Equal(t, "none", result.Method)
}
