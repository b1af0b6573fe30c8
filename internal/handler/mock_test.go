package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pdf-to-speech/internal/domain"
)

// MockHandlerLogger records log messages for handler package tests.
type MockHandlerLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             { l.record(msg) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) { l.record(msg) }
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            { l.record(msg) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             { l.record(msg) }

func (l *MockHandlerLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// MockConversionService is a mock implementation of domain.ConversionService
type MockConversionService struct {
	ConvertFunc  func(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
	ResolveFunc  func(name string) (*domain.AudioArtifact, error)
	calls        int
	lastRequest  domain.ConversionRequest
	lastDocument []byte
}

func (m *MockConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	m.calls++
	m.lastRequest = req
	if req.Document != nil {
		m.lastDocument, _ = io.ReadAll(req.Document)
	}
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, req)
	}
	return &domain.ConversionResult{
		Artifact:   &domain.AudioArtifact{Name: "0123456789abcdef0123456789abcdef.mp3", ContentType: "audio/mpeg", Size: 10},
		Selector:   req.Selector.String(),
		Language:   "en",
		PageCount:  3,
		Characters: 11,
	}, nil
}

func (m *MockConversionService) ResolveArtifact(name string) (*domain.AudioArtifact, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(name)
	}
	return nil, domain.ErrNotFound
}

type formField struct {
	name, value string
}

// newUploadRequest builds a multipart POST to /api/convert.
func newUploadRequest(t *testing.T, fileField, filename string, content []byte, fields ...formField) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
