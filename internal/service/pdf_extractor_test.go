package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pdf-to-speech/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractorFor(src pageSource, timeout time.Duration) *PDFExtractor {
	e := NewPDFExtractor(NewMockLogger(), timeout)
	e.open = func(string) (pageSource, error) { return src, nil }
	return e
}

func TestPDFExtractor_SinglePageVisitsOnlyThatPage(t *testing.T) {
	src := &fakePages{pages: []string{"one", "two", "three", "four"}}

	out, err := extractorFor(src, 0).Extract(context.Background(), "doc.pdf", domain.SinglePage(3))
	require.NoError(t, err)

	assert.Equal(t, "three", out.Content)
	assert.Equal(t, 4, out.PageCount)
	assert.Equal(t, []int{3}, out.PagesRead)
	assert.Equal(t, []int{2}, src.visited)
	assert.True(t, src.isClosed())
}

func TestPDFExtractor_FullDocument(t *testing.T) {
	src := &fakePages{pages: []string{"  first  ", "\x00\x01", "third"}}

	out, err := extractorFor(src, 0).Extract(context.Background(), "doc.pdf", domain.FullDocument())
	require.NoError(t, err)

	assert.Equal(t, "first\n\nthird", out.Content)
	assert.Equal(t, []int{1, 2, 3}, out.PagesRead)
	assert.Equal(t, []int{2}, out.EmptyPages)
	assert.Equal(t, []int{0, 1, 2}, src.visited)
}

func TestPDFExtractor_OutOfRange(t *testing.T) {
	src := &fakePages{pages: []string{"only"}}

	_, err := extractorFor(src, 0).Extract(context.Background(), "doc.pdf", domain.SinglePage(2))

	var rangeErr *domain.PageRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 2, rangeErr.Page)
	assert.Equal(t, 1, rangeErr.PageCount)
	assert.Empty(t, src.visited)
	assert.True(t, src.isClosed())
}

func TestPDFExtractor_UnsetSelector(t *testing.T) {
	_, err := extractorFor(&fakePages{}, 0).Extract(context.Background(), "doc.pdf", domain.PageSelector{})
	assert.ErrorIs(t, err, domain.ErrNoSelector)
}

func TestPDFExtractor_PageError(t *testing.T) {
	src := &fakePages{pages: []string{"a", "b"}, errs: map[int]error{0: errors.New("bad stream")}}

	_, err := extractorFor(src, 0).Extract(context.Background(), "doc.pdf", domain.FullDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
	assert.Contains(t, err.Error(), "bad stream")
}

func TestPDFExtractor_PageTimeoutKeepsDocumentOpenUntilTextReturns(t *testing.T) {
	src := &fakePages{pages: []string{"x"}, block: make(chan struct{})}

	start := time.Now()
	_, err := extractorFor(src, 20*time.Millisecond).Extract(context.Background(), "doc.pdf", domain.SinglePage(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.Less(t, time.Since(start), 2*time.Second)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, src.isClosed(), "document closed while Text was still running")

	close(src.block)
	assert.Eventually(t, src.isClosed, time.Second, 5*time.Millisecond)
	assert.False(t, src.wasClosedEarly())
}

func TestPDFExtractor_CancelledPageKeepsDocumentOpenUntilTextReturns(t *testing.T) {
	src := &fakePages{pages: []string{"x", "y"}, block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src.onText = func(int) { cancel() }

	_, err := extractorFor(src, time.Minute).Extract(ctx, "doc.pdf", domain.FullDocument())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0}, src.visited)
	assert.False(t, src.isClosed())

	close(src.block)
	assert.Eventually(t, src.isClosed, time.Second, 5*time.Millisecond)
	assert.False(t, src.wasClosedEarly())
}

func TestPDFExtractor_ClosesAfterSuccess(t *testing.T) {
	src := &fakePages{pages: []string{"x"}}

	_, err := extractorFor(src, time.Minute).Extract(context.Background(), "doc.pdf", domain.SinglePage(1))
	require.NoError(t, err)
	assert.True(t, src.isClosed())
	assert.False(t, src.wasClosedEarly())
}

func TestPDFExtractor_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o600))

	out, err := NewPDFExtractor(NewMockLogger(), 0).Extract(context.Background(), path, domain.FullDocument())
	if err == nil {
		// MuPDF may repair garbage into an empty document; either way nothing is readable.
		assert.Empty(t, strings.TrimSpace(out.Content))
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"keeps whitespace controls", "a\tb\nc\r\n", "a\tb\nc\r\n"},
		{"drops NUL and bell", "a\x00b\x07c", "abc"},
		{"drops DEL and C1", "a\x7fb\u0085c", "abc"},
		{"drops invalid utf8", "ok\xff\xfe!", "ok!"},
		{"keeps unicode", "héllo 世界", "héllo 世界"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeText(tt.in))
		})
	}
}
