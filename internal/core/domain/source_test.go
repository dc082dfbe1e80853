package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRequest_ExactlyOne(t *testing.T) {
	tests := []struct {
		name string
		req  SourceRequest
	}{
		{"none", SourceRequest{}},
		{"text and web", SourceRequest{Text: "hello", WebURL: "https://example.com"}},
		{"text and gcs", SourceRequest{Text: "hello", GCSURI: "gs://b/o.pdf"}},
		{"web and gcs", SourceRequest{WebURL: "https://example.com", GCSURI: "gs://b/o.pdf"}},
		{"all three", SourceRequest{Text: "hello", WebURL: "https://example.com", GCSURI: "gs://b/o.pdf"}},
		{"text and alias", SourceRequest{Text: "hello", GCSPDFURI: "gs://b/o.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := tt.req.Source()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Nil(t, src)
		})
	}
}

func TestSourceRequest_Text(t *testing.T) {
	src, err := SourceRequest{Text: "The cat sat on the mat."}.Source()
	require.NoError(t, err)

	text, ok := src.(TextSource)
	require.True(t, ok)
	assert.Equal(t, "The cat sat on the mat.", text.Text)
	assert.Equal(t, SourceText, src.Kind())
	assert.Equal(t, "direct text", src.Identifier())
}

func TestSourceRequest_BlankText(t *testing.T) {
	_, err := SourceRequest{Text: "   \n\t"}.Source()
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSourceRequest_Web(t *testing.T) {
	src, err := SourceRequest{WebURL: "https://example.com/article?id=1"}.Source()
	require.NoError(t, err)

	web, ok := src.(WebSource)
	require.True(t, ok)
	assert.Equal(t, "example.com", web.URL.Host)
	assert.Equal(t, SourceWeb, src.Kind())
	assert.Equal(t, "https://example.com/article?id=1", src.Identifier())
}

func TestNewWebSource_Invalid(t *testing.T) {
	tests := []string{
		"example.com/no-scheme",
		"ftp://example.com/file.pdf",
		"/relative/path",
		"https://",
		"http://[::1",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := NewWebSource(raw)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestSourceRequest_Storage(t *testing.T) {
	src, err := SourceRequest{GCSURI: "gs://reports/2025/q1.pdf"}.Source()
	require.NoError(t, err)

	storage, ok := src.(StorageSource)
	require.True(t, ok)
	assert.Equal(t, "reports", storage.Bucket)
	assert.Equal(t, "2025/q1.pdf", storage.Object)
	assert.Equal(t, SourceStorage, src.Kind())
	assert.Equal(t, "gs://reports/2025/q1.pdf", src.Identifier())
}

func TestSourceRequest_StorageAlias(t *testing.T) {
	src, err := SourceRequest{GCSPDFURI: "gs://bucket/doc.pdf"}.Source()
	require.NoError(t, err)
	assert.Equal(t, SourceStorage, src.Kind())

	// Both spellings naming the same object is not ambiguous.
	src, err = SourceRequest{GCSURI: "gs://bucket/doc.pdf", GCSPDFURI: "gs://bucket/doc.pdf"}.Source()
	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/doc.pdf", src.Identifier())

	_, err = SourceRequest{GCSURI: "gs://bucket/a.pdf", GCSPDFURI: "gs://bucket/b.pdf"}.Source()
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNewStorageSource_Invalid(t *testing.T) {
	tests := []string{
		"s3://bucket/object.pdf",
		"gs://",
		"gs://bucket",
		"gs://bucket/",
		"gs:///object.pdf",
		"https://storage.googleapis.com/bucket/object.pdf",
	}

	for _, uri := range tests {
		t.Run(uri, func(t *testing.T) {
			_, err := NewStorageSource(uri)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}
