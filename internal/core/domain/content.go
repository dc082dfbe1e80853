package domain

import (
	"bytes"
	"mime"
	"net/url"
	"path"
	"strings"
)

// ContentClass is the closed set of outcomes of content classification.
type ContentClass int

const (
	// ContentUnsupported is content that is neither HTML nor PDF.
	ContentUnsupported ContentClass = iota

	// ContentHTML is an HTML (or XHTML) document.
	ContentHTML

	// ContentPDF is a PDF document.
	ContentPDF
)

// String returns the class name.
func (c ContentClass) String() string {
	switch c {
	case ContentHTML:
		return "html"
	case ContentPDF:
		return "pdf"
	default:
		return "unsupported"
	}
}

// pdfMagic is the signature every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// htmlMarkers are lowercase prefixes that identify HTML when the declared
// type is missing or generic. Checked after leading whitespace and BOM.
var htmlMarkers = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<body"),
	[]byte("<article"),
	[]byte("<main"),
	[]byte("<title"),
	[]byte("<p>"),
	[]byte("<div"),
	[]byte("<!--"),
}

// sniffLimit bounds how many bytes are inspected for signatures.
const sniffLimit = 1024

// ClassifyContent decides whether fetched bytes are HTML, PDF or unsupported.
// The byte signature wins over the declared type, so a PDF served as
// text/html is still treated as PDF. rawURL is only consulted for generic
// or missing declared types.
func ClassifyContent(contentType string, body []byte, rawURL string) ContentClass {
	head := sniffHead(body)
	if bytes.HasPrefix(head, pdfMagic) {
		return ContentPDF
	}

	mediaType := parseMediaType(contentType)
	switch mediaType {
	case "application/pdf", "application/x-pdf":
		return ContentPDF
	case "text/html", "application/xhtml+xml":
		return ContentHTML
	case "", "application/octet-stream", "text/plain", "binary/octet-stream":
		if looksLikeHTML(head) {
			return ContentHTML
		}
		switch urlExtension(rawURL) {
		case ".pdf":
			return ContentPDF
		case ".html", ".htm", ".xhtml":
			return ContentHTML
		}
	}
	return ContentUnsupported
}

// sniffHead returns the first bytes of body with a UTF-8 BOM and leading
// whitespace removed.
func sniffHead(body []byte) []byte {
	b := body
	if len(b) > sniffLimit {
		b = b[:sniffLimit]
	}
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	return bytes.TrimLeft(b, " \t\r\n\f")
}

func parseMediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to the text before any parameters.
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func looksLikeHTML(head []byte) bool {
	lower := bytes.ToLower(head)
	for _, marker := range htmlMarkers {
		if bytes.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

func urlExtension(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}
