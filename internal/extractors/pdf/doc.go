// Package pdf provides an Extractor implementation for PDF documents.
//
// Text is read page by page with github.com/ledongthuc/pdf. A page that
// cannot be decoded contributes no text; the document only fails when it
// cannot be opened at all or yields no text on any page.
package pdf
