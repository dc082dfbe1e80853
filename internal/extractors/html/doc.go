// Package html provides an Extractor implementation for HTML documents.
// It locates the main content of a page, strips navigation and other
// boilerplate, and returns the remaining text with paragraph breaks kept.
package html
