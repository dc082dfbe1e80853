// Package readability computes readability metrics for plain text.
//
// Counting follows the conventions of the textstat family of tools so that
// scores are comparable with them: words are whitespace tokens with
// punctuation removed, sentences are terminator-delimited segments of more
// than two words, and syllables come from an English vowel-group heuristic.
//
// Word lists for the Dale-Chall and Spache formulas are embedded.
package readability
