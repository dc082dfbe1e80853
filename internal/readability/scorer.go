package readability

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/logger"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

const (
	// shortTextWords is the length below which scores are flagged as unreliable.
	shortTextWords = 100

	// spacheMinWords is the minimum document length for the Spache formula.
	spacheMinWords = 100

	// smogMinSentences is the minimum sentence count for SMOG.
	smogMinSentences = 3

	// linsearSampleWords is the number of leading words Linsear Write reads.
	linsearSampleWords = 100
)

// Scorer computes a ScoreReport for normalised text.
type Scorer struct{}

// New creates a new Scorer.
func New() *Scorer {
	return &Scorer{}
}

// stats holds the counts every formula draws on.
type stats struct {
	tokens     []string // whitespace tokens with punctuation intact
	words      []string
	wordCount  int
	sentences  int
	syllables  int
	chars      int
	letters    int
	polysyl    int // words of three or more syllables
	difficult  int // Dale-Chall: unfamiliar words of two or more syllables
	complexFog int // Gunning Fog: unfamiliar words of three or more syllables
	spacheHard int // words not on the Spache list
}

func (s stats) asl() float64 {
	return float64(s.wordCount) / float64(s.sentences)
}

func (s stats) asw() float64 {
	return float64(s.syllables) / float64(s.wordCount)
}

// Score computes all metrics for text. It returns ErrInvalidInput when the
// text is blank or contains no words. Metrics whose preconditions are not
// met are nil.
func (sc *Scorer) Score(text string) (*domain.ScoreReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}

	st := collect(text)
	if st.wordCount == 0 {
		return nil, fmt.Errorf("%w: text contains no words", domain.ErrInvalidInput)
	}
	if st.wordCount < shortTextWords {
		logger.Warn("Text has %d words (fewer than %d); scores may be unreliable", st.wordCount, shortTextWords)
	}

	report := &domain.ScoreReport{
		FleschReadingEase:         ptr(fleschReadingEase(st)),
		FleschKincaidGrade:        ptr(fleschKincaidGrade(st)),
		GunningFog:                ptr(gunningFog(st)),
		AutomatedReadabilityIndex: ptr(automatedReadabilityIndex(st)),
		ColemanLiauIndex:          ptr(colemanLiauIndex(st)),
		LinsearWriteFormula:       ptr(linsearWrite(st)),
		DaleChallReadabilityScore: ptr(daleChall(st)),
		SyllableCount:             st.syllables,
		WordCount:                 st.wordCount,
		SentenceCount:             st.sentences,
	}
	if st.sentences >= smogMinSentences {
		report.SMOGIndex = ptr(smogIndex(st))
	}
	if st.wordCount >= spacheMinWords {
		report.Spache = ptr(spache(st))
	} else {
		logger.Debug("Spache not applicable: %d words, %d required", st.wordCount, spacheMinWords)
	}
	report.TextStandard = ptr(textStandard(report))

	roundAll(report)
	return report, nil
}

func collect(text string) stats {
	ws := words(text)
	st := stats{
		tokens:    strings.Fields(text),
		words:     ws,
		wordCount: len(ws),
		sentences: sentenceCount(text),
		chars:     charCount(text),
		letters:   letterCount(text),
	}
	for _, w := range ws {
		n := syllables(w)
		st.syllables += n

		lw := normalizeWord(w)
		familiar := isDaleChallEasy(lw)
		if n >= 3 {
			st.polysyl++
			if !familiar {
				st.complexFog++
			}
		}
		if n >= 2 && !familiar {
			st.difficult++
		}
		if !isSpacheEasy(lw) {
			st.spacheHard++
		}
	}
	return st
}

func fleschReadingEase(st stats) float64 {
	return 206.835 - 1.015*st.asl() - 84.6*st.asw()
}

func fleschKincaidGrade(st stats) float64 {
	return 0.39*st.asl() + 11.8*st.asw() - 15.59
}

func gunningFog(st stats) float64 {
	pct := 100 * float64(st.complexFog) / float64(st.wordCount)
	return 0.4 * (st.asl() + pct)
}

func smogIndex(st stats) float64 {
	return 1.043*math.Sqrt(float64(st.polysyl)*30/float64(st.sentences)) + 3.1291
}

func automatedReadabilityIndex(st stats) float64 {
	return 4.71*float64(st.chars)/float64(st.wordCount) + 0.5*st.asl() - 21.43
}

func colemanLiauIndex(st stats) float64 {
	l := 100 * float64(st.letters) / float64(st.wordCount)
	s := 100 * float64(st.sentences) / float64(st.wordCount)
	return 0.0588*l - 0.296*s - 15.8
}

// linsearWrite scores the first 100 whitespace tokens: easy words (fewer
// than three syllables) count 1, hard words count 3. Sentences are counted
// on the sample with its punctuation kept.
func linsearWrite(st stats) float64 {
	sample := st.tokens
	if len(sample) > linsearSampleWords {
		sample = sample[:linsearSampleWords]
	}
	total := 0
	for _, tok := range sample {
		w := strings.TrimSpace(stripPunctuation(tok))
		if w == "" {
			continue
		}
		if syllables(w) < 3 {
			total++
		} else {
			total += 3
		}
	}
	r := float64(total) / float64(sentenceCount(strings.Join(sample, " ")))
	if r <= 20 {
		r -= 2
	}
	return r / 2
}

func daleChall(st stats) float64 {
	pct := 100 * float64(st.difficult) / float64(st.wordCount)
	score := 0.1579*pct + 0.0496*st.asl()
	if pct > 5 {
		score += 3.6365
	}
	return score
}

// spache uses the revised formula.
func spache(st stats) float64 {
	pct := 100 * float64(st.spacheHard) / float64(st.wordCount)
	return 0.121*st.asl() + 0.082*pct + 0.659
}

// textStandard returns the most common grade level among the other
// formulas. Each grade formula votes for its rounded value and its
// ceiling; Flesch Reading Ease votes through its grade band. Ties go to
// the earliest vote.
func textStandard(r *domain.ScoreReport) float64 {
	var votes []int
	vote := func(v *float64) {
		if v == nil {
			return
		}
		votes = append(votes, int(math.Round(*v)), int(math.Ceil(*v)))
	}

	vote(r.FleschKincaidGrade)
	votes = append(votes, fleschGrades(*r.FleschReadingEase)...)
	vote(r.SMOGIndex)
	vote(r.ColemanLiauIndex)
	vote(r.AutomatedReadabilityIndex)
	vote(r.DaleChallReadabilityScore)
	vote(r.LinsearWriteFormula)
	vote(r.GunningFog)

	counts := make(map[int]int, len(votes))
	for _, g := range votes {
		counts[g]++
	}
	best, bestCount := 0, 0
	for _, g := range votes {
		if counts[g] > bestCount {
			best, bestCount = g, counts[g]
		}
	}
	return float64(best)
}

// fleschGrades maps a Flesch Reading Ease score onto US grade levels.
func fleschGrades(score float64) []int {
	switch {
	case score >= 90:
		return []int{5}
	case score >= 80:
		return []int{6}
	case score >= 70:
		return []int{7}
	case score >= 60:
		return []int{8, 9}
	case score >= 50:
		return []int{10}
	case score >= 40:
		return []int{11}
	case score >= 30:
		return []int{12}
	default:
		return []int{13}
	}
}

func ptr(v float64) *float64 {
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundAll(r *domain.ScoreReport) {
	for _, p := range []*float64{
		r.FleschReadingEase, r.FleschKincaidGrade, r.GunningFog, r.SMOGIndex,
		r.AutomatedReadabilityIndex, r.ColemanLiauIndex, r.LinsearWriteFormula,
		r.DaleChallReadabilityScore, r.TextStandard, r.Spache,
	} {
		if p != nil {
			*p = round2(*p)
		}
	}
}
