package domain

// ScoreReport holds readability metrics and basic counts for one text.
// A nil metric means "not applicable": the formula's preconditions were
// not met (e.g. Spache needs at least 100 words). It is never an error.
type ScoreReport struct {
	FleschReadingEase         *float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        *float64 `json:"flesch_kincaid_grade"`
	GunningFog                *float64 `json:"gunning_fog"`
	SMOGIndex                 *float64 `json:"smog_index"`
	AutomatedReadabilityIndex *float64 `json:"automated_readability_index"`
	ColemanLiauIndex          *float64 `json:"coleman_liau_index"`
	LinsearWriteFormula       *float64 `json:"linsear_write_formula"`
	DaleChallReadabilityScore *float64 `json:"dale_chall_readability_score"`
	TextStandard              *float64 `json:"text_standard"`
	Spache                    *float64 `json:"spache"`
	SyllableCount             int      `json:"syllable_count"`
	WordCount                 int      `json:"word_count"`
	SentenceCount             int      `json:"sentence_count"`
}

// MetricNames lists metric keys in report order.
var MetricNames = []string{
	"flesch_reading_ease",
	"flesch_kincaid_grade",
	"gunning_fog",
	"smog_index",
	"automated_readability_index",
	"coleman_liau_index",
	"linsear_write_formula",
	"dale_chall_readability_score",
	"text_standard",
	"spache",
}

// Metrics returns the report's metrics keyed by name.
func (r *ScoreReport) Metrics() map[string]*float64 {
	return map[string]*float64{
		"flesch_reading_ease":          r.FleschReadingEase,
		"flesch_kincaid_grade":         r.FleschKincaidGrade,
		"gunning_fog":                  r.GunningFog,
		"smog_index":                   r.SMOGIndex,
		"automated_readability_index":  r.AutomatedReadabilityIndex,
		"coleman_liau_index":           r.ColemanLiauIndex,
		"linsear_write_formula":        r.LinsearWriteFormula,
		"dale_chall_readability_score": r.DaleChallReadabilityScore,
		"text_standard":                r.TextStandard,
		"spache":                       r.Spache,
	}
}
