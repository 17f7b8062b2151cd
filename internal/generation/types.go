package generation

import "unicode/utf8"

// Params are the caller-supplied generation overrides. Zero values fall
// back to the resolved AI configuration's defaults.
type Params struct {
	Tone         string `json:"tone"`
	WordCountMin int    `json:"word_count_min"`
	WordCountMax int    `json:"word_count_max"`
	ReadingLevel string `json:"reading_level"`
}

// Context is the assembled reference material for one generation call.
// It is an immutable value: Shrink returns a reduced copy, so every
// attempt's inputs stay reproducible.
type Context struct {
	ReferenceContent       string
	Sources                []string
	Summary                string
	Truncated              bool
	ReferenceProposalCount int
}

// Shrink halves ReferenceContent (floor) and marks the copy truncated.
// Sources and Summary bookkeeping are preserved.
func (c Context) Shrink() Context {
	out := c
	cut := len(c.ReferenceContent) / 2
	for cut > 0 && !utf8.RuneStart(c.ReferenceContent[cut]) {
		cut--
	}
	out.ReferenceContent = c.ReferenceContent[:cut]
	out.Truncated = true
	return out
}
