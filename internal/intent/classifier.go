// ABOUTME: Classifier labels user utterances as greeting, acknowledgement, or substantive
// ABOUTME: Greetings and acknowledgements bypass retrieval entirely
package intent

import (
	"strings"
	"unicode/utf8"
)

// Kind is the classified intent of an utterance
type Kind string

const (
	Greeting        Kind = "greeting"
	Acknowledgement Kind = "acknowledgement"
	Substantive     Kind = "substantive"
)

// maxAckLength: anything this short is treated as an acknowledgement
const maxAckLength = 2

// Classifier matches utterances against configured word sets
type Classifier struct {
	greetings        map[string]bool
	acknowledgements map[string]bool
}

// NewClassifier builds a classifier from the given word lists. Matching is
// case-insensitive exact match after trimming.
func NewClassifier(greetings, acknowledgements []string) *Classifier {
	c := &Classifier{
		greetings:        make(map[string]bool, len(greetings)),
		acknowledgements: make(map[string]bool, len(acknowledgements)),
	}
	for _, w := range greetings {
		c.greetings[strings.ToLower(strings.TrimSpace(w))] = true
	}
	for _, w := range acknowledgements {
		c.acknowledgements[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return c
}

// Classify labels a single utterance
func (c *Classifier) Classify(utterance string) Kind {
	normalized := strings.ToLower(strings.TrimSpace(utterance))

	if c.greetings[normalized] {
		return Greeting
	}
	if c.acknowledgements[normalized] || utf8.RuneCountInString(normalized) <= maxAckLength {
		return Acknowledgement
	}
	return Substantive
}
