// Package entity pulls locations and skills out of raw user text.
package entity

import "sort"

// Categories understood by the extractor. Anything else a recognizer emits
// is ignored.
const (
	CategoryGPE     = "GPE"
	CategoryOrg     = "ORG"
	CategoryProduct = "PRODUCT"
)

// Span is one recognized entity. Start is the byte offset in the input, or
// -1 when the recognizer cannot tell.
type Span struct {
	Text     string
	Category string
	Start    int
}

func (s Span) end() int { return s.Start + len(s.Text) }

// Recognizer finds named entities in raw text.
type Recognizer interface {
	Recognize(text string) []Span
}

// RecognizerFunc adapts a plain function to Recognizer.
type RecognizerFunc func(text string) []Span

func (f RecognizerFunc) Recognize(text string) []Span { return f(text) }

// Bag groups entity texts by role, in input order. Duplicates are kept.
type Bag struct {
	Location []string `json:"location"`
	Skills   []string `json:"skills"`
}

// Extractor maps recognizer output onto a Bag.
type Extractor struct {
	recognizer Recognizer
}

func NewExtractor(r Recognizer) *Extractor {
	return &Extractor{recognizer: r}
}

// Extract never returns nil slices.
func (e *Extractor) Extract(text string) Bag {
	bag := Bag{Location: []string{}, Skills: []string{}}
	if text == "" || e.recognizer == nil {
		return bag
	}

	for _, sp := range e.recognizer.Recognize(text) {
		switch sp.Category {
		case CategoryGPE:
			bag.Location = append(bag.Location, sp.Text)
		case CategoryOrg, CategoryProduct:
			bag.Skills = append(bag.Skills, sp.Text)
		}
	}
	return bag
}

type chain []Recognizer

// Chain runs every recognizer, orders the spans by offset and drops spans
// that overlap one already kept. Earlier recognizers win ties.
func Chain(recognizers ...Recognizer) Recognizer {
	return chain(recognizers)
}

func (c chain) Recognize(text string) []Span {
	var all []Span
	for _, r := range c {
		all = append(all, r.Recognize(text)...)
	}
	return resolveOverlaps(all)
}

// resolveOverlaps sorts by start (longest first on equal start) and keeps
// the first span of every overlapping group. Spans without an offset are
// appended in their original order.
func resolveOverlaps(spans []Span) []Span {
	var positioned, unpositioned []Span
	for _, sp := range spans {
		if sp.Start < 0 {
			unpositioned = append(unpositioned, sp)
			continue
		}
		positioned = append(positioned, sp)
	}

	sort.SliceStable(positioned, func(i, j int) bool {
		if positioned[i].Start != positioned[j].Start {
			return positioned[i].Start < positioned[j].Start
		}
		return len(positioned[i].Text) > len(positioned[j].Text)
	})

	var out []Span
	lastEnd := -1
	for _, sp := range positioned {
		if sp.Start < lastEnd {
			continue
		}
		out = append(out, sp)
		lastEnd = sp.end()
	}
	return append(out, unpositioned...)
}
