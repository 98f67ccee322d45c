package entity

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs prose's pretrained named-entity model. prose labels
// places as GPE and organisations as ORG, which line up with the
// extractor's categories.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

func (p *ProseRecognizer) Recognize(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil
	}

	var spans []Span
	cursor := 0
	for _, ent := range doc.Entities() {
		start := -1
		if idx := strings.Index(text[cursor:], ent.Text); idx >= 0 {
			start = cursor + idx
			cursor = start + len(ent.Text)
		}
		spans = append(spans, Span{Text: ent.Text, Category: ent.Label, Start: start})
	}
	return spans
}
