package entity

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"job-assistant/internal/common/errors"

	"gopkg.in/yaml.v3"
)

// Gazetteer is a dictionary of known skills and places.
type Gazetteer struct {
	Skills    []string `yaml:"skills"`
	Locations []string `yaml:"locations"`
}

// DefaultGazetteer covers the places and technologies most often asked
// about on the Infopark board. Entries match without regard to case, so
// names that are also common English words (Go) are left out; Golang covers
// the language.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		Skills: []string{
			"Python", "Java", "JavaScript", "TypeScript", "Golang", "C++", "C#", ".NET",
			"PHP", "Ruby", "Kotlin", "Swift", "Flutter", "React", "Angular", "Vue", "Node.js",
			"Django", "Spring", "SQL", "PostgreSQL", "MySQL", "MongoDB", "AWS", "Azure",
			"Docker", "Kubernetes", "DevOps", "Android", "iOS", "Machine Learning",
			"Data Science", "Selenium", "Salesforce", "SAP", "Figma", "Laravel", "WordPress",
		},
		Locations: []string{
			"Kochi", "Cochin", "Kakkanad", "Ernakulam", "Trivandrum", "Thiruvananthapuram",
			"Kozhikode", "Calicut", "Thrissur", "Cherthala", "Kerala", "Bangalore", "Bengaluru",
			"Chennai", "Hyderabad", "Mumbai", "Pune", "Delhi", "India", "Dubai", "Remote",
		},
	}
}

// LoadGazetteer reads a YAML gazetteer with top level skills and
// locations lists.
func LoadGazetteer(path string) (Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Gazetteer{}, errors.NewConfigurationError(fmt.Sprintf("read gazetteer %s: %v", path, err))
	}
	var g Gazetteer
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Gazetteer{}, errors.NewConfigurationError(fmt.Sprintf("parse gazetteer %s: %v", path, err))
	}
	if len(g.Skills) == 0 && len(g.Locations) == 0 {
		return Gazetteer{}, errors.NewConfigurationError(fmt.Sprintf("gazetteer %s has no entries", path))
	}
	return g, nil
}

type term struct {
	re       *regexp.Regexp
	category string
}

// GazetteerRecognizer matches dictionary entries as whole words,
// ignoring case. Matches keep the casing of the input.
type GazetteerRecognizer struct {
	terms []term
}

func NewGazetteerRecognizer(g Gazetteer) *GazetteerRecognizer {
	r := &GazetteerRecognizer{}
	r.add(g.Locations, CategoryGPE)
	r.add(g.Skills, CategoryProduct)
	return r
}

// Entries may start or end with punctuation (C++, .NET), so \b does not
// work as a boundary; a letter or digit on either side rejects the match.
func (r *GazetteerRecognizer) add(entries []string, category string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		pattern := `(?i)(?:^|[^\p{L}\p{N}])(` + regexp.QuoteMeta(e) + `)(?:$|[^\p{L}\p{N}])`
		r.terms = append(r.terms, term{re: regexp.MustCompile(pattern), category: category})
	}
}

func (r *GazetteerRecognizer) Recognize(text string) []Span {
	var spans []Span
	for _, t := range r.terms {
		for _, loc := range findAll(t.re, text) {
			spans = append(spans, Span{Text: text[loc[0]:loc[1]], Category: t.category, Start: loc[0]})
		}
	}
	return resolveOverlaps(spans)
}

// findAll returns the group-1 ranges. The boundary characters are consumed
// by the match, so the search restarts right after each entry to catch
// neighbours separated by a single character.
func findAll(re *regexp.Regexp, text string) [][2]int {
	var out [][2]int
	offset := 0
	for offset <= len(text) {
		m := re.FindStringSubmatchIndex(text[offset:])
		if m == nil {
			break
		}
		start, end := offset+m[2], offset+m[3]
		out = append(out, [2]int{start, end})
		if end == offset {
			offset++
			continue
		}
		offset = end
	}
	return out
}
