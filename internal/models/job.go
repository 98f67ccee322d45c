// internal/models/job.go
package models

// JobRecord is one listing as produced by a job source. Title, Company and
// Date are always present (sources substitute placeholders); Link and
// Location are empty when the source does not provide them.
type JobRecord struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Date     string `json:"date"`
	Link     string `json:"link,omitempty"`
	Location string `json:"location,omitempty"`
}

// HasLink reports whether the record carries a usable link.
func (j JobRecord) HasLink() bool {
	return j.Link != "" && j.Link != PlaceholderLink
}

// Placeholders used by sources for fields missing from a listing.
const (
	PlaceholderTitle   = "No title"
	PlaceholderLink    = "No link"
	PlaceholderCompany = "No company"
	PlaceholderDate    = "No date"
)
