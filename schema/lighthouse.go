package schema

import "encoding/json"

// Report matches the parts of the Lighthouse result (LHR) JSON structure we read.
// Everything else in the document is ignored.
type Report struct {
	LighthouseVersion string              `json:"lighthouseVersion,omitempty"`
	RequestedURL      string              `json:"requestedUrl,omitempty"`
	FinalURL          string              `json:"finalUrl,omitempty"`
	FetchTime         string              `json:"fetchTime,omitempty"`
	Categories        map[string]Category `json:"categories"`
	Audits            map[string]Audit    `json:"audits"`
}

type Category struct {
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title,omitempty"`
	Score *float64 `json:"score"`
}

type Audit struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	NumericValue *float64 `json:"numericValue"`
	NumericUnit  string   `json:"numericUnit,omitempty"`
	DisplayValue string   `json:"displayValue,omitempty"`
}

// PageURL returns the URL the audit was requested for, falling back to the final URL.
func (r *Report) PageURL() string {
	if r.RequestedURL != "" {
		return r.RequestedURL
	}
	return r.FinalURL
}

// Run is one audited page of a run set.
//
// LHR is the report as it arrived on the wire: Lighthouse CI serves it as a JSON
// string holding the serialized report, local files hold it as an object. Report
// is the decoded form and may be set directly by callers that already have one.
type Run struct {
	URL    string          `json:"url"`
	LHR    json.RawMessage `json:"lhr,omitempty"`
	Report *Report         `json:"-"`
}
