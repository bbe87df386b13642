package compare

import (
	"bytes"
	"encoding/json"
	"errors"

	"lhcompare/schema"
)

var errInvalidJSON = errors.New("serialized report is not valid JSON")

// Normalize returns run with Report decoded from LHR. LHR may hold the report
// as an object or as a string of serialized JSON. A run that already carries a
// Report is returned unchanged. Anything that decodes to something other than
// an object (null, a number, an array) leaves Report nil so the run is skipped.
// Only text that is not JSON at all, or an object of the wrong shape, is an error.
func Normalize(run schema.Run) (schema.Run, error) {
	if run.Report != nil {
		return run, nil
	}

	raw := bytes.TrimSpace(run.LHR)
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return run, &MalformedReportError{URL: run.URL, Err: err}
		}
		raw = bytes.TrimSpace([]byte(text))
		if !json.Valid(raw) {
			return run, &MalformedReportError{URL: run.URL, Err: errInvalidJSON}
		}
	}

	if len(raw) == 0 || raw[0] != '{' {
		return run, nil
	}

	report, err := decodeReport(raw)
	if err != nil {
		return run, &MalformedReportError{URL: run.URL, Err: err}
	}
	run.Report = report
	return run, nil
}

func decodeReport(data []byte) (*schema.Report, error) {
	var report schema.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
