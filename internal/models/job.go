package models

import (
	"bytes"
	"encoding/json"
)

// Placeholders used when the API leaves a display field out.
const (
	MissingTitle = "Job title not available"
	MissingField = "N/A"
)

// Text is a display field. The API is not strict about types, so numbers
// and booleans are kept as their literal text and null is empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	*t = Text(bytes.TrimSpace(data))
	return nil
}

// PrimaryDetails mirrors the "primary_details" object of a job posting.
// The API omits any of these freely.
type PrimaryDetails struct {
	Place         Text `json:"Place,omitempty"`
	Salary        Text `json:"Salary,omitempty"`
	JobType       Text `json:"Job_Type,omitempty"`
	Experience    Text `json:"Experience,omitempty"`
	FeesCharged   Text `json:"Fees_Charged,omitempty"`
	Qualification Text `json:"Qualification,omitempty"`
}

// JobRecord is one posting as returned by the jobs API. Only ID is required.
type JobRecord struct {
	ID             int             `json:"id"`
	Title          Text            `json:"title,omitempty"`
	PrimaryDetails *PrimaryDetails `json:"primary_details,omitempty"`
	WhatsappNo     Text            `json:"whatsapp_no,omitempty"`
	CompanyName    Text            `json:"company_name,omitempty"`

	// Extra keeps the fields we do not model so a bookmarked record is
	// written back the way the API sent it.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownJobKeys = []string{"id", "title", "primary_details", "whatsapp_no", "company_name"}

type jobRecordFields JobRecord

func (j *JobRecord) UnmarshalJSON(data []byte) error {
	var fields jobRecordFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownJobKeys {
		delete(raw, k)
	}
	*j = JobRecord(fields)
	j.Extra = nil
	if len(raw) > 0 {
		j.Extra = raw
	}
	return nil
}

func (j JobRecord) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(jobRecordFields(j))
	if err != nil || len(j.Extra) == 0 {
		return known, err
	}
	merged := make(map[string]json.RawMessage, len(j.Extra)+len(knownJobKeys))
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range j.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// JobView is a JobRecord with every display field resolved, so nothing that
// renders a job has to repeat the fallback logic.
type JobView struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Place         string `json:"location"`
	Salary        string `json:"salary"`
	JobType       string `json:"job_type"`
	Experience    string `json:"experience"`
	FeesCharged   string `json:"fees_charged"`
	Qualification string `json:"qualification"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
}

// View applies the placeholder policy.
func (j JobRecord) View() JobView {
	d := PrimaryDetails{}
	if j.PrimaryDetails != nil {
		d = *j.PrimaryDetails
	}
	title := string(j.Title)
	if title == "" {
		title = MissingTitle
	}
	return JobView{
		ID:            j.ID,
		Title:         title,
		Place:         orMissing(d.Place),
		Salary:        orMissing(d.Salary),
		JobType:       orMissing(d.JobType),
		Experience:    orMissing(d.Experience),
		FeesCharged:   orMissing(d.FeesCharged),
		Qualification: orMissing(d.Qualification),
		Phone:         orMissing(j.WhatsappNo),
		Company:       orMissing(j.CompanyName),
	}
}

// Views converts a slice of records.
func Views(jobs []JobRecord) []JobView {
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.View())
	}
	return out
}

func orMissing(v Text) string {
	if v == "" {
		return MissingField
	}
	return string(v)
}
