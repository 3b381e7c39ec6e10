// Package fer parses First Examination Reports issued by the Indian Patent
// Office into a normalized record. The input is cleaned plain text from the
// FER PDF; everything here is regex and line heuristics because office
// layouts vary wildly across scans and issuing branches.
package fer

// PriorArt is a cited document (D1, D2, ...) from the FER.
type PriorArt struct {
	Label   string `json:"label"`
	DocNo   string `json:"docno"`
	PubDate string `json:"pub_date"`
}

// Objection is one examiner objection from the detailed-observations part.
type Objection struct {
	Number   int        `json:"number"`
	Heading  string     `json:"heading"`
	Body     string     `json:"body"`
	Sections []string   `json:"sections"`
	Claims   string     `json:"claims"`
	PriorArts []PriorArt `json:"prior_arts"`
}

// Record is the normalized FER parse result returned by the API.
type Record struct {
	ApplicationNo   string      `json:"application_no"`
	FilingDate      string      `json:"filing_date"`
	FERDispatchDate string      `json:"fer_dispatch_date"`
	Applicant       string      `json:"applicant"`
	Title           string      `json:"title"`
	ControllerName  string      `json:"controller_name"`
	ExaminerName    string      `json:"examiner_name"`
	ReplyDeadline   string      `json:"reply_deadline"`
	PriorArts       []PriorArt  `json:"prior_arts"`
	Objections      []Objection `json:"objections"`
}
