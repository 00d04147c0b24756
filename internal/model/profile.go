package model

// CandidateProfile is a read-only projection of a user's career data.
// The prompt builder interpolates its fields and never mutates it.
type CandidateProfile struct {
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Summary    string         `json:"summary"`
	Skills     []string       `json:"skills"`
	Experience []Experience   `json:"experience"`
	Education  []Education    `json:"education"`
	Answers    []CustomAnswer `json:"answers"`
}

// Experience is a single work-history entry.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // empty = current role
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// CustomAnswer is a stored answer to a recurring application question.
type CustomAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FullName joins first and last name, tolerating either being empty.
func (p *CandidateProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
