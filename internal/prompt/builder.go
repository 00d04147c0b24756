// Package prompt builds (system, user) prompt pairs from candidate data.
// Every builder is a pure function: identical inputs produce byte-identical
// output, so generated prompts are reproducible and cheap to test.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/applydraft/applydraft/internal/model"
)

//go:embed templates/cover_letter.md
var coverLetterRaw string

//go:embed templates/answer.md
var answerRaw string

//go:embed templates/smart_answer.md
var smartAnswerRaw string

//go:embed templates/resume_optimization.md
var resumeOptimizationRaw string

// Templates are parsed once at package init and reused on every call.
var (
	coverLetterTmpl        = template.Must(template.New("cover_letter").Parse(coverLetterRaw))
	answerTmpl             = template.Must(template.New("answer").Parse(answerRaw))
	smartAnswerTmpl        = template.Must(template.New("smart_answer").Parse(smartAnswerRaw))
	resumeOptimizationTmpl = template.Must(template.New("resume_optimization").Parse(resumeOptimizationRaw))
)

// Pair is a rendered system and user prompt ready for a provider call.
type Pair struct {
	System string
	User   string
}

// placeholder stands in for missing optional fields so the rendered
// prompt keeps a stable structure regardless of profile completeness.
const placeholder = "N/A"

func orNA(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

type templateData struct {
	Profile  string
	Job      string
	Question string
	Company  string
}

func render(tmpl *template.Template, data templateData) string {
	var buf bytes.Buffer
	// Templates have no conditionals and data is plain strings; Execute
	// cannot fail here short of a programming error in the template.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("render %s: %v", tmpl.Name(), err))
	}
	return buf.String()
}

// CoverLetter builds the prompt pair for a cover letter targeting the
// given job description and company.
func CoverLetter(p *model.CandidateProfile, jobDescription, companyName string) Pair {
	return Pair{
		System: coverLetterSystem,
		User: render(coverLetterTmpl, templateData{
			Profile: renderProfile(p),
			Job:     orNA(jobDescription),
			Company: orNA(companyName),
		}),
	}
}

// Answer builds the prompt pair for a standalone application question.
func Answer(p *model.CandidateProfile, question string) Pair {
	return Pair{
		System: answerSystem,
		User: render(answerTmpl, templateData{
			Profile:  renderProfile(p),
			Question: orNA(question),
		}),
	}
}

// SmartAnswer builds the prompt pair for a question answered in the
// context of a specific job. A charLimit of 0 means no limit; a positive
// limit adds a hard-limit clause to the system prompt.
func SmartAnswer(p *model.CandidateProfile, question, jobContext string, charLimit int) Pair {
	system := smartAnswerSystem
	if charLimit > 0 {
		system += fmt.Sprintf(smartAnswerLimitClause, charLimit)
	}
	return Pair{
		System: system,
		User: render(smartAnswerTmpl, templateData{
			Profile:  renderProfile(p),
			Job:      orNA(jobContext),
			Question: orNA(question),
		}),
	}
}

// ResumeOptimization builds the prompt pair for resume feedback against
// a target job description.
func ResumeOptimization(p *model.CandidateProfile, jobDescription string) Pair {
	return Pair{
		System: resumeOptimizationSystem,
		User: render(resumeOptimizationTmpl, templateData{
			Profile: renderProfile(p),
			Job:     orNA(jobDescription),
		}),
	}
}

// renderProfile flattens a profile into a stable plain-text block.
// Missing fields render as the placeholder token rather than being
// omitted, so two profiles always produce structurally identical text.
func renderProfile(p *model.CandidateProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", orNA(p.FullName()))
	fmt.Fprintf(&b, "Summary: %s\n", orNA(p.Summary))

	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	} else {
		fmt.Fprintf(&b, "Skills: %s\n", placeholder)
	}

	b.WriteString("Experience:\n")
	if len(p.Experience) == 0 {
		fmt.Fprintf(&b, "- %s\n", placeholder)
	}
	for _, e := range p.Experience {
		end := e.EndDate
		if end == "" {
			end = "present"
		}
		fmt.Fprintf(&b, "- %s at %s (%s to %s): %s\n",
			orNA(e.Title), orNA(e.Company), orNA(e.StartDate), end, orNA(e.Description))
	}

	b.WriteString("Education:\n")
	if len(p.Education) == 0 {
		fmt.Fprintf(&b, "- %s\n", placeholder)
	}
	for _, e := range p.Education {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", orNA(e.Degree), orNA(e.Institution), orNA(e.Year))
	}

	if len(p.Answers) > 0 {
		b.WriteString("Stored answers:\n")
		for _, a := range p.Answers {
			fmt.Fprintf(&b, "- Q: %s A: %s\n", orNA(a.Question), orNA(a.Answer))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
