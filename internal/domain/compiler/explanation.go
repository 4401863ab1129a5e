package compiler

// Explanation tells a reader what a step does, shown by plan --explain.
type Explanation struct {
	summary string
	detail  string
	links   []string
}

// NewExplanation creates an Explanation. links may be nil.
func NewExplanation(summary, detail string, links []string) Explanation {
	return Explanation{summary: summary, detail: detail, links: append([]string(nil), links...)}
}

// Summary returns the one-line description.
func (e Explanation) Summary() string { return e.summary }

// Detail returns the longer description.
func (e Explanation) Detail() string { return e.detail }

// DocLinks returns the reference URLs.
func (e Explanation) DocLinks() []string { return append([]string(nil), e.links...) }

// IsEmpty reports whether there is nothing to show.
func (e Explanation) IsEmpty() bool {
	return e.summary == "" && e.detail == ""
}

// Lines renders the explanation for output. The summary always comes
// first; verbose adds the detail and one "see <url>" line per link.
func (e Explanation) Lines(verbose bool) []string {
	var lines []string
	if e.summary != "" {
		lines = append(lines, e.summary)
	}
	if !verbose {
		return lines
	}
	if e.detail != "" {
		lines = append(lines, e.detail)
	}
	for _, link := range e.links {
		lines = append(lines, "see "+link)
	}
	return lines
}
