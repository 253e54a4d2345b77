package domain

import "time"

// Report is the document model produced from the assembled groups.
type Report struct {
	Title      string
	Author     string
	Department string
	Date       time.Time
	Chapters   []Chapter
}

// Chapter holds all blocks of one neighborhood.
type Chapter struct {
	Neighborhood NeighborhoodKey
	Blocks       []Block
}

// Block is one rule set with the addresses it applies to.
type Block struct {
	Addresses []string
	Rules     []RuleLabels
}

// RuleLabels is the printable form of one rule.
type RuleLabels struct {
	Fraction string
	Labels   []Label
}

// Label is a caption/value pair, e.g. "Collection day": "Monday".
type Label struct {
	Caption string
	Text    string
}

// BlockCount returns the number of rule set blocks over all chapters.
func (r *Report) BlockCount() int {
	n := 0
	for _, c := range r.Chapters {
		n += len(c.Blocks)
	}
	return n
}
