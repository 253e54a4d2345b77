package report

import (
	"errors"
	"time"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

var errNoChapter = errors.New("addresses received before any neighborhood")

// Builder collects the events into a domain.Report.
type Builder struct {
	report  domain.Report
	pending *domain.Block
}

func NewBuilder(title, author string, date time.Time) *Builder {
	return &Builder{
		report: domain.Report{Title: title, Author: author, Date: date},
	}
}

func (b *Builder) OnNeighborhood(key domain.NeighborhoodKey) error {
	b.report.Chapters = append(b.report.Chapters, domain.Chapter{Neighborhood: key})
	return nil
}

func (b *Builder) OnAddresses(lines []string) error {
	if len(b.report.Chapters) == 0 {
		return errNoChapter
	}
	b.pending = &domain.Block{Addresses: lines}
	return nil
}

func (b *Builder) OnRuleSet(rules domain.RuleSet) error {
	if len(b.report.Chapters) == 0 {
		return errNoChapter
	}

	block := domain.Block{}
	if b.pending != nil {
		block = *b.pending
		b.pending = nil
	}
	for _, rule := range rules {
		block.Rules = append(block.Rules, domain.RuleLabels{
			Fraction: rule.Fraction,
			Labels:   Labels(rule),
		})
	}

	chapter := &b.report.Chapters[len(b.report.Chapters)-1]
	chapter.Blocks = append(chapter.Blocks, block)
	return nil
}

// Report returns the document built so far.
func (b *Builder) Report() *domain.Report {
	return &b.report
}
