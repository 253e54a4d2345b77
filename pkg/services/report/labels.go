package report

import (
	"fmt"
	"time"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

const (
	CaptionHow           = "How"
	CaptionCollectionDay = "Collection day"
	CaptionPutOut        = "Put out"
	CaptionWhere         = "Where"
	CaptionRemark        = "Remark"
	CaptionNotice        = "Notice"
)

// Labels returns the caption/value pairs printed next to a rule. Absent fields
// are left out.
func Labels(rule domain.Rule) []domain.Label {
	var labels []domain.Label
	add := func(caption, text string) {
		labels = append(labels, domain.Label{Caption: caption, Text: text})
	}

	if rule.Instruction != "" {
		add(CaptionHow, rule.Instruction)
	}
	if rule.CollectionDays != "" {
		days := rule.CollectionDays
		if rule.Frequency != "" {
			days += ", " + rule.Frequency
		}
		add(CaptionCollectionDay, days)
	}
	if rule.PutOut != "" {
		add(CaptionPutOut, rule.PutOut)
	}
	if rule.Where != "" {
		add(CaptionWhere, rule.Where)
	}
	if rule.Remark != "" {
		add(CaptionRemark, rule.Remark)
	}
	if rule.Notice != "" {
		switch {
		case rule.NoticeFrom != "" && rule.NoticeUntil != "":
			add(CaptionNotice, fmt.Sprintf("From %s until %s %s",
				noticeDate(rule.NoticeFrom), noticeDate(rule.NoticeUntil), rule.Notice))
		case rule.NoticeFrom != "":
			add(CaptionNotice, fmt.Sprintf("From %s %s", noticeDate(rule.NoticeFrom), rule.Notice))
		default:
			add(CaptionNotice, rule.Notice)
		}
	}

	return labels
}

// noticeDate turns the UTC timestamp of the export into dd-mm-yyyy. Values
// that are not a timestamp are printed as is.
func noticeDate(s string) string {
	if len(s) < len(time.DateOnly) {
		return s
	}
	t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)])
	if err != nil {
		return s
	}
	return t.Format("02-01-2006")
}
