// Package pdf renders a report as an A4 booklet: a cover page, a foreword,
// a table of contents and one numbered chapter per neighborhood.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 31.0
	marginRight  = 29.0
	marginTop    = 10.0
	marginBottom = 27.0
	contentWidth = pageWidth - marginLeft - marginRight

	fontFamily     = "Helvetica"
	lineHeight     = 0.45
	fontSizeH1     = 21.0
	fontSizeH2     = 13.0
	fontSizeBase   = 10.5
	fontSizeHeader = 8.5
	indent         = 4.0
	pageColumn     = 15.0

	defaultDepartment = "Waste & Resources"
)

var foreword = []string{
	"The municipality has set rules for offering household and business waste. " +
		"The rules are bound to an address. Even within one street, different " +
		"households can have different rules, and the rules usually differ per " +
		"kind of waste. Paper may for example be collected on another day than glass.",
	"This document lists the rules for offering waste for all addresses.",
	"There is one chapter per neighborhood, in alphabetical order. Within a " +
		"chapter the addresses are grouped by the rules that apply to them, so " +
		"you can easily find the rules for your address.",
}

type Writer struct {
	compress bool
}

func NewWriter() *Writer {
	return &Writer{compress: true}
}

type printer struct {
	pdf        *gofpdf.Fpdf
	tr         func(string) string
	report     *domain.Report
	department string
	chapter    int
	links      []int
}

func (w *Writer) Write(out io.Writer, rep *domain.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(w.compress)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetLineWidth(0.25)
	pdf.SetTitle(rep.Title, true)
	pdf.SetAuthor(rep.Author, true)
	pdf.SetCreator("afvalwijzer", true)
	pdf.SetCreationDate(rep.Date)
	pdf.SetCatalogSort(true)

	p := &printer{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		report:     rep,
		department: rep.Department,
	}
	if p.department == "" {
		p.department = defaultDepartment
	}
	pdf.SetHeaderFunc(p.header)
	pdf.SetFooterFunc(p.footer)

	p.cover()
	p.foreword()
	p.contents()
	for _, chapter := range rep.Chapters {
		p.printChapter(chapter)
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func (p *printer) header() {
	lh := lineHeight * fontSizeHeader
	dateWidth := 30.0
	date := p.report.Date.Format("2 January 2006")

	p.pdf.SetFont(fontFamily, "", fontSizeHeader)
	if p.pdf.PageNo() == 1 {
		p.pdf.SetX(marginLeft + contentWidth - dateWidth)
		p.pdf.CellFormat(dateWidth, lh, date, "", 1, "L", false, 0, "")
		return
	}

	p.pdf.CellFormat(contentWidth-dateWidth, lh, p.tr(p.report.Author), "", 0, "L", false, 0, "")
	p.pdf.CellFormat(dateWidth, lh, date, "", 1, "L", false, 0, "")
	p.pdf.CellFormat(contentWidth-dateWidth, lh, p.tr(p.department), "", 1, "L", false, 0, "")
	p.pdf.Ln(lh)
	p.pdf.CellFormat(contentWidth-dateWidth, lh, p.tr(p.report.Title), "", 1, "L", false, 0, "")
	p.pdf.Ln(5 * lh)
}

func (p *printer) footer() {
	if p.pdf.PageNo() < 2 {
		return
	}
	lh := lineHeight * fontSizeBase
	p.pdf.SetFont(fontFamily, "", fontSizeBase)
	p.pdf.SetY(-lh - 10)
	p.pdf.CellFormat(contentWidth, lh, fmt.Sprintf("%d", p.pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (p *printer) cover() {
	lh := lineHeight * fontSizeH1
	p.pdf.AddPage()
	p.pdf.SetFont(fontFamily, "B", fontSizeH1)
	p.pdf.Ln(lh)

	// "Waste guide for residents in district West" is split before "district".
	title := p.report.Title
	if i := strings.Index(title, " in district "); i >= 0 {
		p.pdf.CellFormat(contentWidth, lh, p.tr(title[:i+3]), "", 1, "L", false, 0, "")
		title = title[i+4:]
	}
	p.pdf.CellFormat(contentWidth, lh, p.tr(title), "", 1, "L", false, 0, "")
}

func (p *printer) foreword() {
	p.pdf.AddPage()
	p.heading("Foreword")
	for _, paragraph := range foreword {
		p.text(paragraph)
		p.text("")
	}
}

// contents lists the chapters. Page numbers are written as aliases that are
// resolved once the chapters are placed.
func (p *printer) contents() {
	lh := lineHeight * fontSizeBase
	p.pdf.AddPage()
	p.heading("Contents")
	p.pdf.SetFont(fontFamily, "", fontSizeBase)

	p.links = make([]int, len(p.report.Chapters))
	for i, chapter := range p.report.Chapters {
		p.links[i] = p.pdf.AddLink()
		title := p.tr(fmt.Sprintf("%d %s", i+1, chapter.Neighborhood))
		p.pdf.CellFormat(contentWidth-pageColumn, lh, title, "", 0, "L", false, p.links[i], "")
		p.pdf.CellFormat(pageColumn, lh, pageAlias(i+1), "", 1, "L", false, p.links[i], "")
	}
}

func pageAlias(chapter int) string {
	return fmt.Sprintf("{chapter-%d}", chapter)
}

func (p *printer) heading(title string) {
	p.pdf.Bookmark(p.tr(title), 0, -1)
	p.pdf.SetFont(fontFamily, "B", fontSizeH1)
	p.pdf.CellFormat(contentWidth, 10, p.tr(title), "", 1, "L", false, 0, "")
	p.pdf.Ln(lineHeight * fontSizeH1 * 1.5)
}

func (p *printer) section(title string) {
	lh := lineHeight * fontSizeH2
	p.pdf.SetFont(fontFamily, "B", fontSizeH2)
	p.pdf.Ln(lh)
	p.pdf.CellFormat(contentWidth, 10, p.tr(title), "", 1, "L", false, 0, "")
}

func (p *printer) text(s string) {
	p.pdf.SetFont(fontFamily, "", fontSizeBase)
	p.pdf.MultiCell(contentWidth, lineHeight*fontSizeBase, p.tr(s), "", "L", false)
}

func (p *printer) item(s string) {
	lh := lineHeight * fontSizeBase
	p.pdf.SetFont(fontFamily, "", fontSizeBase)
	p.pdf.CellFormat(indent, lh, p.tr("•"), "", 0, "L", false, 0, "")
	p.pdf.MultiCell(contentWidth-indent, lh, p.tr(s), "", "L", false)
}

func (p *printer) label(caption, text string) {
	lh := lineHeight * fontSizeBase
	caption = p.tr(caption + ": ")

	p.pdf.SetX(marginLeft + indent)
	p.pdf.SetFont(fontFamily, "B", fontSizeBase)
	w := p.pdf.GetStringWidth(caption)
	p.pdf.CellFormat(w, lh, caption, "", 0, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", fontSizeBase)
	p.pdf.MultiCell(contentWidth-indent-w, lh, p.tr(text), "", "L", false)
}

func (p *printer) printChapter(chapter domain.Chapter) {
	p.chapter++
	p.pdf.AddPage()
	p.pdf.RegisterAlias(pageAlias(p.chapter), strconv.Itoa(p.pdf.PageNo()))
	if p.chapter <= len(p.links) {
		p.pdf.SetLink(p.links[p.chapter-1], 0, -1)
	}
	p.heading(fmt.Sprintf("%d %s", p.chapter, chapter.Neighborhood))

	for i, block := range chapter.Blocks {
		if len(chapter.Blocks) > 1 {
			p.section(fmt.Sprintf("%d.%d Option %d", p.chapter, i+1, i+1))
		}
		p.text("These rules apply to the following addresses:")
		for _, line := range block.Addresses {
			p.item(line)
		}
		for _, rule := range block.Rules {
			p.section(rule.Fraction)
			for _, l := range rule.Labels {
				p.label(l.Caption, l.Text)
			}
		}
	}
}
