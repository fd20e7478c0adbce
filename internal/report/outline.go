// Package report writes a markdown handout of the deck.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"mideck/domain/deck"
	"mideck/domain/demo"
)

// Outline is the data behind the handout.
type Outline struct {
	Title    string
	Subtitle string
	Author   string
	Contact  string
	Pages    []deck.PageDescriptor
	Demo     demo.SimulationResult
	Seed     uint64
	EDF      []demo.EDFScenario
}

// OutlineWriter renders an Outline as markdown.
type OutlineWriter struct {
	output io.Writer
}

// NewOutlineWriter creates an OutlineWriter that outputs to the given writer.
func NewOutlineWriter(output io.Writer) *OutlineWriter {
	return &OutlineWriter{output: output}
}

// Write outputs the handout.
func (w *OutlineWriter) Write(o Outline) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, o)
	w.writePages(md, o)
	w.writeDemo(md, o)
	w.writeEDF(md, o)

	return md.Build()
}

func (w *OutlineWriter) writeHeader(md *markdown.Markdown, o Outline) {
	md.H1(o.Title)
	if o.Subtitle != "" {
		md.PlainText("")
		md.PlainText(markdown.Bold(o.Subtitle))
	}
	if o.Author != "" {
		md.PlainText("")
		if o.Contact != "" {
			md.PlainTextf("%s (%s)", o.Author, o.Contact)
		} else {
			md.PlainText(o.Author)
		}
	}
	md.PlainText("")
}

func (w *OutlineWriter) writePages(md *markdown.Markdown, o Outline) {
	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(o.Pages))
	for _, p := range o.Pages {
		rows = append(rows, []string{
			strconv.Itoa(p.Number()),
			p.DisplayTitle,
			markdown.Code(p.Identifier),
			string(p.Kind),
		})
	}
	md.Table(markdown.TableSet{
		Header:    []string{"#", "Title", "Identifier", "Kind"},
		Rows:      rows,
		Alignment: []markdown.TableAlignment{markdown.AlignRight},
	})
	md.PlainText("")
}

func (w *OutlineWriter) writeDemo(md *markdown.Markdown, o Outline) {
	in := o.Demo.Inputs
	md.H2("Interactive Demo (default sliders)")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Sample size: %d", in.SampleSize),
		fmt.Sprintf("Missing data: %d%%", in.MissingPercent),
		fmt.Sprintf("Imputations: %d", in.NumImputations),
		fmt.Sprintf("Model complexity: %d", in.ModelComplexity),
	)
	md.PlainText("")
	md.PlainTextf("%s %s", markdown.Bold("Conceptual Pooled Estimate:"), o.Demo.EstimateLabel())
	md.PlainText("")
	md.PlainTextf("%s %s", markdown.Bold("Conceptual 95% Confidence Interval:"), o.Demo.IntervalLabel())
	md.PlainText("")
	md.Notef("Illustrative numbers only (seed %d). No statistical model is fitted.", o.Seed)
	md.PlainText("")
}

func (w *OutlineWriter) writeEDF(md *markdown.Markdown, o Outline) {
	if len(o.EDF) == 0 {
		return
	}
	md.H2("Complete-Data Degrees of Freedom")
	md.PlainText("")

	rows := make([][]string, 0, len(o.EDF))
	for _, sc := range o.EDF {
		rows = append(rows, []string{
			sc.Label,
			sc.DF,
			fmt.Sprintf("%.4f", sc.CriticalT),
			sc.PValue + " (" + sc.PNote + ")",
			sc.Interval + " (" + sc.CINote + ")",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Setting", "DF", "97.5% critical value", "P-value", "CI"},
		Rows:   rows,
	})
	md.PlainText("")
}
