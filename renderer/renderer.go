// Package renderer turns backend records into markdown documents, mostly tables.
package renderer

import (
	"io"
	"time"

	"github.com/etnz/wellets"
	md "github.com/nao1215/markdown"
)

// Options holds the layouts used to render dates.
type Options struct {
	DateFormat     string
	DateTimeFormat string
}

// DefaultOptions matches the configuration defaults.
var DefaultOptions = Options{DateFormat: "2006-01-02", DateTimeFormat: "2006-01-02 15:04"}

func (o Options) date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(o.DateFormat)
}

func (o Options) datetime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(o.DateTimeFormat)
}

// document is a markdown document under construction. Every block is
// followed by an empty line.
type document struct {
	m *md.Markdown
}

func newDocument() *document {
	return &document{m: md.NewMarkdown(io.Discard)}
}

func (d *document) h1(s string) { d.m.H1(s).PlainText("") }
func (d *document) h2(s string) { d.m.H2(s).PlainText("") }

func (d *document) text(s string) { d.m.PlainText(s).PlainText("") }

// table appends a table. An empty table is rendered as the empty text instead.
func (d *document) table(empty string, header []string, rows [][]string, align []md.TableAlignment) {
	if len(rows) == 0 {
		d.text(empty)
		return
	}
	d.m.Table(md.TableSet{Header: header, Rows: rows, Alignment: align}).PlainText("")
}

// keyValues appends a two columns table of key/value pairs.
func (d *document) keyValues(pairs ...[2]string) {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	d.table("", []string{"Key", "Value"}, rows, align(2, 1))
}

func (d *document) String() string { return d.m.String() }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// equivalent converts an amount of from into to, and formats it with to's acronym.
// A conversion failure is rendered as "-".
func equivalent(from, to wellets.Currency, amount float64, opts ...wellets.PPOption) string {
	v, err := from.ConvertTo(to, amount)
	if err != nil {
		return "-"
	}
	return to.Acronym + " " + wellets.PP(v, opts...)
}

// align returns n alignments, left by default, right for the given columns.
func align(n int, right ...int) []md.TableAlignment {
	a := make([]md.TableAlignment, n)
	for i := range a {
		a[i] = md.AlignLeft
	}
	for _, i := range right {
		a[i] = md.AlignRight
	}
	return a
}
