package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/apibook/pkg/reflection"
	"github.com/matzehuels/apibook/pkg/typefmt"
)

// referenceToken matches bracketed reference tokens such as [Element].
var referenceToken = regexp.MustCompile(`\[(\w+)\]`)

// Document is one logical Markdown document.
type Document struct {
	// Path is the slash-separated output path relative to the book root.
	Path string

	// EnableReferences controls whether Finalize appends link definitions.
	EnableReferences bool

	lines      []string
	refsNeeded []string
	formatter  *typefmt.Formatter
	finalized  bool
}

// New returns an empty document for path. Parameter lines render their types
// with f; a nil f uses a formatter that discards its reports.
func New(path string, f *typefmt.Formatter) *Document {
	if f == nil {
		f = typefmt.New(nil)
	}
	return &Document{Path: path, EnableReferences: true, formatter: f}
}

// WriteLine appends text and records the reference tokens it contains.
func (d *Document) WriteLine(text string) {
	for _, m := range referenceToken.FindAllStringSubmatch(text, -1) {
		d.refsNeeded = append(d.refsNeeded, m[1])
	}
	d.writeRaw(text)
}

// WriteHeading appends an ATX heading of the given depth.
func (d *Document) WriteHeading(text string, depth int) {
	d.WriteLine(strings.Repeat("#", depth) + " " + text)
}

// WriteBullet appends a bullet indented by depth spaces.
func (d *Document) WriteBullet(text string, depth int) {
	d.WriteLine(strings.Repeat(" ", depth) + "* " + text)
}

// WriteSection appends a horizontal rule followed by a top-level heading.
func (d *Document) WriteSection(name string) {
	d.WriteLine("-------")
	d.WriteHeading(name, 1)
	d.WriteLine("")
}

// WriteComment appends the short text, a blank line, then the long text.
// Empty parts are omitted.
func (d *Document) WriteComment(c *reflection.Comment) {
	if c == nil {
		return
	}
	if c.ShortText != "" {
		d.WriteLine(c.ShortText)
		d.WriteLine("")
	}
	if c.Text != "" {
		d.WriteLine(c.Text)
	}
}

// WriteParameterLine appends a bullet describing a parameter, property or
// return value. Names starting with "returns" render without code quoting and
// without the optional marker.
func (d *Document) WriteParameterLine(name string, t reflection.TypeExpr, desc string, optional bool) {
	typ := "<" + d.formatter.Format(t) + ">"
	desc = strings.TrimSpace(desc)

	if strings.HasPrefix(name, "returns") {
		d.WriteLine(fmt.Sprintf("* %s %s %s", name, typ, desc))
		return
	}

	marker := ""
	if optional {
		marker = "(Optional)"
	}
	d.WriteLine(fmt.Sprintf("* `%s` %s %s %s", name, typ, marker, desc))
}

// WriteTable appends a pipe table. The first row is the header. Table cells
// are not scanned for reference tokens.
func (d *Document) WriteTable(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	d.writeRaw(tableRow(rows[0]))

	delim := make([]string, len(rows[0]))
	for i := range delim {
		delim[i] = "---"
	}
	d.writeRaw(tableRow(delim))

	for _, row := range rows[1:] {
		d.writeRaw(tableRow(row))
	}
}

func tableRow(cells []string) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString("| ")
		b.WriteString(escapeCell(c))
		b.WriteString(" ")
	}
	b.WriteString("|")
	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// ReferencesNeeded returns every reference token recorded so far, in the
// order they were written, duplicates included.
func (d *Document) ReferencesNeeded() []string {
	return append([]string(nil), d.refsNeeded...)
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// String returns the document text, lines joined by newlines.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

func (d *Document) writeRaw(text string) {
	d.lines = append(d.lines, text)
}
