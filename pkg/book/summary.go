package book

import (
	"github.com/matzehuels/apibook/pkg/markdown"
)

const enumerationsIntro = "Here you will find a list of all the possible values for fields which accept a typed enumerated property, such as `userAgent` or `click()`"

// summaryDocument builds SUMMARY.md. Its links are literal, so reference
// definitions are disabled.
func (c *compilation) summaryDocument() *markdown.Document {
	doc := markdown.New(SummaryPath, c.formatter)
	doc.EnableReferences = false

	doc.WriteHeading("Documentation", 1)
	doc.WriteLine("")
	doc.WriteLine("[Quick Start](" + ReadmePath + ")")
	for _, ex := range c.cfg.Examples {
		doc.WriteLine("[" + ex.Title + "](" + ex.Path + ")")
	}
	doc.WriteLine("")

	doc.WriteHeading("API", 1)
	for pair := c.book.summary.Oldest(); pair != nil; pair = pair.Next() {
		for _, bullet := range pair.Value {
			doc.WriteBullet(bullet, 2)
		}
	}
	return doc
}

func (c *compilation) enumerationsIndex() *markdown.Document {
	doc := markdown.New(EnumerationsPath, c.formatter)
	doc.WriteHeading("Enumerations", 1)
	doc.WriteLine(enumerationsIntro)
	return doc
}
