package model

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Section is a class the resume fragment is expected to carry.
type Section struct {
	Class    string
	Required bool
}

// ResumeSections is the structure the prompt asks the backend to follow.
var ResumeSections = []Section{
	{Class: "resume-header", Required: true},
	{Class: "job-title"},
	{Class: "resume-body", Required: true},
	{Class: "resume-left-column"},
	{Class: "resume-right-column"},
	{Class: "contact-section", Required: true},
	{Class: "education-section", Required: true},
	{Class: "skills-section", Required: true},
	{Class: "profile-section", Required: true},
	{Class: "experience-section", Required: true},
	{Class: "experience-entry"},
}

// MarkupReport describes how a fragment matches the section contract.
type MarkupReport struct {
	// Missing lists required section classes not found.
	Missing []string
	// DocumentTags lists outer document tags (html, head, body, style) found.
	DocumentTags []string
}

func (r MarkupReport) OK() bool { return len(r.Missing) == 0 && len(r.DocumentTags) == 0 }

// CheckMarkup tokenizes fragment and reports missing sections and any
// document-level tags.
func CheckMarkup(fragment string) (MarkupReport, error) {
	var rep MarkupReport
	classes := map[string]bool{}
	seenTags := map[string]bool{}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return rep, z.Err()
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		switch tok.DataAtom {
		case atom.Html, atom.Head, atom.Body, atom.Style:
			if !seenTags[tok.Data] {
				seenTags[tok.Data] = true
				rep.DocumentTags = append(rep.DocumentTags, tok.Data)
			}
		}
		for _, a := range tok.Attr {
			if a.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(a.Val) {
				classes[c] = true
			}
		}
	}

	for _, s := range ResumeSections {
		if s.Required && !classes[s.Class] {
			rep.Missing = append(rep.Missing, s.Class)
		}
	}
	return rep, nil
}
