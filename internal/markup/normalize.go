package markup

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

// Normalize cleans a backend reply into a markup fragment: prose around a
// fenced block or around the markup is dropped, a {"resume": ...} envelope
// is removed, outer document tags are dropped (keeping the body's
// children), and the result is sanitised. An empty string means nothing
// usable was returned.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripFences(s)
	s = unwrapEnvelope(s)
	s = trimToMarkup(s)
	if hasDocumentTags(s) {
		if inner, ok := bodyChildren(s); ok {
			s = inner
		}
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

// stripFences returns the contents of the first fenced block, from the
// first ``` line to the last ```, wherever it sits in s.
func stripFences(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	body := s[start+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// drop the language tag line
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func unwrapEnvelope(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	// markup never starts with an object, so only replies that lead with
	// one (possibly after prose) are tried
	if lt := strings.IndexByte(s, '<'); lt >= 0 && lt < start {
		return s
	}
	var env struct {
		Resume string `json:"resume"`
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &env); err != nil || env.Resume == "" {
		return s
	}
	return strings.TrimSpace(env.Resume)
}

// trimToMarkup cuts s down to the span from its first '<' to its last '>'.
func trimToMarkup(s string) string {
	start := strings.IndexByte(s, '<')
	end := strings.LastIndexByte(s, '>')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

func hasDocumentTags(s string) bool {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Html, atom.Head, atom.Body:
				return true
			}
		}
	}
}

// bodyChildren parses s as a full document and renders the body's children.
func bodyChildren(s string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", false
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return "", false
	}
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", false
		}
	}
	return buf.String(), true
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
