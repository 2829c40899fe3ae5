// Package markup turns generated resume fragments into standalone documents
// and back.
package markup

import (
	"errors"
	"strings"
)

const (
	bodyOpen  = "<body>\n"
	bodyClose = "\n</body>"
)

// head is everything before the style block. Fonts are loaded from Google
// Fonts so preview, HTML export and PDF rendering share the same faces.
const head = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>My Resume</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin="anonymous">
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
  <link href="https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@400;500;700&display=swap" rel="stylesheet">
`

// printScript opens the browser's print dialog once fonts are ready.
const printScript = `  <script>
    window.addEventListener("load", function () {
      var go = function () { window.print(); };
      if (document.fonts && document.fonts.ready) { document.fonts.ready.then(go); } else { go(); }
    });
  </script>
`

var ErrNoBody = errors.New("markup: document has no body")

// Wrap embeds fragment and css into a minimal standalone HTML document.
// The output is a pure function of its inputs.
func Wrap(fragment, css string) string {
	return build(fragment, css, "")
}

// WrapPrintable is Wrap plus a script that invokes the print dialog on
// load, for the print-to-PDF delegation path.
func WrapPrintable(fragment, css string) string {
	return build(fragment, css, printScript)
}

func build(fragment, css, extraHead string) string {
	var b strings.Builder
	b.Grow(len(head) + len(css) + len(fragment) + len(extraHead) + 64)
	b.WriteString(head)
	b.WriteString("  <style>\n")
	b.WriteString(css)
	b.WriteString("\n  </style>\n")
	b.WriteString(extraHead)
	b.WriteString("</head>\n")
	b.WriteString(bodyOpen)
	b.WriteString(fragment)
	b.WriteString(bodyClose)
	b.WriteString("\n</html>\n")
	return b.String()
}

// ExtractBody returns the fragment a document produced by Wrap was built
// from, byte for byte.
func ExtractBody(document string) (string, error) {
	start := strings.Index(document, bodyOpen)
	end := strings.LastIndex(document, bodyClose)
	if start < 0 || end < start+len(bodyOpen) {
		return "", ErrNoBody
	}
	return document[start+len(bodyOpen) : end], nil
}
