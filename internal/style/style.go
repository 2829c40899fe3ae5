// Package style provides the stylesheet applied to generated resumes in the
// preview and in every exported artifact.
package style

import (
	_ "embed"
)

//go:embed resume.css
var resumeCSS string

// CSS returns the resume stylesheet.
func CSS() string { return resumeCSS }
