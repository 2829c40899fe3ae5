// Package prompts holds the instruction templates sent to the generation
// backend.
package prompts

import (
	"strings"
	"text/template"
)

// Input is the data interpolated into the templates.
type Input struct {
	JobDescription string
	UserInput      string
}

var resumeTpl = template.Must(template.New("resume").Parse(`You are an expert resume writer. Your task is to generate a professional resume formatted as an HTML string.
This resume should be tailored to the provided job description and user information.
It must strictly follow the HTML structure and class names provided in the example below.
If the user's input lacks details for sections, invent plausible and relevant information, using realistic-sounding institutions and company names.

Job Description:
{{.JobDescription}}

User Input:
{{.UserInput}}

Output Instructions:
- The entire resume must be a single HTML fragment.
- Do NOT include <html>, <head>, <body>, or <style> tags. The output must be only the inner HTML content starting from <div class="resume-header">.
- Ensure the generated HTML is clean, well-formed, and ready for styling with the provided class names.
- Use the exact class names and structure as shown in the HTML example.

HTML Structure Example:

<div class="resume-header">
  <h1>CANDIDATE NAME</h1>
  <p class="job-title">JOB TITLE</p>
</div>

<div class="resume-body">
  <div class="resume-left-column">
    <section class="contact-section">
      <h2>CONTACT</h2>
      <ul>
        <li><span class="contact-label">Phone:</span> (555) 123-4567</li>
        <li><span class="contact-label">Email:</span> candidate.email@example.com</li>
        <li><span class="contact-label">Website:</span> www.candidatewebsite.com</li>
        <li><span class="contact-label">Address:</span> City, State, Zip</li>
      </ul>
    </section>

    <section class="education-section">
      <h2>EDUCATION</h2>
      <div>
        <h3>DEGREE</h3>
        <p class="institution">University Name - City, Country</p>
        <p class="dates">YYYY - YYYY</p>
      </div>
    </section>

    <section class="skills-section">
      <h2>SKILLS</h2>
      <h3>Skill Category</h3>
      <ul>
        <li>Skill</li>
      </ul>
    </section>
  </div>

  <div class="resume-right-column">
    <section class="profile-section">
      <h2>PROFILE</h2>
      <p>A concise professional summary tailored to the job description.</p>
    </section>

    <section class="experience-section">
      <h2>EXPERIENCE</h2>
      <div class="experience-entry">
        <p class="dates">Month YYYY – Present</p>
        <h3>JOB TITLE</h3>
        <p class="company"><strong>Company Name</strong> - City, State</p>
        <ul>
          <li>Responsibility or achievement.</li>
        </ul>
      </div>
    </section>
  </div>
</div>

Your output must be ONLY the HTML fragment itself, without any surrounding markdown code fences or explanations.
The job title in the header should be adapted to the job description or user input, otherwise use a relevant default.
Candidate name should be generated if not provided.
Contact details should be plausible placeholders if not provided by the user.
Dates for education and experience should be plausible; company names and institutions should be realistic.
Experience bullet points should be action-oriented. Skills should be categorized.
`))

// Resume renders the resume generation prompt.
func Resume(in Input) (string, error) {
	var b strings.Builder
	if err := resumeTpl.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}
