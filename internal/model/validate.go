package model

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"resumatic/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	MinJobDescriptionLen = 50
	MinUserInputLen      = 20
)

// fieldMessages are the per-field messages shown on the create-resume form.
var fieldMessages = map[string]string{
	"jobDescription": fmt.Sprintf("Job description must be at least %d characters.", MinJobDescriptionLen),
	"userInput":      fmt.Sprintf("Your information must be at least %d characters.", MinUserInputLen),
}

func loadSchema(name string) (gojsonschema.JSONLoader, error) {
	b, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewBytesLoader(b), nil
}

// validateWithSchema validates doc against one of the embedded schemas.
func validateWithSchema(name string, doc gojsonschema.JSONLoader) (*gojsonschema.Result, error) {
	schemaLoader, err := loadSchema(name)
	if err != nil {
		return nil, err
	}
	return gojsonschema.Validate(schemaLoader, doc)
}

// ValidateInput checks the length minimums of the form fields. A failing
// input yields a *domain.Failure of kind validation with one message per
// offending field.
func ValidateInput(in domain.PipelineInput) error {
	res, err := validateWithSchema("input.schema.json", gojsonschema.NewGoLoader(in))
	if err != nil {
		return fmt.Errorf("input schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	fields := map[string]string{}
	for _, e := range res.Errors() {
		field := e.Field()
		if field == gojsonschema.STRING_CONTEXT_ROOT {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		if msg, ok := fieldMessages[field]; ok {
			fields[field] = msg
		} else {
			fields[field] = e.Description()
		}
	}
	return domain.NewValidationFailure(fields)
}

// ValidateAutofill checks a decoded autofill response.
func ValidateAutofill(m map[string]interface{}) error {
	res, err := validateWithSchema("autofill.schema.json", gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	sort.Strings(msgs)
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
