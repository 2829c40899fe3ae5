package infrastructure

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var ErrEmptyPDF = errors.New("pdf: renderer produced no output")

// VerifyPDF parses b and returns its page count. Output that is empty,
// unparseable or has no pages is rejected.
func VerifyPDF(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, ErrEmptyPDF
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(b), conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("pdf: document has no pages")
	}
	return ctx.PageCount, nil
}
