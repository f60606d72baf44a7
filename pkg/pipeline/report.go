package pipeline

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/errors"
)

// failure is one line of a failure report.
type failure struct {
	RunID   string      `json:"run_id"`
	Index   int         `json:"index"`
	Line    int         `json:"line"`
	Input   string      `json:"input"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteFailures writes one JSON object per dropped record. Line is the
// 1-based line number of the record in its input file.
func WriteFailures(w io.Writer, res *batch.Result) error {
	enc := json.NewEncoder(w)
	for _, d := range res.Dropped {
		f := failure{
			RunID:   res.RunID,
			Index:   d.Index,
			Line:    d.Index + 1,
			Input:   d.Input,
			Code:    d.Code,
			Message: d.Message,
		}
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}

// ExportFailures writes the failure report of res to path.
func ExportFailures(path string, res *batch.Result) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteFailures(f, res)
}
