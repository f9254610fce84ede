package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

// loadRecord reads an extraction record from a JSON file, or from
// stdin when path is "-".
func loadRecord(path string) (*schema.ColumnExtraction, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read extraction: %w", err)
	}
	return schema.ParseJSON(data)
}
