package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
)

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportLines writes lines to the file at path, replacing it.
func ExportLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLines(f, lines); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return graph.WriteGraph(g, f)
}

// OutputPath returns the sibling of in with its extension replaced by ext.
// It fails with INVALID_PATH when the result would overwrite in.
func OutputPath(in, ext string) (string, error) {
	if err := errors.ValidatePath(in); err != nil {
		return "", err
	}
	out := strings.TrimSuffix(in, filepath.Ext(in)) + ext
	if filepath.Clean(out) == filepath.Clean(in) {
		return "", errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the input", out)
	}
	return out, nil
}
