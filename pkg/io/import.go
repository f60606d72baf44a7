package io

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
)

// maxLineSize bounds a single record line.
const maxLineSize = 16 << 20

// ReadRecords returns one record per line of r: the first tab-separated
// field with surrounding whitespace removed. Empty lines yield empty
// records. ReadRecords does not close r.
func ReadRecords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []string
	for sc.Scan() {
		field, _, _ := strings.Cut(sc.Text(), "\t")
		records = append(records, strings.TrimSpace(field))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return records, nil
}

// ImportRecords reads the record file at path.
func ImportRecords(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return graph.Graph{}, err
	}
	defer f.Close()

	g, err := graph.ReadGraph(f)
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "read %s", path)
	}
	return g, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
