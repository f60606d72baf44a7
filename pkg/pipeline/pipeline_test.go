package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/cache"
	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/lgi"
	"github.com/matzehuels/lgi/pkg/render/nodelink"
)

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", opts.Source, DefaultSource)
	}
	if opts.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
	}

	bad := Options{Source: "pdb"}
	err := bad.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("err = %v, want INVALID_SOURCE", err)
	}
}

func TestTranslateFile(t *testing.T) {
	in := writeFile(t, "train.txt", "A_\tK2\ngarbage\nBw\n\n")
	failures := filepath.Join(filepath.Dir(in), "failures.jsonl")

	r := quietRunner(t, nil)
	res, err := r.TranslateFile(context.Background(), FileOptions{
		Input:        in,
		FailuresPath: failures,
		Options:      Options{Source: lgi.SourceGraph6, Canonical: true},
	})
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}

	wantOut := filepath.Join(filepath.Dir(in), "train.lgi")
	if res.OutputPath != wantOut {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, wantOut)
	}
	if got := readFile(t, wantOut); got != "AA\nB1BB1\n" {
		t.Errorf("output = %q, want %q", got, "AA\nB1BB1\n")
	}
	if res.Batch.Total != 4 || len(res.Batch.Dropped) != 2 {
		t.Fatalf("total=%d dropped=%d, want 4 and 2", res.Batch.Total, len(res.Batch.Dropped))
	}
	if n := res.Batch.FailureCounts()[errors.ErrCodeInvalidGraph6]; n != 2 {
		t.Errorf("INVALID_GRAPH6 failures = %d, want 2", n)
	}

	f, err := os.Open(failures)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []failure
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var fl failure
		if err := json.Unmarshal(sc.Bytes(), &fl); err != nil {
			t.Fatalf("report line %q: %v", sc.Text(), err)
		}
		lines = append(lines, fl)
	}
	if len(lines) != 2 {
		t.Fatalf("report has %d lines, want 2", len(lines))
	}
	if lines[0].Line != 2 || lines[0].Input != "garbage" || lines[1].Line != 4 {
		t.Errorf("report = %+v", lines)
	}
	if lines[0].RunID != res.Batch.RunID {
		t.Errorf("RunID = %q, want %q", lines[0].RunID, res.Batch.RunID)
	}
}

func TestTranslateFileMissing(t *testing.T) {
	r := quietRunner(t, nil)
	_, err := r.TranslateFile(context.Background(), FileOptions{
		Input: filepath.Join(t.TempDir(), "missing.txt"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTranslateFileValidate(t *testing.T) {
	in := writeFile(t, "data.lgi", "AA\nAB\n@\n@r\nB1BB1\n")

	r := quietRunner(t, nil)
	res, err := r.TranslateFile(context.Background(), FileOptions{
		Input:   in,
		Ext:     ValidExt,
		Options: Options{Source: lgi.SourceLGI},
	})
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}
	if filepath.Base(res.OutputPath) != "data.valid.lgi" {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	if got, want := readFile(t, res.OutputPath), "AA\n@\nB1BB1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	counts := res.Batch.FailureCounts()
	if n := counts[errors.ErrCodeDegreeMismatch]; n != 1 {
		t.Errorf("DEGREE_MISMATCH failures = %d, want 1", n)
	}
	if n := counts[errors.ErrCodeParse]; n != 1 {
		t.Errorf("PARSE_ERROR failures = %d, want 1", n)
	}
}

func TestTranslateCacheHits(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, c)
	records := []string{"A_", "Bw", "garbage"}
	opts := Options{Source: lgi.SourceGraph6, Canonical: true}

	first, hits, err := r.Translate(context.Background(), records, opts)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if hits != 0 {
		t.Errorf("first run hits = %d, want 0", hits)
	}

	second, hits, err := r.Translate(context.Background(), records, opts)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if hits != 2 {
		t.Errorf("second run hits = %d, want 2", hits)
	}
	if strings.Join(first.Outputs, ",") != strings.Join(second.Outputs, ",") {
		t.Errorf("cached outputs %v differ from %v", second.Outputs, first.Outputs)
	}

	opts.Refresh = true
	if _, hits, _ = r.Translate(context.Background(), records, opts); hits != 0 {
		t.Errorf("refresh run hits = %d, want 0", hits)
	}
}

func TestTranslateRandomNotCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, c)
	opts := Options{Source: lgi.SourceSMILES}

	for range 2 {
		if _, hits, err := r.Translate(context.Background(), []string{"CCO"}, opts); err != nil || hits != 0 {
			t.Fatalf("hits = %d, err = %v, want 0 and nil", hits, err)
		}
	}
}

func TestTranslateSeeded(t *testing.T) {
	records := []string{"CC(C)C1CCC(C)CC1", "C1CCC2CCCCC2C1", "CC(C)(C)CCO", "C1CC1C2CC2"}
	r := quietRunner(t, nil)

	run := func(workers int) []string {
		res, _, err := r.Translate(context.Background(), records, Options{
			Source: lgi.SourceSMILES,
			Seed:   42,
			Batch:  batch.Options{Workers: workers, ChunkSize: 1},
		})
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}
		return res.Outputs
	}

	a, b := run(1), run(4)
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Errorf("seeded outputs depend on workers: %v vs %v", a, b)
	}
	for i, s := range a {
		if !lgi.Valid(s) {
			t.Errorf("output %d %q does not decode", i, s)
		}
	}
}

func TestEncode(t *testing.T) {
	r := quietRunner(t, nil)
	tests := []struct {
		input string
		from  Format
		want  string
	}{
		{"A_", FormatGraph6, "AA"},
		{"CCC", FormatSMILES, "ABA"},
		{`{"nodes":3,"edges":[[0,1],[1,2],[0,2]]}`, FormatJSON, "B1BB1"},
		{"ABA", FormatLGI, "ABA"},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, err := r.Encode(context.Background(), tt.input, tt.from, true)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInputErrors(t *testing.T) {
	tests := []struct {
		input string
		from  Format
		code  errors.Code
	}{
		{"!!", FormatGraph6, errors.ErrCodeInvalidGraph6},
		{"C(", FormatSMILES, errors.ErrCodeParse},
		{"{", FormatJSON, errors.ErrCodeInvalidGraph},
		{"AB", FormatLGI, errors.ErrCodeDegreeMismatch},
		{"x", "xyz", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			_, err := ParseInput(tt.input, tt.from)
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseInput(%q, %s) err = %v, want %s", tt.input, tt.from, err, tt.code)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		if got, err := ParseFormat(string(f)); err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("mol"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRender(t *testing.T) {
	dot, err := Render(context.Background(), "AC(A)A", RenderDOT, nodelink.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(dot), "graph G {") || strings.Count(string(dot), " -- ") != 3 {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	js, err := Render(context.Background(), "AA", RenderJSON, nodelink.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(js), `"nodes": 2`) {
		t.Errorf("unexpected JSON: %s", js)
	}

	if _, err := Render(context.Background(), "AA", "png", nodelink.Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	if _, err := Render(context.Background(), "AB", RenderDOT, nodelink.Options{}); !errors.Is(err, errors.ErrCodeDegreeMismatch) {
		t.Errorf("err = %v, want DEGREE_MISMATCH", err)
	}
}
