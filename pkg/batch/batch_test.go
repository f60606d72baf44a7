package batch

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/observability"
)

func upper(s string) (string, error) {
	if strings.HasPrefix(s, "garbage") {
		return "", errors.New(errors.ErrCodeParse, "cannot translate %q", s)
	}
	return strings.ToUpper(s), nil
}

func TestRunOrderAndFiltering(t *testing.T) {
	res, err := Run(context.Background(), []string{"valid1", "garbage", "valid2"}, upper)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"VALID1", "VALID2"}
	if len(res.Outputs) != len(want) {
		t.Fatalf("Outputs = %v, want %v", res.Outputs, want)
	}
	for i := range want {
		if res.Outputs[i] != want[i] {
			t.Errorf("Outputs[%d] = %q, want %q", i, res.Outputs[i], want[i])
		}
	}

	if len(res.Dropped) != 1 {
		t.Fatalf("Dropped = %v, want one record", res.Dropped)
	}
	d := res.Dropped[0]
	if d.Index != 1 || d.Input != "garbage" || d.Code != errors.ErrCodeParse {
		t.Errorf("Dropped[0] = %+v", d)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
}

func TestRunPreservesOrderUnderLoad(t *testing.T) {
	const n = 500
	inputs := make([]string, n)
	var want []string
	for i := range inputs {
		if i%7 == 0 {
			inputs[i] = fmt.Sprintf("garbage%d", i)
			continue
		}
		inputs[i] = fmt.Sprintf("item%d", i)
		want = append(want, fmt.Sprintf("ITEM%d", i))
	}

	slow := func(s string) (string, error) {
		// Later records finish first.
		time.Sleep(time.Duration(len(s)%3) * time.Millisecond)
		return upper(s)
	}

	tr := New(Options{ChunkSize: 3, Workers: 8})
	res, err := tr.Run(context.Background(), inputs, slow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Outputs) != len(want) {
		t.Fatalf("len(Outputs) = %d, want %d", len(res.Outputs), len(want))
	}
	for i := range want {
		if res.Outputs[i] != want[i] {
			t.Fatalf("Outputs[%d] = %q, want %q", i, res.Outputs[i], want[i])
		}
	}
	for i := 1; i < len(res.Dropped); i++ {
		if res.Dropped[i-1].Index >= res.Dropped[i].Index {
			t.Fatalf("Dropped not in input order: %v", res.Dropped)
		}
	}
}

func TestRunIsolatesPanics(t *testing.T) {
	fn := func(s string) (string, error) {
		if s == "boom" {
			panic("engine exploded")
		}
		return upper(s)
	}

	res, err := New(Options{ChunkSize: 2, Workers: 2}).Run(context.Background(), []string{"a", "boom", "b", "c"}, fn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Join(res.Outputs, ","); got != "A,B,C" {
		t.Errorf("Outputs = %s, want A,B,C", got)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Code != errors.ErrCodeEngine {
		t.Errorf("Dropped = %+v, want one ENGINE_FAILURE", res.Dropped)
	}
}

func TestRunTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	fn := func(s string) (string, error) {
		if s == "slow" {
			<-release
		}
		return upper(s)
	}

	tr := New(Options{ChunkSize: 16, Workers: 1, Timeout: 20 * time.Millisecond})
	res, err := tr.Run(context.Background(), []string{"a", "slow", "b"}, fn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Join(res.Outputs, ","); got != "A,B" {
		t.Errorf("Outputs = %s, want A,B", got)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Code != errors.ErrCodeTimeout {
		t.Errorf("Dropped = %+v, want one TIMEOUT", res.Dropped)
	}
}

func TestRunTimeoutRecoversPanics(t *testing.T) {
	fn := func(string) (string, error) { panic("late panic") }

	res, err := New(Options{Timeout: time.Second}).Run(context.Background(), []string{"x"}, fn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Code != errors.ErrCodeEngine {
		t.Errorf("Dropped = %+v, want one ENGINE_FAILURE", res.Dropped)
	}
}

type countingReporter struct {
	total    int
	advanced int
	ok       int
	finished int
}

func (r *countingReporter) Start(total int) { r.total = total }
func (r *countingReporter) Advance(ok bool) {
	r.advanced++
	if ok {
		r.ok++
	}
}
func (r *countingReporter) Finish() { r.finished++ }

func TestRunProgress(t *testing.T) {
	inputs := make([]string, 100)
	for i := range inputs {
		inputs[i] = "item"
		if i%4 == 0 {
			inputs[i] = "garbage"
		}
	}

	rep := &countingReporter{}
	_, err := New(Options{ChunkSize: 5, Workers: 4, Progress: rep}).Run(context.Background(), inputs, upper)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.total != 100 || rep.advanced != 100 || rep.ok != 75 || rep.finished != 1 {
		t.Errorf("reporter = %+v, want total=100 advanced=100 ok=75 finished=1", *rep)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, []string{"a", "b"}, upper)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Errorf("res = %+v, want nil", res)
	}
}

func TestRunCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fn := func(s string) (string, error) {
		if calls.Add(1) == 5 {
			cancel()
		}
		return upper(s)
	}

	inputs := make([]string, 50)
	for i := range inputs {
		inputs[i] = "x"
	}
	res, err := New(Options{ChunkSize: 1, Workers: 1}).Run(ctx, inputs, fn)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Errorf("res = %+v, want nil", res)
	}
	if n := calls.Load(); n >= 50 {
		t.Errorf("translated %d records after cancel, want fewer than 50", n)
	}
}

func TestRunEachIndex(t *testing.T) {
	inputs := []string{"a", "b", "c", "d"}
	res, err := New(Options{ChunkSize: 1}).RunEach(context.Background(), inputs, func(i int) TranslateFunc {
		return func(s string) (string, error) { return fmt.Sprintf("%s%d", s, i), nil }
	})
	if err != nil {
		t.Fatalf("RunEach: %v", err)
	}
	if got := strings.Join(res.Outputs, ","); got != "a0,b1,c2,d3" {
		t.Errorf("Outputs = %s", got)
	}
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), nil, upper)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Outputs) != 0 || len(res.Dropped) != 0 || res.Total != 0 {
		t.Errorf("res = %+v, want empty", res)
	}
}

func TestResultMetadata(t *testing.T) {
	res, err := Run(context.Background(), []string{"a", "garbage", "garbage2", "b"}, upper)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", res.RunID, err)
	}
	counts := res.FailureCounts()
	if counts[errors.ErrCodeParse] != 2 || len(counts) != 1 {
		t.Errorf("FailureCounts() = %v", counts)
	}
}

func TestNewDefaults(t *testing.T) {
	opts := New(Options{}).Options()
	if opts.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", opts.ChunkSize, DefaultChunkSize)
	}
	if opts.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", opts.Workers, runtime.NumCPU())
	}
	if opts.Progress == nil || opts.Logger == nil {
		t.Error("Progress and Logger should default to non-nil")
	}
}

type recordingHooks struct {
	observability.NoopBatchHooks
	mu       sync.Mutex
	items    int
	failed   int
	complete int
}

func (h *recordingHooks) OnItem(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items++
	if err != nil {
		h.failed++
	}
}

func (h *recordingHooks) OnBatchComplete(context.Context, string, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.complete++
}

func TestRunEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetBatchHooks(hooks)
	defer observability.Reset()

	if _, err := Run(context.Background(), []string{"a", "garbage", "b"}, upper); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if hooks.items != 3 || hooks.failed != 1 || hooks.complete != 1 {
		t.Errorf("hooks = items:%d failed:%d complete:%d", hooks.items, hooks.failed, hooks.complete)
	}
}
