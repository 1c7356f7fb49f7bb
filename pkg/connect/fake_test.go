package connect

import (
	"context"
	"strings"
)

// fakeRunner answers commands from a script keyed by the full command line.
// Unscripted commands succeed with no output.
type fakeRunner struct {
	script map[string][]Result
	calls  []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{script: map[string][]Result{}}
}

// on queues results for cmdline; the last one repeats once the queue is drained.
func (f *fakeRunner) on(cmdline string, results ...Result) *fakeRunner {
	f.script[cmdline] = append(f.script[cmdline], results...)
	return f
}

func (f *fakeRunner) Run(_ context.Context, program string, args ...string) Result {
	cmdline := strings.Join(append([]string{program}, args...), " ")
	f.calls = append(f.calls, cmdline)

	queue := f.script[cmdline]
	switch len(queue) {
	case 0:
		return Result{}
	case 1:
		return queue[0]
	}
	f.script[cmdline] = queue[1:]
	return queue[0]
}

func (f *fakeRunner) count(cmdline string) int {
	n := 0
	for _, call := range f.calls {
		if call == cmdline {
			n++
		}
	}
	return n
}

func (f *fakeRunner) called(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
