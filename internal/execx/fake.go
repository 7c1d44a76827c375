package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Fake is an in-memory Runner for tests. Commands are matched by their
// joined "name arg1 arg2..." form; unmatched commands succeed with empty
// output unless StrictMode is set.
type Fake struct {
	mu sync.Mutex

	// Outputs maps a command line to the output Output should return.
	Outputs map[string]string

	// Errors maps a command line to the error Run/Output should return.
	Errors map[string]error

	// Missing lists tool names LookPath should report as absent.
	Missing map[string]bool

	// Paths maps tool names to resolved paths for LookPath. Defaults to
	// "/usr/local/bin/<name>" when unset.
	Paths map[string]string

	// StrictMode makes unmatched Output calls fail instead of returning "".
	StrictMode bool

	// OnRun, when set, is invoked for every Run call after recording.
	// Lets tests simulate a command's filesystem side effects.
	OnRun func(name string, args []string) error

	// Calls records every command line executed, in order.
	Calls []string
}

// NewFake returns an empty Fake runner.
func NewFake() *Fake {
	return &Fake{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
		Missing: make(map[string]bool),
		Paths:   make(map[string]string),
	}
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func (f *Fake) record(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, line)
}

func (f *Fake) Run(ctx context.Context, name string, args ...string) error {
	line := commandLine(name, args)
	f.record(line)
	if err, ok := f.Errors[line]; ok {
		return err
	}
	if f.OnRun != nil {
		return f.OnRun(name, args)
	}
	return nil
}

func (f *Fake) Output(ctx context.Context, name string, args ...string) (string, error) {
	line := commandLine(name, args)
	f.record(line)
	if err, ok := f.Errors[line]; ok {
		return "", err
	}
	if out, ok := f.Outputs[line]; ok {
		return out, nil
	}
	if f.StrictMode {
		return "", fmt.Errorf("unexpected command: %s", line)
	}
	return "", nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "/usr/local/bin/" + name, nil
}

// CalledWith reports whether any recorded call has the given prefix.
func (f *Fake) CalledWith(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns the number of recorded calls with the given prefix.
func (f *Fake) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
