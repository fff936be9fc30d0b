// Package testing provides test doubles for the sshutil package.
package testing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// Response is a canned result for a command.
type Response struct {
	Stdout string
	Err    error
}

// Call records one Execute invocation.
type Call struct {
	Target sshutil.Target
	Cmd    string
}

// FakeExecutor simulates remote command execution for testing.
// Responses are registered per host, keyed by an exact command or a regex.
type FakeExecutor struct {
	mu         sync.Mutex
	responses  map[string]map[string]Response // host -> pattern -> response
	hostErrors map[string]error

	// Calls lists every Execute invocation in order, for assertions.
	Calls []Call
}

// NewFakeExecutor creates an executor with no canned responses.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		responses:  make(map[string]map[string]Response),
		hostErrors: make(map[string]error),
	}
}

// SetResponse registers a response for commands on host matching pattern.
// The pattern is tried as an exact command first, then as a regex.
func (f *FakeExecutor) SetResponse(host, pattern string, resp Response) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.responses[host] == nil {
		f.responses[host] = make(map[string]Response)
	}
	f.responses[host][pattern] = resp
	return f
}

// SetOutput is shorthand for a successful response.
func (f *FakeExecutor) SetOutput(host, pattern, stdout string) *FakeExecutor {
	return f.SetResponse(host, pattern, Response{Stdout: stdout})
}

// FailHost makes every command on host fail with err, as if the
// connection could not be established.
func (f *FakeExecutor) FailHost(host string, err error) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hostErrors[host] = err
	return f
}

// Execute returns the canned response for cmd on target.Host.
// Output is trimmed like the real executor.
func (f *FakeExecutor) Execute(ctx context.Context, target sshutil.Target, cmd string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Target: target, Cmd: cmd})

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err, ok := f.hostErrors[target.Host]; ok {
		return "", err
	}

	byPattern := f.responses[target.Host]
	if resp, ok := byPattern[cmd]; ok {
		return strings.TrimSpace(resp.Stdout), resp.Err
	}
	for pattern, resp := range byPattern {
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			return strings.TrimSpace(resp.Stdout), resp.Err
		}
	}

	return "", fmt.Errorf("fake executor: no response for %q on %s", cmd, target.Host)
}

// CommandsFor returns the commands executed against host, in order.
func (f *FakeExecutor) CommandsFor(host string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cmds []string
	for _, c := range f.Calls {
		if c.Target.Host == host {
			cmds = append(cmds, c.Cmd)
		}
	}
	return cmds
}

var _ sshutil.Executor = (*FakeExecutor)(nil)
