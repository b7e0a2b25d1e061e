package tmux

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// MemorySession is a session created by MemoryClient
type MemorySession struct {
	Command []string
	Dir     string
	Name    string
}

// MemoryClient is an in-process stand-in for tmux used by mock mode
type MemoryClient struct {
	attached   []string
	inside     bool
	mu         sync.Mutex
	newCalls   int
	paneOutput string
	sessions   map[string]MemorySession
	switched   []string
}

// Compile-time interface verification
var _ ports.TmuxClient = (*MemoryClient)(nil)

// NewMemoryClient creates an empty in-memory client. paneOutput is returned
// by every CapturePane call.
func NewMemoryClient(paneOutput string) *MemoryClient {
	return &MemoryClient{
		paneOutput: paneOutput,
		sessions:   make(map[string]MemorySession),
	}
}

// SetInsideTmux controls what InsideTmux reports
func (c *MemoryClient) SetInsideTmux(inside bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inside = inside
}

func (c *MemoryClient) Available() error { return nil }

func (c *MemoryClient) HasSession(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[name]
	return ok, nil
}

func (c *MemoryClient) NewSession(ctx context.Context, name, dir string, command []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.newCalls++
	if _, ok := c.sessions[name]; ok {
		return fmt.Errorf("%w %s: duplicate session", ports.ErrSessionCreate, name)
	}
	c.sessions[name] = MemorySession{
		Command: append([]string(nil), command...),
		Dir:     dir,
		Name:    name,
	}
	logging.Logger.Debug("Mock session created", "name", name, "dir", dir)
	return nil
}

func (c *MemoryClient) InsideTmux() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inside
}

func (c *MemoryClient) SwitchClient(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[name]; !ok {
		return fmt.Errorf("can't find session: %s", name)
	}
	c.switched = append(c.switched, name)
	return nil
}

func (c *MemoryClient) AttachReplace(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[name]; !ok {
		return fmt.Errorf("can't find session: %s", name)
	}
	c.attached = append(c.attached, name)
	return nil
}

func (c *MemoryClient) CapturePane(ctx context.Context, target string, startLine int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target != "" {
		if _, ok := c.sessions[target]; !ok {
			return "", fmt.Errorf("can't find pane: %s", target)
		}
	}
	return c.paneOutput, nil
}

// Sessions returns the created sessions sorted by name
func (c *MemoryClient) Sessions() []MemorySession {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MemorySession, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NewSessionCalls counts NewSession invocations, successful or not
func (c *MemoryClient) NewSessionCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newCalls
}

// Switched returns the sessions SwitchClient moved to, in order
func (c *MemoryClient) Switched() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.switched...)
}

// Attached returns the sessions AttachReplace targeted, in order
func (c *MemoryClient) Attached() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.attached...)
}
