package terminal

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
)

// Redactor masks secrets found by the default gitleaks rule set
type Redactor struct {
	detector *detect.Detector
	initErr  error
	mu       sync.Mutex
	once     sync.Once
}

// NewRedactor creates a Redactor. The rule set is compiled on first use.
func NewRedactor() *Redactor {
	return &Redactor{}
}

func (r *Redactor) load() {
	r.once.Do(func() {
		r.detector, r.initErr = detect.NewDetectorDefaultConfig()
		if r.initErr != nil {
			logging.Logger.Warn("Secret detector unavailable, scrollback stored unredacted", "error", r.initErr)
		}
	})
}

// Redact replaces each detected secret with [REDACTED:<rule>]
func (r *Redactor) Redact(content string) string {
	if content == "" {
		return content
	}
	r.load()
	if r.detector == nil {
		return content
	}

	// The detector accumulates state between scans
	r.mu.Lock()
	findings := r.detector.DetectString(content)
	r.mu.Unlock()

	if len(findings) == 0 {
		return content
	}

	// Longest secrets first so a secret containing another is masked whole
	sort.SliceStable(findings, func(i, j int) bool {
		return len(findings[i].Secret) > len(findings[j].Secret)
	})
	for _, f := range findings {
		if f.Secret == "" {
			continue
		}
		content = strings.ReplaceAll(content, f.Secret, fmt.Sprintf("[REDACTED:%s]", f.RuleID))
	}
	logging.Logger.Debug("Redacted secrets from scrollback", "count", len(findings))
	return content
}
