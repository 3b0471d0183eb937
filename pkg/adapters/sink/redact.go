package sink

import (
	"context"
	"fmt"
	"maps"
	"regexp"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

// RedactSink masks the values of fields whose key matches any pattern before
// handing the submission on. The caller's submission is left untouched.
type RedactSink struct {
	next     ports.SubmissionSink
	patterns []*regexp.Regexp
}

// NewRedactSink compiles the key patterns and wraps next.
func NewRedactSink(next ports.SubmissionSink, patterns []string) (*RedactSink, error) {
	s := &RedactSink{next: next}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

func (s *RedactSink) Submit(ctx context.Context, sub domain.Submission) error {
	if len(s.patterns) > 0 {
		sub.Values = maps.Clone(sub.Values)
		for k := range sub.Values {
			if s.sensitive(k) {
				sub.Values[k] = Mask
			}
		}
	}
	return s.next.Submit(ctx, sub)
}

func (s *RedactSink) sensitive(key string) bool {
	for _, p := range s.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
