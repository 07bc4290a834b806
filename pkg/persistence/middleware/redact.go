package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/ports"
)

// Mask replaces every redacted span.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks matches of patterns in
// the raw input line before a report is stored. Facts are left untouched:
// they are vocabulary terms, never free text.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, report *domain.Report) error {
	// Shallow copy: only Input is rewritten, the caller's report stays intact.
	cloned := *report
	for _, p := range m.patterns {
		cloned.Input = p.ReplaceAllString(cloned.Input, Mask)
	}
	return m.next.Save(ctx, &cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
