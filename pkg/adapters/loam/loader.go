package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the Deduce RuleLoader interface.
// Each document in the repository is one rule: the frontmatter carries
// "id", "if" and "then", the body is the explanation. Rules are ordered by
// document path, so numeric prefixes ("010-flu.md") control declaration order.
type Loader struct {
	Repo *loam.TypedRepository[RuleMetadata]
	name string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[RuleMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		name: name,
	}
}

// Open initializes a read-only, strict Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The engine never writes rules, so the repository is read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	typedRepo := loam.NewTypedRepository[RuleMetadata](repo)
	return New(typedRepo, filepath.Base(absPath)), nil
}

// Name returns the catalog name (the directory name by default).
func (l *Loader) Name() string {
	return l.name
}

// LoadRules lists every document and converts it into a rule spec.
func (l *Loader) LoadRules(ctx context.Context) ([]domain.RuleSpec, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		paths = append(paths, doc.ID)
	}
	sort.Strings(paths)

	seen := make(map[string]string, len(paths))
	specs := make([]domain.RuleSpec, 0, len(paths))

	for _, path := range paths {
		doc, err := l.Repo.Get(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", path, err)
		}

		id := doc.Data.ID
		if id == "" {
			id = trimExtension(filepath.Base(path))
		}

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: rule ID '%s' is defined in both '%s' and '%s'", id, existingPath, path)
		}
		seen[id] = path

		explanation := doc.Data.Explanation
		if explanation == "" {
			explanation = strings.TrimSpace(doc.Content)
		}

		specs = append(specs, domain.RuleSpec{
			ID:          id,
			If:          doc.Data.If,
			Then:        doc.Data.Then,
			Explanation: explanation,
		})
	}

	return specs, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	// Recursive doublestar pattern supported by Loam.
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
