package use_cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// TermResolver maps user-supplied taxonomy names (or raw IDs) to target
// platform term IDs, creating missing terms on demand. Its view of the
// platform's terms lasts for one Resolve call only.
type TermResolver struct {
	api    ports.WordPressAPI
	logger *slog.Logger
}

func NewTermResolver(api ports.WordPressAPI) *TermResolver {
	return &TermResolver{
		api:    api,
		logger: slog.Default().With("component", "term_resolver"),
	}
}

// Resolve turns a comma-separated list of names or numeric IDs into a
// deduplicated set of term IDs. Missing names are created concurrently;
// a "term already exists" response is recoverable, any other creation
// failure fails the whole resolution.
func (r *TermResolver) Resolve(ctx context.Context, namesOrIDs string, termType models.TermType) ([]int, error) {
	parts := splitTermList(namesOrIDs)
	if len(parts) == 0 {
		return nil, nil
	}

	existing, err := r.api.ListTerms(ctx, termType)
	if err != nil {
		return nil, &models.TermResolutionError{TermType: termType, Err: fmt.Errorf("list terms: %w", err)}
	}

	byName := make(map[string]int, len(existing))
	byID := make(map[int]bool, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.Name)] = t.ID
		byID[t.ID] = true
	}

	ids := make(map[int]struct{})
	seen := make(map[string]bool)
	var toCreate []string
	for _, part := range parts {
		if id, ok := byName[strings.ToLower(part)]; ok {
			ids[id] = struct{}{}
			continue
		}
		if n, convErr := strconv.Atoi(part); convErr == nil && byID[n] {
			ids[n] = struct{}{}
			continue
		}
		if key := strings.ToLower(part); !seen[key] {
			seen[key] = true
			toCreate = append(toCreate, part)
		}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var createErrs []error

	for _, name := range toCreate {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			term, createErr := r.api.CreateTerm(ctx, termType, name)

			mu.Lock()
			defer mu.Unlock()

			if createErr != nil {
				if errors.Is(createErr, models.ErrTermExists) {
					// duplicate race, not a failure
					r.logger.WarnContext(ctx, "Term already exists, skipping",
						"term_type", termType,
						"name", name,
					)
					return
				}
				createErrs = append(createErrs, fmt.Errorf("create %q: %w", name, createErr))
				return
			}
			ids[term.ID] = struct{}{}
		}(name)
	}
	wg.Wait()

	if len(createErrs) > 0 {
		return nil, &models.TermResolutionError{TermType: termType, Err: errors.Join(createErrs...)}
	}

	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out, nil
}

func splitTermList(namesOrIDs string) []string {
	var parts []string
	for _, part := range strings.Split(namesOrIDs, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
