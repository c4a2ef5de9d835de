package catalog

import (
	"fmt"
	"strings"

	"github.com/human-pangenomics/hprccatalog/config"
)

// DuplicateIDError lists every identity key that occurs more than once, in
// order of first occurrence.
type DuplicateIDError struct {
	Entity string
	IDs    []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("Duplicate %s IDs found: %s", e.Entity, strings.Join(e.IDs, ", "))
}

// VerifyUniqueIDs fails if any two entities share an identity key.
func VerifyUniqueIDs[E any](entityName string, entities []E, getID func(E) string) error {
	counts := make(map[string]int, len(entities))
	var order []string
	for _, e := range entities {
		id := getID(e)
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var duplicates []string
	for _, id := range order {
		if counts[id] > 1 {
			duplicates = append(duplicates, id)
		}
	}
	if len(duplicates) > 0 {
		return &DuplicateIDError{Entity: entityName, IDs: duplicates}
	}

	return nil
}

// EnforceUniqueIDs keeps the first entity with each identity key. The keys
// that had later copies removed are returned in order of first occurrence.
func EnforceUniqueIDs[E any](entities []E, getID func(E) string) (kept []E, removed []string) {
	found := make(map[string]bool, len(entities))
	reported := make(map[string]bool)
	kept = make([]E, 0, len(entities))
	for _, e := range entities {
		id := getID(e)
		if !found[id] {
			found[id] = true
			kept = append(kept, e)
			continue
		}
		if !reported[id] {
			reported[id] = true
			removed = append(removed, id)
		}
	}

	return kept, removed
}

// uniqueIDs applies mode. Lenient removals are returned for the caller to
// report as a single warning.
func uniqueIDs[E any](mode config.Uniqueness, entityName string, entities []E, getID func(E) string) ([]E, []string, error) {
	switch mode {
	case config.Strict:
		return entities, nil, VerifyUniqueIDs(entityName, entities, getID)
	case config.Lenient:
		kept, removed := EnforceUniqueIDs(entities, getID)
		return kept, removed, nil
	}
	return nil, nil, fmt.Errorf("%s: unknown uniqueness mode %q", entityName, mode)
}
