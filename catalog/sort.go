package catalog

import (
	"bytes"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByKey orders entities by key using English collation, so that case and
// punctuation sort the way a reader expects rather than by byte value. Equal
// keys keep their source order.
func SortByKey[E any](entities []E, key func(E) string) {
	// Collators are not safe for concurrent use.
	c := collate.New(language.AmericanEnglish)

	var buf collate.Buffer
	sortKeys := make(map[string][]byte, len(entities))
	for _, e := range entities {
		k := key(e)
		if _, exists := sortKeys[k]; !exists {
			sortKeys[k] = slices.Clone(c.KeyFromString(&buf, k))
			buf.Reset()
		}
	}

	slices.SortStableFunc(entities, func(a, b E) int {
		return bytes.Compare(sortKeys[key(a)], sortKeys[key(b)])
	})
}
