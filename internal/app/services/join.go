package services

// indexBy builds a lookup map from a slice using the given key extractor.
// Later duplicates win, which does not matter for unique database ids.
func indexBy[T any, K comparable](items []T, key func(T) K) map[K]T {
	idx := make(map[K]T, len(items))
	for _, item := range items {
		idx[key(item)] = item
	}
	return idx
}

// lookup returns a pointer to the indexed value, or nil when the key is
// absent. The pointer refers to a copy so callers can attach it as a relation
// without aliasing the index.
func lookup[T any, K comparable](idx map[K]T, key K) *T {
	if v, ok := idx[key]; ok {
		return &v
	}
	return nil
}

// lookupOpt is lookup for nullable foreign keys
func lookupOpt[T any, K comparable](idx map[K]T, key *K) *T {
	if key == nil {
		return nil
	}
	return lookup(idx, *key)
}
