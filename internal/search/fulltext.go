package search

import "slices"

// matchDocument reports whether every word of q occurs among the words of the
// document. It is the in-process counterpart of
// to_tsvector('simple', doc) @@ plainto_tsquery('simple', q).
func matchDocument(doc []string, q string) bool {
	terms := words(q)
	if len(terms) == 0 {
		return false
	}

	var tokens []string
	for _, part := range doc {
		tokens = append(tokens, words(part)...)
	}

	for _, term := range terms {
		if !slices.Contains(tokens, term) {
			return false
		}
	}
	return true
}
