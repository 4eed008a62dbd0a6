package search

import "tailscale.com/util/deephash"

// Identity returns a key function for states that are already comparable.
func Identity[S comparable]() func(S) S {
	return func(s S) S { return s }
}

// HashKey returns a key function for states that cannot be map keys
// themselves, such as states holding slices or maps. The key is a deep
// hash of the state's contents, so two states with equal contents share a
// key.
func HashKey[S any]() func(S) deephash.Sum {
	h := deephash.HasherForType[S]()
	return func(s S) deephash.Sum {
		return h(&s)
	}
}
