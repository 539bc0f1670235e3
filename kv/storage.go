package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map
// but uses linear search instead, which proves to be more efficient on relatively low amount
// of entries, which often enough is the case for headers. Keys are matched case-insensitively,
// the original spelling is preserved.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain unordered
// pairs.
func NewFromMap(m map[string][]string) *Storage {
	// the preallocation counts keys, not values, so multi-value keys will cause the
	// slice to grow. Happens once per storage, not worth counting precisely.
	s := NewPrealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			s.Add(key, value)
		}
	}

	return s
}

// Add adds a new pair of key and value, no matter whether the key is already present.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set replaces the first entry of the key with the new value, removing the rest of them.
// If the key wasn't presented before, the pair is simply added. The passed spelling of
// the key wins over the stored one.
func (s *Storage) Set(key, value string) *Storage {
	for i := range s.pairs {
		if strcomp.EqualFold(key, s.pairs[i].Key) {
			s.pairs[i] = Pair{Key: key, Value: value}
			s.removeAfter(key, i+1)
			return s
		}
	}

	return s.Add(key, value)
}

// Delete removes all the entries of the key.
func (s *Storage) Delete(key string) *Storage {
	s.removeAfter(key, 0)
	return s
}

func (s *Storage) removeAfter(key string, offset int) {
	kept := s.pairs[:offset]

	for _, pair := range s.pairs[offset:] {
		if !strcomp.EqualFold(key, pair.Key) {
			kept = append(kept, pair)
		}
	}

	s.pairs = kept
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned.
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns an iterator over all the values of the key, in insertion order.
func (s *Storage) Values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if strcomp.EqualFold(pair.Key, key) && !yield(pair.Value) {
				break
			}
		}
	}
}

// Keys returns an iterator over all unique presented keys. The keys are snapshotted
// beforehand, thereby entries may be safely deleted on the go.
func (s *Storage) Keys() iter.Seq[string] {
	unique := make([]string, 0, len(s.pairs))

	for _, pair := range s.pairs {
		if !contains(unique, pair.Key) {
			unique = append(unique, pair.Key)
		}
	}

	return func(yield func(string) bool) {
		for _, key := range unique {
			if !yield(key) {
				break
			}
		}
	}
}

// Pairs returns an iterator over the pairs.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be modified without affecting the original storage.
func (s *Storage) Clone() *Storage {
	if len(s.pairs) == 0 {
		return New()
	}

	pairs := make([]Pair, len(s.pairs))
	copy(pairs, s.pairs)

	return &Storage{pairs: pairs}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if strcomp.EqualFold(element, key) {
			return true
		}
	}

	return false
}
