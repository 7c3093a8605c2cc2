package llist

// KeyValuePair is a tuple, used by the cache bulk operations to carry a
// key together with its value.
type KeyValuePair[TK any, TV any] struct {
	Key   TK
	Value TV
}
