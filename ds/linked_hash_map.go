package ds

import (
	"bytes"
	"encoding/json"
)

// LinkedHashMap is a map that remembers the order keys were first put in.
// Putting an existing key again replaces the value and keeps the position.
type LinkedHashMap[K comparable, V any] struct {
	hashMap map[K]V
	keys    []K
}

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		hashMap: map[K]V{},
		keys:    make([]K, 0),
	}
}

func (r *LinkedHashMap[K, V]) Len() int {
	return len(r.keys)
}

func (r *LinkedHashMap[K, V]) Keys() []K {
	return ShallowCopy(r.keys)
}

func (r *LinkedHashMap[K, V]) Values() []V {
	values := make([]V, 0, len(r.keys))
	for _, key := range r.keys {
		values = append(values, r.hashMap[key])
	}
	return values
}

func (r *LinkedHashMap[K, V]) Put(key K, value V) {
	if _, existed := r.hashMap[key]; !existed {
		r.keys = append(r.keys, key)
	}
	r.hashMap[key] = value
}

func (r *LinkedHashMap[K, V]) Get(key K) (V, bool) {
	value, ok := r.hashMap[key]
	return value, ok
}

// GetOrPut returns the value at key, first storing create() if it is absent.
func (r *LinkedHashMap[K, V]) GetOrPut(key K, create func() V) V {
	value, ok := r.hashMap[key]
	if !ok {
		value = create()
		r.Put(key, value)
	}
	return value
}

func (r LinkedHashMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	buf.WriteRune('{')
	for i, key := range r.keys {
		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)

		buf.WriteRune(':')

		valueBs, err := json.Marshal(r.hashMap[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBs)

		if i < len(r.keys)-1 {
			buf.WriteRune(',')
		}
	}
	buf.WriteRune('}')

	return buf.Bytes(), nil
}
