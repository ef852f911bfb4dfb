package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.True(t, len(lhm.Keys()) == 0)

	lhm.Put("b", 1)
	lhm.Put("a", 2)
	lhm.Put("b", 3)

	assert.Equal(t, []string{"b", "a"}, lhm.Keys())
	assert.Equal(t, []int{3, 2}, lhm.Values())
}

func TestLinkedHashMap_GetOrPut(t *testing.T) {
	lhm := NewLinkedHashMap[string, []int]()
	calls := 0
	create := func() []int {
		calls += 1
		return []int{calls}
	}

	assert.Equal(t, []int{1}, lhm.GetOrPut("x", create))
	assert.Equal(t, []int{1}, lhm.GetOrPut("x", create))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, lhm.Len())
}

func TestLinkedHashMap_MarshalJSON(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("def", 2)
	lhm.Put("abc", 1)

	bs, err := json.Marshal(lhm)
	assert.NoError(t, err)

	assert.Equal(t, `{"def":2,"abc":1}`, string(bs))
}
