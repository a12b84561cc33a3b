package internal

import (
	"iter"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect[T any](seq iter.Seq2[string, T]) (keys []string, vals []T) {
	for k, v := range seq {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"x": 1})
	b := maps.All(map[string]int{"y": 2})

	keys, vals := collect(IterSeq2Concat(a, b))
	assert.Equal([]string{"x", "y"}, keys)
	assert.Equal([]int{1, 2}, vals)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"x": 1})
	b := maps.All(map[string]int{"y": 2})

	var keys []string
	for k := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		break
	}
	assert.Equal([]string{"x"}, keys)
}

func TestIterSeq2Prefix(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Prefix("0.", maps.All(map[string]int{"a": 7}))

	keys, vals := collect(seq)
	assert.Equal([]string{"0.a"}, keys)
	assert.Equal([]int{7}, vals)
}
