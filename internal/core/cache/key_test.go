package cache

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeKey_NamedOrderIndependent(t *testing.T) {
	k1 := MakeKey("f", []any{1, 2}, map[string]any{"a": 1, "b": 2})
	k2 := MakeKey("f", []any{1, 2}, map[string]any{"b": 2, "a": 1})

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 16)
}

func TestMakeKey_Distinct(t *testing.T) {
	base := MakeKey("f", []any{1, 2}, nil)

	assert.NotEqual(t, base, MakeKey("f", []any{1, 3}, nil))
	assert.NotEqual(t, base, MakeKey("g", []any{1, 2}, nil))
	assert.NotEqual(t, base, MakeKey("f", []any{1, 2}, map[string]any{"a": 1}))
	assert.NotEqual(t,
		MakeKey("f", nil, map[string]any{"a": 1}),
		MakeKey("f", nil, map[string]any{"a": 2}),
	)
	assert.NotEqual(t,
		MakeKey("f", nil, map[string]any{"a": 1}),
		MakeKey("f", nil, map[string]any{"b": 1}),
	)
}

func TestMakeKey_PositionalOrderMatters(t *testing.T) {
	assert.NotEqual(t,
		MakeKey("f", []any{1, 2}, nil),
		MakeKey("f", []any{2, 1}, nil),
	)
}

func TestMakeKey_EmptyArgsEquivalent(t *testing.T) {
	assert.Equal(t,
		MakeKey("f", nil, nil),
		MakeKey("f", []any{}, map[string]any{}),
	)
}

func TestMakeKey_Deterministic(t *testing.T) {
	named := map[string]any{"geo": "KR", "keywords": []string{"BTS", "aespa"}, "days": 7}
	first := MakeKey("interest", nil, named)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MakeKey("interest", nil, named))
	}
}

func TestMakeKey_UnencodableValues(t *testing.T) {
	ch := make(chan int)
	fn := func() {}

	assert.NotPanics(t, func() {
		MakeKey("f", []any{ch}, map[string]any{"fn": fn})
	})
	assert.Equal(t,
		MakeKey("f", []any{ch}, nil),
		MakeKey("f", []any{ch}, nil),
	)
}

func TestNamed(t *testing.T) {
	args := Named("geo", "KR", "limit", 10, "dangling")

	assert.Equal(t, map[string]any{"geo": "KR", "limit": 10}, args.Named)
	assert.Nil(t, args.Positional)
}

func TestMakeKey_FloatsDistinctFromInts(t *testing.T) {
	assert.NotEqual(t,
		MakeKey("f", []any{1}, nil),
		MakeKey("f", []any{1.0}, nil),
	)
	assert.NotEqual(t,
		MakeKey("f", nil, map[string]any{"a": 2}),
		MakeKey("f", nil, map[string]any{"a": float32(2)}),
	)
	assert.Equal(t,
		MakeKey("f", []any{1.5}, nil),
		MakeKey("f", []any{float32(1.5)}, nil),
	)
	assert.NotPanics(t, func() {
		MakeKey("f", []any{math.NaN(), math.Inf(1)}, nil)
	})
}
