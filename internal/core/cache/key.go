package cache

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Args are the arguments of a memoized call. Named arguments are order-independent.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Named builds Args from alternating name/value pairs. A trailing name without a
// value is ignored.
func Named(pairs ...any) Args {
	named := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		named[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return Args{Named: named}
}

// MakeKey derives the cache key of a call from the operation name, its positional
// arguments and its named arguments sorted by name.
func MakeKey(name string, positional []any, named map[string]any) string {
	names := make([]string, 0, len(named))
	for k := range named {
		names = append(names, k)
	}
	sort.Strings(names)

	kwargs := make([][2]any, 0, len(names))
	for _, k := range names {
		kwargs = append(kwargs, [2]any{k, canonical(named[k])})
	}

	args := make([]any, len(positional))
	for i, v := range positional {
		args[i] = canonical(v)
	}

	payload, err := json.Marshal(struct {
		Func   string   `json:"func"`
		Args   []any    `json:"args"`
		Kwargs [][2]any `json:"kwargs"`
	}{name, args, kwargs})
	if err != nil {
		// canonical already reduced unencodable values to strings
		payload = []byte(fmt.Sprintf("%s|%v|%v", name, args, kwargs))
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// canonical returns v if it encodes as JSON and its %v form otherwise. Top-level
// floats always carry a fraction or exponent so 1.0 and 1 derive different keys;
// floats nested inside slices or structs encode like integers when whole.
func canonical(v any) any {
	switch f := v.(type) {
	case float64:
		return floatNumber(f)
	case float32:
		return floatNumber(float64(f))
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}

func floatNumber(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprintf("%v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s)
}
