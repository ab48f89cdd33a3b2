package discrete

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/factree/core"
)

// DiscreteKey pairs a variable key with its cardinality (number of
// states, indexed 0..Card-1).
type DiscreteKey struct {
	Key  core.Key
	Card int
}

// SortDiscreteKeys sorts keys ascending by Key, in place, and returns the
// slice.
func SortDiscreteKeys(keys []DiscreteKey) []DiscreteKey {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })

	return keys
}

// Values assigns a state index to each discrete variable.
type Values map[core.Key]int

// Copy returns a shallow copy of the assignment.
func (v Values) Copy() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}

	return out
}

// Keys returns the assigned keys in ascending order.
func (v Values) Keys() []core.Key {
	keys := make([]core.Key, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	core.SortKeys(keys)

	return keys
}

// String renders the assignment as "x0=1 x2=0" with keys ascending.
func (v Values) String() string {
	var b strings.Builder
	for i, k := range v.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(core.DefaultKeyFormatter(k))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(v[k]))
	}

	return b.String()
}

// mergeValues moves the entries of src into dst, rejecting keys dst
// already holds.
func mergeValues(dst, src Values) error {
	for k, s := range src {
		if _, ok := dst[k]; ok {
			return fmt.Errorf("%w: %s solved twice", ErrDuplicateKey, core.DefaultKeyFormatter(k))
		}
		dst[k] = s
	}

	return nil
}
