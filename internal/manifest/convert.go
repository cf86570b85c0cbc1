// This file converts the native values produced by the TOML decoder into a
// cty.Value tree, the generic representation every other part of this
// package works against.

package manifest

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// nativeToCty recursively converts a decoded TOML value into its cty
// counterpart. Tables become objects and arrays become tuples, since neither
// is required to be homogeneous in TOML.
func nativeToCty(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case map[string]any:
		if len(tv) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(tv))
		for key, elem := range tv {
			val, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in key '%s': %w", key, err)
			}
			attrs[key] = val
		}
		return cty.ObjectVal(attrs), nil

	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(tv))
		for i, elem := range tv {
			val, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in element %d: %w", i, err)
			}
			elems = append(elems, val)
		}
		return cty.TupleVal(elems), nil

	case string:
		return cty.StringVal(tv), nil

	case bool:
		return cty.BoolVal(tv), nil

	case int64:
		return cty.NumberIntVal(tv), nil

	case float64:
		// cty numbers cannot hold nan or inf.
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return cty.StringVal(strconv.FormatFloat(tv, 'g', -1, 64)), nil
		}
		return cty.NumberFloatVal(tv), nil

	case time.Time:
		return cty.StringVal(tv.Format(time.RFC3339Nano)), nil

	case fmt.Stringer:
		// Local dates and times.
		return cty.StringVal(tv.String()), nil

	default:
		return cty.NilVal, fmt.Errorf("unsupported TOML value of type %T", v)
	}
}
