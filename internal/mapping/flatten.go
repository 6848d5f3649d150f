package mapping

import (
	"strconv"

	"github.com/clearform/sf86-filler/internal/form"
)

// Flatten walks a nested form-data node and returns a map from logical path
// to leaf value. Object nesting appends ".key", array elements append
// "[index]". A node containing a "value" key is a leaf and is not descended
// into, whatever other keys it carries.
//
// Absent leaves produce no entry: nil values and missing keys are treated as
// "nothing here", while falsy-but-defined values (false, "", 0) are recorded.
func Flatten(prefix string, node any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, prefix, node)
	return out
}

func flattenInto(out map[string]any, path string, node any) {
	switch n := node.(type) {
	case nil:
		return
	case form.Field:
		if n.Value != nil {
			out[path] = n.Value
		}
	case *form.Field:
		if n != nil && n.Value != nil {
			out[path] = n.Value
		}
	case map[string]any:
		if v, ok := n["value"]; ok {
			if v != nil {
				out[path] = v
			}
			return
		}
		for k, child := range n {
			flattenInto(out, path+"."+k, child)
		}
	case []any:
		for i, el := range n {
			flattenInto(out, path+"["+strconv.Itoa(i)+"]", el)
		}
	default:
		// A bare scalar at a leaf position is its own value; tree authors
		// sometimes skip the Field wrapper for simple slots.
		out[path] = n
	}
}
