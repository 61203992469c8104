// SPDX-License-Identifier: MPL-2.0

package resolve

// MergeLayers deep-merges configuration layers in ascending precedence
// order: later layers override earlier ones. A key present in a higher
// layer wins even when its value is a zero value (false, 0, ""); keys the
// higher layer does not mention survive from below. Nested maps merge key
// by key; arrays and scalars are replaced wholesale. The inputs are not
// mutated.
func MergeLayers(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for _, layer := range layers {
		mergeInto(merged, layer)
	}
	return merged
}

// mergeInto writes src over dst. dst is owned by the merge; src is only
// read, and any map or slice taken from it is copied first so later merges
// never write through into a caller's layer.
func mergeInto(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcIsMap := val.(map[string]any)
		if !srcIsMap {
			dst[key] = deepCopyValue(val)
			continue
		}
		dstMap, dstIsMap := dst[key].(map[string]any)
		if !dstIsMap {
			dst[key] = deepCopyMap(srcMap)
			continue
		}
		mergeInto(dstMap, srcMap)
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
