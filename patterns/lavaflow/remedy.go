package lavaflow

import "maps"

// Double is the only code path DataProcessor ever ran in production.
func Double(data []int) []int {
	out := make([]int, len(data))
	for i, v := range data {
		out[i] = v * 2
	}
	return out
}

// sensitiveKeys are dropped by Redact.
var sensitiveKeys = []string{"password", "secret"}

// Redact returns a copy of user without sensitive keys.
func Redact(user map[string]any) map[string]any {
	out := maps.Clone(user)
	if out == nil {
		return map[string]any{}
	}
	for _, k := range sensitiveKeys {
		delete(out, k)
	}
	return out
}
