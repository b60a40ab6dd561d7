package main

import "strings"

// splitCommaSeparatedValues splits a comma-separated flag value into its
// non-empty, trimmed entries.
func splitCommaSeparatedValues(in string) []string {
	var out []string
	for _, v := range strings.Split(in, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
