package common

import "strings"

func FormatStringSlice(s []string) string {
	return "[" + strings.Join(s, ", ") + "]"
}
