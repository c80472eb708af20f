package output

import "strings"

// FormatHeader returns a markdown heading of the given level.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bolded markdown key-value line.
func FormatKeyValue(key, value string) string {
	return "**" + key + ":** " + value
}
