package common

import "strings"

// DefaultBanner is the first line of every generated file unless the caller
// overrides it.
const DefaultBanner = "Generated with structgen"

// FileHeader renders the comment block at the top of a generated file:
// the banner line(s) followed by the model name.
func FileHeader(comment, banner, model string) string {
	if banner == "" {
		banner = DefaultBanner
	}
	var b strings.Builder
	for _, line := range strings.Split(banner, "\n") {
		b.WriteString(comment)
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	b.WriteString(comment)
	b.WriteString(" model : ")
	b.WriteString(model)
	return b.String()
}
