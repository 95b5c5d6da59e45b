// Package tags extracts metadata tags and filters out the noisy ones.
package tags

import (
	"regexp"

	"github.com/five82/mediameta/internal/media"
)

// boringPattern matches a few fixed structural keys, keys beginning with an
// underscore (e.g. mkvmerge's _STATISTICS_* tags) and keys in reverse domain
// notation (e.g. com.apple.quicktime.*). Matching is case-insensitive.
var boringPattern = regexp.MustCompile(`(?i)^((major_brand|minor_version|compatible_brands|creation_time|handler_name|encoder)$|_|com\.)`)

// IsBoring reports whether a tag key is low-value for display.
func IsBoring(key string) bool {
	return boringPattern.MatchString(key)
}

// Extract copies raw tags in order, dropping entries with an empty value.
func Extract(raw media.Tags) media.Tags {
	out := make(media.Tags, 0, len(raw))
	for _, t := range raw {
		if t.Value == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Filter returns the tags whose keys are not boring, in their original order.
func Filter(tags media.Tags) media.Tags {
	out := make(media.Tags, 0, len(tags))
	for _, t := range tags {
		if IsBoring(t.Key) {
			continue
		}
		out = append(out, t)
	}
	return out
}
