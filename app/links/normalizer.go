package links

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// The three entities the upstream site emits inside escaped attributes.
// This is deliberately not a general HTML entity decoder.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
)

var urlTokenPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)
var trailingPunctPattern = regexp.MustCompile(`[)\].,;]+$`)

type Normalizer struct {
	host          string
	coursePattern *regexp.Regexp
}

// NewNormalizer builds a normalizer accepting course URLs on the given apex
// host or any of its subdomains. Scheme and host match case-insensitively,
// the path does not.
func NewNormalizer(host string) *Normalizer {
	pattern := fmt.Sprintf(`^(?i:https?://(?:[a-z0-9.-]+\.)?%s)/course/[^/?#]+`,
		regexp.QuoteMeta(strings.ToLower(host)))

	return &Normalizer{
		host:          host,
		coursePattern: regexp.MustCompile(pattern),
	}
}

// Run extracts canonical course URLs from free text: decode the fixed entity
// set, scan for URL tokens, strip trailing prose punctuation, keep only URLs
// matching the course shape, strip fragments, dedupe and sort.
func (n *Normalizer) Run(text string) []string {
	cleaned := entityReplacer.Replace(text)
	candidates := urlTokenPattern.FindAllString(cleaned, -1)

	seen := make(map[string]bool)
	out := make([]string, 0, len(candidates))

	for _, raw := range candidates {
		raw = trailingPunctPattern.ReplaceAllString(raw, "")

		if !n.coursePattern.MatchString(raw) {
			continue
		}

		url, _, _ := strings.Cut(raw, "#")
		if !seen[url] {
			seen[url] = true
			out = append(out, url)
		}
	}

	sort.Strings(out)
	return out
}

// RunList normalizes an ordered list of raw strings by joining them with
// newlines and running the text pipeline, so list input gets exactly the same
// shape validation and decoration stripping as free text.
func (n *Normalizer) RunList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	return n.Run(strings.Join(values, "\n"))
}
