package links

import (
	"fmt"
	"strings"
)

// Summary is a rendered notification. Dispatch belongs to the caller.
type Summary struct {
	Subject string
	Body    string
}

// FormatSummary renders the human-readable update for one reconcile run:
// counts in the subject, bulleted "New links" and "Unrolled" sections in the
// body, with a "(none)" placeholder for empty sections.
func FormatSummary(added, pending []string) Summary {
	subject := fmt.Sprintf("Course links update: +%d new, %d unrolled", len(added), len(pending))

	var body strings.Builder
	body.WriteString("New links:\n")
	body.WriteString(formatBullets(added))
	body.WriteString("\n\nUnrolled (STATUS != DONE):\n")
	body.WriteString(formatBullets(pending))
	body.WriteString("\n")

	return Summary{Subject: subject, Body: body.String()}
}

func formatBullets(urls []string) string {
	if len(urls) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(urls))
	for _, url := range urls {
		lines = append(lines, "- "+url)
	}
	return strings.Join(lines, "\n")
}
