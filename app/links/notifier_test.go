package links

import (
	"strings"
	"testing"
)

func TestFormatSummary(t *testing.T) {
	added := []string{"https://udemy.com/course/a"}
	pending := []string{"https://udemy.com/course/a", "https://udemy.com/course/b"}

	summary := FormatSummary(added, pending)

	if summary.Subject != "Course links update: +1 new, 2 unrolled" {
		t.Errorf("Unexpected subject: %s", summary.Subject)
	}
	if !strings.Contains(summary.Body, "New links:\n- https://udemy.com/course/a") {
		t.Errorf("Expected new links section, got:\n%s", summary.Body)
	}
	if !strings.Contains(summary.Body, "Unrolled (STATUS != DONE):\n- https://udemy.com/course/a\n- https://udemy.com/course/b") {
		t.Errorf("Expected unrolled section, got:\n%s", summary.Body)
	}
}

func TestFormatSummaryEmpty(t *testing.T) {
	summary := FormatSummary(nil, nil)

	if summary.Subject != "Course links update: +0 new, 0 unrolled" {
		t.Errorf("Unexpected subject: %s", summary.Subject)
	}
	if !strings.Contains(summary.Body, "New links:\n(none)") {
		t.Errorf("Expected (none) placeholder for new links, got:\n%s", summary.Body)
	}
	if !strings.Contains(summary.Body, "Unrolled (STATUS != DONE):\n(none)") {
		t.Errorf("Expected (none) placeholder for unrolled, got:\n%s", summary.Body)
	}
}
