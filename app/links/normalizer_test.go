package links

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizerMixedProse(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	text := "Check https://udemy.com/course/abc123?x=1#section and https://udemy.com/course/abc123 also https://example.com/course/zzz"
	result := normalizer.Run(text)

	expected := []string{
		"https://udemy.com/course/abc123",
		"https://udemy.com/course/abc123?x=1",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestNormalizerEntityDecoding(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	text := `<a href="https://udemy.com/course/go?a=1&amp;b=2">link</a>`
	result := normalizer.Run(text)

	if len(result) != 1 {
		t.Fatalf("Expected 1 URL, got %d: %v", len(result), result)
	}
	if result[0] != "https://udemy.com/course/go?a=1&b=2" {
		t.Errorf("Expected decoded ampersand, got %s", result[0])
	}
}

func TestNormalizerTrailingPunctuation(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	text := "See (https://udemy.com/course/abc), and https://udemy.com/course/def]."
	result := normalizer.Run(text)

	expected := []string{
		"https://udemy.com/course/abc",
		"https://udemy.com/course/def",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestNormalizerHostMatching(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"apex host", "https://udemy.com/course/abc", 1},
		{"subdomain", "https://www.udemy.com/course/abc", 1},
		{"upper-cased host", "https://WWW.UDEMY.COM/course/abc", 1},
		{"other host", "https://example.com/course/abc", 0},
		{"host suffix trick", "https://notudemy.com/course/abc", 0},
		{"bare landing page", "https://udemy.com/", 0},
		{"missing slug", "https://udemy.com/course/", 0},
		{"wrong path", "https://udemy.com/cart/abc", 0},
	}

	for _, tt := range tests {
		result := normalizer.Run(tt.text)
		if len(result) != tt.expected {
			t.Errorf("%s: expected %d URLs, got %d: %v", tt.name, tt.expected, len(result), result)
		}
	}
}

func TestNormalizerDedupeAndSort(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	text := "https://udemy.com/course/zzz https://udemy.com/course/aaa https://udemy.com/course/zzz"
	result := normalizer.Run(text)

	expected := []string{
		"https://udemy.com/course/aaa",
		"https://udemy.com/course/zzz",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestNormalizerFragmentStrippedQueryPreserved(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	result := normalizer.Run("https://udemy.com/course/abc?coupon=FREE#reviews")

	if len(result) != 1 {
		t.Fatalf("Expected 1 URL, got %d", len(result))
	}
	if result[0] != "https://udemy.com/course/abc?coupon=FREE" {
		t.Errorf("Expected fragment stripped and query preserved, got %s", result[0])
	}
}

func TestNormalizerIdempotent(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	text := "Grab https://udemy.com/course/one#x, then https://udemy.com/course/two?c=5; done."
	first := normalizer.Run(text)
	second := normalizer.Run(strings.Join(first, "\n"))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected round trip to be stable, got %v then %v", first, second)
	}
}

func TestNormalizerRunList(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	values := []string{
		"https://udemy.com/course/b#frag",
		"not a url",
		"https://udemy.com/course/a?x=1&amp;y=2",
	}
	result := normalizer.RunList(values)

	expected := []string{
		"https://udemy.com/course/a?x=1&y=2",
		"https://udemy.com/course/b",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestNormalizerRunListEmpty(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	result := normalizer.RunList(nil)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}

func TestNormalizerNoURLs(t *testing.T) {
	normalizer := NewNormalizer("udemy.com")

	result := normalizer.Run("no links here, just prose about courses")
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}
