// File: internal/usecase/keywords_test.go
package usecase

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywords_FiltersStopwordsAndShortWords(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("O gato e o cão correram!", DefaultMinKeywordLength)
	want := []string{"gato", "cão", "correram"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractKeywords_PunctuationSeparatesWords(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("preço,prazo;entrega", DefaultMinKeywordLength)
	want := []string{"preço", "prazo", "entrega"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("punctuation must split words: got %v, want %v", got, want)
	}
}

func TestExtractKeywords_CapsAtTen(t *testing.T) {
	t.Parallel()

	words := make([]string, 0, 15)
	for _, w := range strings.Fields("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima mike november oscar") {
		words = append(words, w)
	}
	got := ExtractKeywords(strings.Join(words, " "), DefaultMinKeywordLength)
	if len(got) != 10 {
		t.Fatalf("expected exactly 10 keywords, got %d: %v", len(got), got)
	}
	if got[0] != "alpha" || got[9] != "juliett" {
		t.Fatalf("keywords must keep input order, got %v", got)
	}
}

func TestExtractKeywords_KeepsDuplicates(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("pedido pedido cancelado", DefaultMinKeywordLength)
	want := []string{"pedido", "pedido", "cancelado"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("duplicates are preserved: got %v, want %v", got, want)
	}
}

func TestExtractKeywords_AccentedRuneLength(t *testing.T) {
	t.Parallel()

	// "cão" is three runes but four bytes; it must pass the length filter.
	got := ExtractKeywords("cão", 3)
	if len(got) != 1 || got[0] != "cão" {
		t.Fatalf("rune-based length check failed: got %v", got)
	}
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := ExtractKeywords("", DefaultMinKeywordLength); len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
	if got := ExtractKeywords("?! ... ,,,", DefaultMinKeywordLength); len(got) != 0 {
		t.Fatalf("punctuation-only input must yield nothing, got %v", got)
	}
}
