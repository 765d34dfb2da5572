package search

import (
	"testing"

	"shelfd/lib/library"
)

func TestSoundex(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"Robert", "R163"},
		{"Rupert", "R163"},
		{"Ashcraft", "A261"},
		// Repeated digits collapse even across vowels, so these differ from
		// the census variant (T522, H555).
		{"Tymczak", "T520"},
		{"Honeyman", "H500"},
		{"Pfister", "P236"},
		{"a", "A000"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Soundex(tt.word); got != tt.want {
				t.Errorf("Soundex(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func testCatalog() []library.Book {
	return []library.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Publisher: "Secker & Warburg"},
		{ID: 2, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", ISBN: "9780747532699", Publisher: "Bloomsbury"},
		{ID: 3, Title: "The Go Programming Language", Author: "Donovan and Kernighan", ISBN: "9780134190440", Publisher: "Addison-Wesley"},
		{ID: 4, Title: "Brave New World", Author: "Aldous Huxley", ISBN: "9780060850524", Publisher: "Chatto & Windus"},
	}
}

func TestRankExactTitle(t *testing.T) {
	r := NewRanker(0)

	matches := r.Rank("1984", testCatalog(), 0)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Book.ID != 1 {
		t.Errorf("expected book 1 first, got %d", matches[0].Book.ID)
	}
}

func TestRankAuthor(t *testing.T) {
	r := NewRanker(0)

	matches := r.Rank("orwell", testCatalog(), 0)
	if len(matches) == 0 || matches[0].Book.ID != 1 {
		t.Fatalf("expected Orwell's book first, got %v", matches)
	}
}

func TestRankISBN(t *testing.T) {
	r := NewRanker(0)

	matches := r.Rank("9780747532699", testCatalog(), 0)
	if len(matches) == 0 || matches[0].Book.ID != 2 {
		t.Fatalf("expected the ISBN's book first, got %v", matches)
	}
}

func TestRankFuzzyMisspelling(t *testing.T) {
	r := NewRanker(0)

	// No substring matches here; only the n-gram similarity carries it over
	// the relevance cutoff.
	matches := r.Rank("hary poter", testCatalog(), 0)
	if len(matches) == 0 {
		t.Fatal("expected a fuzzy match for the misspelled title")
	}
	if matches[0].Book.ID != 2 {
		t.Errorf("expected Harry Potter first, got book %d", matches[0].Book.ID)
	}
}

func TestRankDropsIrrelevant(t *testing.T) {
	r := NewRanker(0)

	matches := r.Rank("zzzz qqqq", testCatalog(), 0)
	if len(matches) != 0 {
		t.Errorf("expected no matches for an unrelated query, got %v", matches)
	}
}

func TestRankEmptyInputs(t *testing.T) {
	r := NewRanker(0)

	if matches := r.Rank("", testCatalog(), 0); len(matches) != 0 {
		t.Errorf("expected no matches for an empty query, got %v", matches)
	}
	if matches := r.Rank("   ", testCatalog(), 0); len(matches) != 0 {
		t.Errorf("expected no matches for a blank query, got %v", matches)
	}
	if matches := r.Rank("1984", nil, 0); len(matches) != 0 {
		t.Errorf("expected no matches for an empty catalog, got %v", matches)
	}
}

func TestRankLimit(t *testing.T) {
	r := NewRanker(0)

	// Every book matches "the"-ish broad queries; cap the result at 2.
	catalog := []library.Book{
		{ID: 1, Title: "Go in Action"},
		{ID: 2, Title: "Go in Practice"},
		{ID: 3, Title: "Go Web Programming"},
	}
	matches := r.Rank("go", catalog, 2)
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestRankOrderIsDescending(t *testing.T) {
	r := NewRanker(0)

	matches := r.Rank("harry potter stone", testCatalog(), 0)
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches out of order: %f before %f", matches[i-1].Score, matches[i].Score)
		}
	}
}

func TestDiceCoefficient(t *testing.T) {
	r := NewRanker(2)

	if got := r.diceCoefficient("night", "night"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %f", got)
	}
	if got := r.diceCoefficient("night", "nacht"); got == 0 || got >= 1.0 {
		t.Errorf("related strings should score between 0 and 1, got %f", got)
	}
	if got := r.diceCoefficient("abc", "xyz"); got != 0 {
		t.Errorf("disjoint strings should score 0, got %f", got)
	}
	if got := r.diceCoefficient("a", "abc"); got != 0 {
		t.Errorf("strings shorter than the n-gram size should score 0, got %f", got)
	}
}
