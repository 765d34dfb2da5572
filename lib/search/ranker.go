package search

import (
	"sort"
	"strings"

	"shelfd/lib/library"
)

const (
	// DefaultLimit is the result count used when the caller passes limit <= 0.
	DefaultLimit = 10

	// minScore is the relevance cutoff; books scoring at or below it are
	// dropped from the result.
	minScore = 0.1

	// defaultNGramSize is the n-gram width of the fuzzy similarity.
	defaultNGramSize = 2
)

// Substring and fuzzy field weights.
const (
	weightTitleSubstring     = 1.0
	weightAuthorSubstring    = 0.8
	weightISBNSubstring      = 1.0
	weightPublisherSubstring = 0.5
	weightTitleFuzzy         = 0.6
	weightAuthorFuzzy        = 0.4
	weightPublisherFuzzy     = 0.2
	weightPhonetic           = 0.3
)

// Match is one ranked search result.
type Match struct {
	Book  library.Book
	Score float64
}

// Ranker scores books against free-text queries. The zero value is not
// usable; create one with NewRanker.
type Ranker struct {
	ngram int
}

// NewRanker creates a ranker with the given n-gram size for fuzzy matching.
// Sizes below 1 fall back to bigrams.
func NewRanker(ngram int) *Ranker {
	if ngram < 1 {
		ngram = defaultNGramSize
	}
	return &Ranker{ngram: ngram}
}

// Rank scores every book in the catalog against the query and returns the
// matches in descending score order, truncated to limit. Books scoring at or
// below the relevance cutoff are dropped. An empty query or catalog yields an
// empty result.
func (r *Ranker) Rank(query string, catalog []library.Book, limit int) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var matches []Match
	for _, book := range catalog {
		score := r.scoreBook(tokens, book) / float64(len(tokens))
		if score > minScore {
			matches = append(matches, Match{Book: book, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// scoreBook accumulates the per-token scores of one book.
func (r *Ranker) scoreBook(tokens []string, book library.Book) float64 {
	title := strings.ToLower(book.Title)
	author := strings.ToLower(book.Author)
	publisher := strings.ToLower(book.Publisher)

	var score float64
	for _, token := range tokens {
		// Substring hits. ISBN is matched case-sensitively against the
		// raw token - ISBNs carry no letters worth folding.
		if strings.Contains(title, token) {
			score += weightTitleSubstring
		}
		if strings.Contains(author, token) {
			score += weightAuthorSubstring
		}
		if strings.Contains(book.ISBN, token) {
			score += weightISBNSubstring
		}
		if strings.Contains(publisher, token) {
			score += weightPublisherSubstring
		}

		// Fuzzy n-gram similarity.
		score += weightTitleFuzzy * r.diceCoefficient(token, title)
		score += weightAuthorFuzzy * r.diceCoefficient(token, author)
		score += weightPublisherFuzzy * r.diceCoefficient(token, publisher)

		// Phonetic bonus.
		if code := Soundex(token); code != "" {
			if code == Soundex(title) || code == Soundex(author) {
				score += weightPhonetic
			}
		}
	}
	return score
}

// diceCoefficient computes the Sørensen-Dice similarity of the n-gram sets of
// two strings: 2 * |common| / (|ngrams(a)| + |ngrams(b)|). Duplicated n-grams
// are collapsed. Strings shorter than the n-gram size score 0.
func (r *Ranker) diceCoefficient(a, b string) float64 {
	gramsA := r.ngrams(a)
	gramsB := r.ngrams(b)
	if len(gramsA) == 0 || len(gramsB) == 0 {
		return 0
	}

	common := 0
	for gram := range gramsA {
		if _, ok := gramsB[gram]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(gramsA)+len(gramsB))
}

// ngrams returns the set of n-grams of s (duplicates collapsed).
func (r *Ranker) ngrams(s string) map[string]struct{} {
	if len(s) < r.ngram {
		return nil
	}
	grams := make(map[string]struct{}, len(s)-r.ngram+1)
	for i := 0; i+r.ngram <= len(s); i++ {
		grams[s[i:i+r.ngram]] = struct{}{}
	}
	return grams
}
