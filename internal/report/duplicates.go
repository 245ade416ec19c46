package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"devtrack/internal/models"
)

// duplicateThreshold is the minimum word-set similarity for two bug
// titles to be flagged.
const duplicateThreshold = 0.6

// DuplicatePair is one suspected duplicate: two open bugs whose titles
// look alike. First always carries the lower seq.
type DuplicatePair struct {
	First      models.Bug `json:"first"`
	Second     models.Bug `json:"second"`
	Similarity float64    `json:"similarity"`
}

// DuplicateBugs scans a project's open bugs pairwise and returns
// suspected duplicates, most similar first. Each unordered pair is
// evaluated exactly once; quadratic over the open subset, which stays
// small in practice.
func (r *Reporter) DuplicateBugs(ctx context.Context, projectID int64) ([]DuplicatePair, error) {
	bugs, err := r.store.ListOpenBugs(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list open bugs: %w", err)
	}

	var pairs []DuplicatePair
	for i := 0; i < len(bugs); i++ {
		for j := i + 1; j < len(bugs); j++ {
			similarity := titleSimilarity(bugs[i].Title, bugs[j].Title)
			if similarity >= duplicateThreshold {
				pairs = append(pairs, DuplicatePair{
					First:      bugs[i],
					Second:     bugs[j],
					Similarity: similarity,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		if pairs[i].First.Seq != pairs[j].First.Seq {
			return pairs[i].First.Seq < pairs[j].First.Seq
		}
		return pairs[i].Second.Seq < pairs[j].Second.Seq
	})
	return pairs, nil
}

// titleSimilarity compares two titles case-insensitively: containment
// either way scores 1.0, otherwise the Jaccard index of their word
// sets. Word comparison tolerates inflected variants so that e.g.
// "crash" and "crashes" count as the same word.
func titleSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 1.0
	}

	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	matched := make([]bool, len(wordsB))
	intersection := 0
	for _, wa := range wordsA {
		for j, wb := range wordsB {
			if matched[j] {
				continue
			}
			if wordsMatch(wa, wb) {
				matched[j] = true
				intersection++
				break
			}
		}
	}

	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

// wordsMatch treats two words as the same when equal, or when one is a
// prefix of the other and both are long enough that the overlap is
// meaningful.
func wordsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func wordSet(title string) []string {
	seen := map[string]struct{}{}
	var words []string
	for _, word := range strings.Fields(title) {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}
