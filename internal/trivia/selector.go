package trivia

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"
)

// Selector paginates, filters, searches and samples question collections.
// It holds no state between calls apart from its random source.
type Selector struct {
	intn func(n int) int
}

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithIntN replaces the random source used by PickNext. fn must return a
// value in [0, n).
func WithIntN(fn func(n int) int) SelectorOption {
	return func(s *Selector) {
		if fn != nil {
			s.intn = fn
		}
	}
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{intn: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paginate returns items [(page-1)*size, page*size) of collection. A page past
// the end yields an empty slice.
func (s *Selector) Paginate(collection []Question, page, size int) ([]Question, error) {
	if page < 1 || size < 1 {
		return nil, ErrInvalidPage
	}
	// page count is checked before (page-1)*size is formed
	if len(collection) == 0 || page-1 >= (len(collection)-1)/size+1 {
		return []Question{}, nil
	}
	start := (page - 1) * size
	end := start + min(size, len(collection)-start)
	return collection[start:end:end], nil
}

// FilterByCategory keeps questions of categoryID, or all of them for
// AllCategories, ordered by id.
func (s *Selector) FilterByCategory(collection []Question, categoryID int) []Question {
	out := make([]Question, 0, len(collection))
	for _, q := range collection {
		if categoryID == AllCategories || q.Category == categoryID {
			out = append(out, q)
		}
	}
	sortByID(out)
	return out
}

// Search returns questions whose text contains term, ignoring case, ordered
// by id. An empty term is rejected; no match is an empty result.
func (s *Selector) Search(collection []Question, term string) ([]Question, error) {
	if term == "" {
		return nil, ErrEmptySearchTerm
	}
	needle := strings.ToLower(term)
	out := make([]Question, 0)
	for _, q := range collection {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			out = append(out, q)
		}
	}
	sortByID(out)
	return out, nil
}

// PickNext draws one question uniformly from available, skipping any id in
// previousIDs. It reports false once every candidate has been seen.
func (s *Selector) PickNext(available []Question, previousIDs []int) (*Question, bool) {
	seen := make(map[int]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		seen[id] = struct{}{}
	}

	candidates := make([]Question, 0, len(available))
	for _, q := range available {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	picked := candidates[s.intn(len(candidates))]
	return &picked, true
}

func sortByID(qs []Question) {
	slices.SortStableFunc(qs, func(a, b Question) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
