package trivia

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionsWithIDs(idList ...int) []Question {
	qs := make([]Question, 0, len(idList))
	for _, id := range idList {
		qs = append(qs, Question{ID: id, Question: "q", Answer: "a", Category: 1, Difficulty: 1})
	}
	return qs
}

func rangeIDs(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestPaginateFirstPage(t *testing.T) {
	s := NewSelector()
	for _, n := range []int{1, 5, 10, 12, 25} {
		collection := questionsWithIDs(rangeIDs(1, n)...)
		got, err := s.Paginate(collection, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, rangeIDs(1, min(n, 10)), ids(got), "collection of %d", n)
	}
}

func TestPaginateSecondPageOfTwelve(t *testing.T) {
	got, err := NewSelector().Paginate(questionsWithIDs(rangeIDs(1, 12)...), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12}, ids(got))
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	s := NewSelector()
	collection := questionsWithIDs(rangeIDs(1, 20)...)

	for _, page := range []int{3, 4, 100} {
		got, err := s.Paginate(collection, page, 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	got, err := s.Paginate(nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPaginateHugePageIsEmpty(t *testing.T) {
	s := NewSelector()
	collection := questionsWithIDs(rangeIDs(1, 12)...)

	for _, page := range []int{math.MaxInt, 1844674407370955163, math.MaxInt / 10} {
		got, err := s.Paginate(collection, page, 10)
		require.NoError(t, err)
		assert.Empty(t, got, "page %d", page)
	}

	got, err := s.Paginate(collection, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, rangeIDs(1, 12), ids(got))
}

func TestPaginateRejectsNonPositivePage(t *testing.T) {
	s := NewSelector()
	_, err := s.Paginate(questionsWithIDs(1), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = s.Paginate(questionsWithIDs(1), -1, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = s.Paginate(questionsWithIDs(1), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestPaginateResultCannotGrowIntoSource(t *testing.T) {
	collection := questionsWithIDs(rangeIDs(1, 12)...)
	got, err := NewSelector().Paginate(collection, 1, 10)
	require.NoError(t, err)

	_ = append(got, Question{ID: 99})
	assert.Equal(t, 11, collection[10].ID)
}

func TestFilterByCategory(t *testing.T) {
	collection := []Question{
		{ID: 9, Category: 1},
		{ID: 2, Category: 2},
		{ID: 1, Category: 1},
		{ID: 7, Category: 3},
		{ID: 4, Category: 1},
	}
	s := NewSelector()

	assert.Equal(t, []int{1, 4, 9}, ids(s.FilterByCategory(collection, 1)))
	assert.Equal(t, []int{1, 2, 4, 7, 9}, ids(s.FilterByCategory(collection, AllCategories)))
	assert.Empty(t, s.FilterByCategory(collection, 6))

	for _, q := range s.FilterByCategory(collection, 3) {
		assert.Equal(t, 3, q.Category)
	}
	// input order untouched
	assert.Equal(t, 9, collection[0].ID)
}

func TestSearch(t *testing.T) {
	collection := []Question{
		{ID: 3, Question: "Who painted the Mona Lisa?"},
		{ID: 1, Question: "What is the title of the 1990 fantasy directed by Tim Burton?"},
		{ID: 2, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?"},
	}
	s := NewSelector()

	got, err := s.Search(collection, "TITLE")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))

	got, err = s.Search(collection, "who")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(got))

	got, err = s.Search(collection, "zebra")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	_, err := NewSelector().Search(questionsWithIDs(1, 2), "")
	assert.ErrorIs(t, err, ErrEmptySearchTerm)
}

func TestFilterAndSearchAreIdempotent(t *testing.T) {
	collection := []Question{
		{ID: 5, Question: "Largest ocean?", Category: 3},
		{ID: 2, Question: "Smallest ocean?", Category: 3},
		{ID: 8, Question: "Fastest land animal?", Category: 1},
	}
	s := NewSelector()

	assert.Equal(t, s.FilterByCategory(collection, 3), s.FilterByCategory(collection, 3))

	first, err := s.Search(collection, "ocean")
	require.NoError(t, err)
	second, err := s.Search(collection, "ocean")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPickNextExhausted(t *testing.T) {
	got, ok := NewSelector().PickNext(questionsWithIDs(1, 2, 3), []int{1, 2, 3})
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = NewSelector().PickNext(nil, nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPickNextNeverRepeats(t *testing.T) {
	available := questionsWithIDs(rangeIDs(1, 8)...)
	previous := []int{1, 3, 5, 7}
	s := NewSelector()

	for range 200 {
		got, ok := s.PickNext(available, previous)
		require.True(t, ok)
		assert.NotContains(t, previous, got.ID)
	}
}

func TestPickNextWalksWholePool(t *testing.T) {
	available := questionsWithIDs(rangeIDs(1, 6)...)
	s := NewSelector()

	var previous []int
	for range available {
		got, ok := s.PickNext(available, previous)
		require.True(t, ok)
		previous = append(previous, got.ID)
	}
	assert.ElementsMatch(t, rangeIDs(1, 6), previous)

	_, ok := s.PickNext(available, previous)
	assert.False(t, ok)
}

func TestPickNextUsesRandomSource(t *testing.T) {
	var asked []int
	s := NewSelector(WithIntN(func(n int) int {
		asked = append(asked, n)
		return n - 1
	}))

	got, ok := s.PickNext(questionsWithIDs(1, 2, 3, 4), []int{2})
	require.True(t, ok)
	assert.Equal(t, 4, got.ID)
	assert.Equal(t, []int{3}, asked)
}

func TestPickNextIgnoresUnknownPreviousIDs(t *testing.T) {
	s := NewSelector(WithIntN(func(int) int { return 0 }))
	got, ok := s.PickNext(questionsWithIDs(4), []int{100, 200})
	require.True(t, ok)
	assert.Equal(t, 4, got.ID)
}
