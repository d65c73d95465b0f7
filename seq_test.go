package clipprune_test

import (
	"math"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipprune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	t.Run("IsFunction", func(t *testing.T) {
		t.Parallel()

		var nilFn func()
		assert.True(t, clipprune.IsFunction(func() {}))
		assert.True(t, clipprune.IsFunction(strings.TrimSpace))
		assert.False(t, clipprune.IsFunction(nilFn))
		assert.False(t, clipprune.IsFunction(nil))
		assert.False(t, clipprune.IsFunction("func"))
	})

	t.Run("IsNumber", func(t *testing.T) {
		t.Parallel()

		assert.True(t, clipprune.IsNumber(3))
		assert.True(t, clipprune.IsNumber(uint8(3)))
		assert.True(t, clipprune.IsNumber(-2.5))
		assert.False(t, clipprune.IsNumber(math.NaN()))
		assert.False(t, clipprune.IsNumber(math.Inf(1)))
		assert.False(t, clipprune.IsNumber("3"))
		assert.False(t, clipprune.IsNumber(nil))
	})

	t.Run("IsInteger", func(t *testing.T) {
		t.Parallel()

		assert.True(t, clipprune.IsInteger(-3))
		assert.True(t, clipprune.IsInteger(4.0))
		assert.False(t, clipprune.IsInteger(4.5))
		assert.False(t, clipprune.IsInteger(math.Inf(-1)))
	})

	t.Run("IsNonNegativeInteger", func(t *testing.T) {
		t.Parallel()

		assert.True(t, clipprune.IsNonNegativeInteger(0))
		assert.True(t, clipprune.IsNonNegativeInteger(7.0))
		assert.False(t, clipprune.IsNonNegativeInteger(-1))
		assert.False(t, clipprune.IsNonNegativeInteger(1.5))
	})

	t.Run("IsArrayLike", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>a</p><p>b</p>"))
		require.NoError(t, err)

		assert.True(t, clipprune.IsArrayLike([]int{}))
		assert.True(t, clipprune.IsArrayLike([2]string{}))
		assert.True(t, clipprune.IsArrayLike(doc.Find("p")))
		assert.False(t, clipprune.IsArrayLike("abc"))
		assert.False(t, clipprune.IsArrayLike(42))
		assert.False(t, clipprune.IsArrayLike(nil))
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	root, err := html.Parse(strings.NewReader("<body><p>1</p><p>2</p><p>3</p></body>"))
	require.NoError(t, err)
	body := root.FirstChild.LastChild

	// Detaching every child while iterating the live sequence stops after
	// the first one; the snapshot visits all of them.
	for _, n := range clipprune.Snapshot(body.ChildNodes()) {
		body.RemoveChild(n)
	}

	assert.Nil(t, body.FirstChild)
}

func TestEach(t *testing.T) {
	t.Parallel()

	t.Run("visits a snapshot", func(t *testing.T) {
		t.Parallel()

		list := []int{1, 2, 3}
		var seen []int
		err := clipprune.Each(list, func(v int) {
			list[len(list)-1] = 99
			seen = append(seen, v)
		})

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, seen)
	})

	t.Run("rejects nil function", func(t *testing.T) {
		t.Parallel()

		err := clipprune.Each([]int{1}, nil)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})
}

func TestMapFilter(t *testing.T) {
	t.Parallel()

	doubled, err := clipprune.Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, doubled)

	even, err := clipprune.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, even)

	_, err = clipprune.Map[int, int]([]int{1}, nil)
	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))

	_, err = clipprune.Filter([]int{1}, nil)
	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
}

func TestEverySome(t *testing.T) {
	t.Parallel()

	t.Run("every stops at the first false", func(t *testing.T) {
		t.Parallel()

		calls := 0
		ok, err := clipprune.Every([]int{2, 3, 4}, func(v int) bool {
			calls++
			return v%2 == 0
		})

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 2, calls)
	})

	t.Run("every holds on empty", func(t *testing.T) {
		t.Parallel()

		ok, err := clipprune.Every([]int{}, func(int) bool { return false })
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("some stops at the first true", func(t *testing.T) {
		t.Parallel()

		calls := 0
		ok, err := clipprune.Some([]int{1, 2, 3}, func(v int) bool {
			calls++
			return v == 2
		})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, calls)
	})

	t.Run("rejects nil function", func(t *testing.T) {
		t.Parallel()

		_, err := clipprune.Every([]int{1}, nil)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
		_, err = clipprune.Some([]int{1}, nil)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})
}

func TestReduce(t *testing.T) {
	t.Parallel()

	join := func(acc string, v string, i int) string { return acc + v }

	left, err := clipprune.Reduce([]string{"a", "b", "c"}, join, ">")
	require.NoError(t, err)
	assert.Equal(t, ">abc", left)

	right, err := clipprune.ReduceRight([]string{"a", "b", "c"}, join, ">")
	require.NoError(t, err)
	assert.Equal(t, ">cba", right)

	var indexes []int
	_, err = clipprune.ReduceRight([]int{5, 6}, func(acc int, v int, i int) int {
		indexes = append(indexes, i)
		return acc + v
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, indexes)

	_, err = clipprune.Reduce[int, int]([]int{1}, nil, 0)
	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("flattens nested slices in order", func(t *testing.T) {
		t.Parallel()

		got, err := clipprune.Flatten([]any{1, []any{2, []int{3, 4}}, "x", []string{}})

		require.NoError(t, err)
		assert.Equal(t, []any{1, 2, 3, 4, "x"}, got)
	})

	t.Run("keeps selections whole", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>a</p>"))
		require.NoError(t, err)
		sel := doc.Find("p")

		got, err := clipprune.Flatten([]any{sel})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Same(t, sel, got[0])
	})

	t.Run("rejects scalars", func(t *testing.T) {
		t.Parallel()

		_, err := clipprune.Flatten(42)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	list := []string{"a", "b", "a", "c"}

	assert.Equal(t, 0, clipprune.IndexOf(list, "a", 0))
	assert.Equal(t, 2, clipprune.IndexOf(list, "a", 1))
	assert.Equal(t, 2, clipprune.IndexOf(list, "a", -2))
	assert.Equal(t, -1, clipprune.IndexOf(list, "z", 0))
	assert.Equal(t, -1, clipprune.IndexOf(list, "a", 10))

	assert.Equal(t, 2, clipprune.LastIndexOf(list, "a", 10))
	assert.Equal(t, 0, clipprune.LastIndexOf(list, "a", 1))
	assert.Equal(t, 0, clipprune.LastIndexOf(list, "a", -3))
	assert.Equal(t, -1, clipprune.LastIndexOf(list, "c", 2))
}
