package memstore

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
	N    int
}

func TestTable_InsertGetDelete(t *testing.T) {
	tbl := NewTable[row]()

	require.NoError(t, tbl.Insert("AA", row{ID: "AA", Name: "a"}))
	require.ErrorIs(t, tbl.Insert("aa", row{}), common.ErrAlreadyExists)

	got, err := tbl.Get(" aa ")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = tbl.Get("bb")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, tbl.Delete("Aa"))
	require.ErrorIs(t, tbl.Delete("aa"), common.ErrNotFound)
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_InsertUnique(t *testing.T) {
	tbl := NewTable[row]()
	sameName := func(name string) func(row) bool {
		return func(r row) bool { return r.Name == name }
	}

	require.NoError(t, tbl.InsertUnique("1", row{Name: "ann"}, sameName("ann")))
	require.ErrorIs(t, tbl.InsertUnique("2", row{Name: "ann"}, sameName("ann")), common.ErrAlreadyExists)
	require.NoError(t, tbl.InsertUnique("3", row{Name: "bob"}, sameName("bob")))
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Update(t *testing.T) {
	tbl := NewTable[row]()
	require.NoError(t, tbl.Insert("1", row{N: 1}))

	got, err := tbl.Update("1", func(r *row) error { r.N++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, got.N)

	boom := errors.New("boom")
	_, err = tbl.Update("1", func(r *row) error { r.N = 100; return boom })
	require.ErrorIs(t, err, boom)

	stored, _ := tbl.Get("1")
	assert.Equal(t, 2, stored.N, "failed update must not be stored")

	_, err = tbl.Update("missing", func(*row) error { return nil })
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTable_ListFindDeleteWhereKeepOrder(t *testing.T) {
	tbl := NewTable[row]()
	for i := range 5 {
		require.NoError(t, tbl.Insert(fmt.Sprint(i), row{ID: fmt.Sprint(i), N: i}))
	}

	even := func(r row) bool { return r.N%2 == 0 }
	assert.Equal(t, []int{0, 2, 4}, ns(tbl.List(even)))
	assert.Len(t, tbl.List(nil), 5)

	found, ok := tbl.Find(func(r row) bool { return r.N > 2 })
	require.True(t, ok)
	assert.Equal(t, 3, found.N)

	assert.Equal(t, 3, tbl.DeleteWhere(even))
	assert.Equal(t, []int{1, 3}, ns(tbl.List(nil)))

	_, ok = tbl.Find(even)
	assert.False(t, ok)
}

func TestTable_ConcurrentUpdates(t *testing.T) {
	tbl := NewTable[row]()
	require.NoError(t, tbl.Insert("1", row{}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tbl.Update("1", func(r *row) error { r.N++; return nil })
		}()
	}
	wg.Wait()

	got, _ := tbl.Get("1")
	assert.Equal(t, 50, got.N)
}

func ns(rows []row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.N)
	}
	return out
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, Page(items, 0, 0))
	assert.Equal(t, []int{1, 2}, Page(items, 0, 2))
	assert.Equal(t, []int{5}, Page(items, 2, 2))
	assert.Empty(t, Page(items, 3, 2))
	assert.Empty(t, Page(items, -1, 2))
	assert.Empty(t, Page(items, math.MaxInt/3+1, 3), "page*size overflows int")
	assert.Empty(t, Page(items, math.MaxInt, math.MaxInt))
}
