package report

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendListGet(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())

	s.Append(StudentRecord{ID: "a", Name: "Ali"}, StudentRecord{ID: "b", Name: "Bina"})
	s.Append(StudentRecord{ID: "c", Name: "Chand"})

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[2].ID)

	got, err := s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Bina", got.Name)

	_, err = s.Get("zzz")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore()
	s.Append(StudentRecord{ID: "a", Name: "Ali"})

	list := s.List()
	list[0].Name = "changed"

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Append(StudentRecord{ID: "a"})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(StudentRecord{ID: fmt.Sprintf("r%d", i)})
			_ = s.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
