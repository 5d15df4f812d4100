package collab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentStoreAddDelete(t *testing.T) {
	s := NewCommentStore()

	c := s.Add(Comment{ID: "c1", FilePath: "a.js", Line: 10, Text: "fix this"})
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Delete("c1"))
	_, found := s.FindByID("c1")
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func TestCommentStoreDeleteUnknownIDChangesNothing(t *testing.T) {
	s := NewCommentStore()
	s.Add(Comment{ID: "c1"})

	assert.False(t, s.Delete("nope"))
	assert.Equal(t, 1, s.Len())
}

func TestCommentStoreLenAfterAddsAndDeletes(t *testing.T) {
	s := NewCommentStore()
	for i := 0; i < 5; i++ {
		s.Add(Comment{ID: fmt.Sprintf("c%d", i)})
	}
	require.True(t, s.Delete("c1"))
	require.True(t, s.Delete("c3"))

	assert.Len(t, s.GetAll(), 3)
}

func TestCommentStoreGetByFilePreservesInsertionOrder(t *testing.T) {
	s := NewCommentStore()
	s.Add(Comment{ID: "c1", FilePath: "a.js"})
	s.Add(Comment{ID: "c2", FilePath: "b.js"})
	s.Add(Comment{ID: "c3", FilePath: "a.js"})

	got := s.GetByFile("a.js")
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)

	assert.Empty(t, s.GetByFile("missing.js"))
}

func TestCommentStoreGetAllReturnsSnapshot(t *testing.T) {
	s := NewCommentStore()
	s.Add(Comment{ID: "c1", Text: "original"})

	snap := s.GetAll()
	snap[0].Text = "mutated"

	got, found := s.FindByID("c1")
	require.True(t, found)
	assert.Equal(t, "original", got.Text)
}

func TestCommentStoreClear(t *testing.T) {
	s := NewCommentStore()
	s.Add(Comment{ID: "c1"})
	s.Add(Comment{ID: "c2"})

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.GetAll())
}
