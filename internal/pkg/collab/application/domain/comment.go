package collab

import "time"

// Comment is an immutable annotation on a workspace file line.
type Comment struct {
	ID        string    `json:"id"`
	FilePath  string    `json:"filePath"`
	Line      int       `json:"line"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentStore keeps a session's comments in insertion order. It is not
// safe for concurrent use on its own; the owning session serializes access.
type CommentStore struct {
	comments []Comment
}

// NewCommentStore constructs an empty store.
func NewCommentStore() *CommentStore {
	return &CommentStore{}
}

// Add appends the comment and returns it.
func (s *CommentStore) Add(c Comment) Comment {
	s.comments = append(s.comments, c)
	return c
}

// Delete removes the comment with the given id, reporting whether one was
// found. Deleting an unknown id changes nothing.
func (s *CommentStore) Delete(id string) bool {
	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns the comment with the given id.
func (s *CommentStore) FindByID(id string) (Comment, bool) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// GetByFile returns all comments for the path, in insertion order.
func (s *CommentStore) GetByFile(path string) []Comment {
	var out []Comment
	for _, c := range s.comments {
		if c.FilePath == path {
			out = append(out, c)
		}
	}
	return out
}

// GetAll returns a snapshot copy; mutating it does not affect the store.
func (s *CommentStore) GetAll() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Clear empties the store.
func (s *CommentStore) Clear() {
	s.comments = nil
}

// Len returns the number of stored comments.
func (s *CommentStore) Len() int {
	return len(s.comments)
}
