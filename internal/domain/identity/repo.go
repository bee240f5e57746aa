package identity

import (
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

// directory is the in-memory user collection. Iteration follows insertion
// order, which after a load is the document's key order.
type directory struct {
	order []string
	byID  map[string]User
}

func newDirectory() *directory {
	return &directory{byID: make(map[string]User)}
}

func (d *directory) get(id string) (User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// put inserts or replaces. A replaced user keeps its position.
func (d *directory) put(u User) {
	id := u.Base().ID
	if _, ok := d.byID[id]; !ok {
		d.order = append(d.order, id)
	}
	d.byID[id] = u
}

func (d *directory) each(fn func(User) bool) {
	for _, id := range d.order {
		if !fn(d.byID[id]) {
			return
		}
	}
}

func (d *directory) len() int {
	return len(d.order)
}

func (d *directory) documents() ([]store.Document, error) {
	docs := make([]store.Document, 0, len(d.order))
	for _, id := range d.order {
		body, err := encodeUser(d.byID[id])
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Body: body})
	}
	return docs, nil
}
