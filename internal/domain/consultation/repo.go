package consultation

import (
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

// ledger keeps consultations in load-then-insertion order.
type ledger struct {
	order []string
	byID  map[string]*Consultation
}

func newLedger() *ledger {
	return &ledger{byID: make(map[string]*Consultation)}
}

func (l *ledger) get(id string) (*Consultation, bool) {
	c, ok := l.byID[id]
	return c, ok
}

func (l *ledger) put(c *Consultation) {
	if _, ok := l.byID[c.ID]; !ok {
		l.order = append(l.order, c.ID)
	}
	l.byID[c.ID] = c
}

func (l *ledger) filter(match func(*Consultation) bool) []*Consultation {
	var out []*Consultation
	for _, id := range l.order {
		if c := l.byID[id]; match(c) {
			out = append(out, c)
		}
	}
	return out
}

func (l *ledger) len() int {
	return len(l.order)
}

func (l *ledger) documents() ([]store.Document, error) {
	docs := make([]store.Document, 0, len(l.order))
	for _, id := range l.order {
		body, err := encode(l.byID[id])
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Body: body})
	}
	return docs, nil
}
