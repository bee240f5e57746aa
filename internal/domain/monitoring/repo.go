package monitoring

import (
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

// history keeps records in load-then-insertion order.
type history struct {
	order []string
	byID  map[string]*HealthRecord
}

func newHistory() *history {
	return &history{byID: make(map[string]*HealthRecord)}
}

func (h *history) get(id string) (*HealthRecord, bool) {
	r, ok := h.byID[id]
	return r, ok
}

func (h *history) put(r *HealthRecord) {
	if _, ok := h.byID[r.ID]; !ok {
		h.order = append(h.order, r.ID)
	}
	h.byID[r.ID] = r
}

func (h *history) forPatient(patientID string) []*HealthRecord {
	var out []*HealthRecord
	for _, id := range h.order {
		if r := h.byID[id]; r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out
}

func (h *history) len() int {
	return len(h.order)
}

func (h *history) documents() ([]store.Document, error) {
	docs := make([]store.Document, 0, len(h.order))
	for _, id := range h.order {
		body, err := encode(h.byID[id])
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Body: body})
	}
	return docs, nil
}
