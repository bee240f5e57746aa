package timestamp

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_RoundTrip(t *testing.T) {
	orig := New(time.Date(2024, 3, 9, 7, 5, 1, 987654321, time.Local))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-09 07:05:01"` {
		t.Errorf("marshal = %s, want \"2024-03-09 07:05:01\"", data)
	}

	var got Time
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(orig.Time) {
		t.Errorf("round trip = %v, want %v", got, orig)
	}
}

func TestTime_NullPointer(t *testing.T) {
	var holder struct {
		At *Time `json:"at"`
	}
	data, err := json.Marshal(holder)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"at":null}` {
		t.Errorf("marshal = %s, want {\"at\":null}", data)
	}

	if err := json.Unmarshal([]byte(`{"at":null}`), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if holder.At != nil {
		t.Errorf("At = %v, want nil", holder.At)
	}
}

func TestTime_LexicographicOrderMatchesChronological(t *testing.T) {
	earlier := New(time.Date(2024, 9, 30, 23, 59, 59, 0, time.Local))
	later := New(time.Date(2024, 10, 1, 0, 0, 0, 0, time.Local))
	if !(earlier.String() < later.String()) {
		t.Errorf("%q should sort before %q", earlier, later)
	}
}

func TestTime_UnmarshalInvalid(t *testing.T) {
	var got Time
	if err := json.Unmarshal([]byte(`"09/03/2024"`), &got); err == nil {
		t.Error("expected error for non-layout timestamp")
	}
}
