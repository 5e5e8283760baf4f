package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	d := New(2025, 1, 1)
	h.Append(d, 1).Append(d, 2)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d want 1", h.Len())
	}
	if v, _ := h.Get(d); v != 2 {
		t.Errorf("Get() = %v want 2", v)
	}
}

func TestRollingWindow(t *testing.T) {
	h := &History[int]{Max: 3}
	start := New(2025, 1, 1)
	for i := 0; i < 5; i++ {
		h.Append(start.Add(i), i)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d want 3", h.Len())
	}
	got := h.Slice()
	for i, want := range []int{2, 3, 4} {
		if got[i] != want {
			t.Errorf("Slice()[%d] = %d want %d", i, got[i], want)
		}
	}
	if day, v := h.Latest(); day != start.Add(4) || v != 4 {
		t.Errorf("Latest() = %v, %v", day, v)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 1, 10), 10)
	h.Append(New(2025, 1, 20), 20)

	if _, ok := h.ValueAsOf(New(2025, 1, 1)); ok {
		t.Errorf("ValueAsOf() before first value should not be found")
	}
	if v, ok := h.ValueAsOf(New(2025, 1, 15)); !ok || v != 10 {
		t.Errorf("ValueAsOf(15) = %v, %v want 10", v, ok)
	}
	if v, ok := h.ValueAsOf(New(2025, 1, 20)); !ok || v != 20 {
		t.Errorf("ValueAsOf(20) = %v, %v want 20", v, ok)
	}
}
