//nolint:goconst // test file with repeated string literals
package playlist

import (
	"sort"
	"testing"
)

func queueWith(paths ...string) *PlayingQueue {
	q := NewQueue()
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Path: p}
	}
	q.Replace(items, 0)
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
}

func TestQueue_Replace(t *testing.T) {
	q := queueWith("/old1.mkv", "/old2.mkv")
	q.JumpTo(1)

	item := q.Replace([]Item{{Path: "/new.mkv"}}, 0)

	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if item == nil || item.Path != "/new.mkv" {
		t.Errorf("returned item = %v, want /new.mkv", item)
	}
}

func TestQueue_Replace_ClampsStartIndex(t *testing.T) {
	q := NewQueue()

	item := q.Replace([]Item{{Path: "/a.mkv"}, {Path: "/b.mkv"}}, 99)
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (clamped to tail)", q.CurrentIndex())
	}
	if item == nil || item.Path != "/b.mkv" {
		t.Errorf("returned item = %v, want /b.mkv", item)
	}

	item = q.Replace([]Item{{Path: "/a.mkv"}}, -4)
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (clamped to head)", q.CurrentIndex())
	}
	if item == nil || item.Path != "/a.mkv" {
		t.Errorf("returned item = %v, want /a.mkv", item)
	}
}

func TestQueue_Replace_Empty(t *testing.T) {
	q := queueWith("/old.mkv")

	item := q.Replace(nil, 0)

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if item != nil {
		t.Error("Replace with no items should return nil")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_Add(t *testing.T) {
	q := queueWith("/a.mkv")
	q.Add(Item{Path: "/b.mkv"}, Item{Path: "/c.mkv"})

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	// Add doesn't change what is playing
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_InsertAt(t *testing.T) {
	t.Run("before current shifts index", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(1)

		q.InsertAt(0, Item{Path: "/x.mkv"})

		if q.CurrentIndex() != 2 {
			t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
		}
		if q.Current().Path != "/b.mkv" {
			t.Errorf("Current() = %q, want /b.mkv (same item)", q.Current().Path)
		}
	})

	t.Run("at current shifts index", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv")
		q.JumpTo(1)

		q.InsertAt(1, Item{Path: "/x.mkv"})

		if q.Current().Path != "/b.mkv" {
			t.Errorf("Current() = %q, want /b.mkv (same item)", q.Current().Path)
		}
	})

	t.Run("after current leaves index alone", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv")
		q.JumpTo(0)

		q.InsertAt(1, Item{Path: "/x.mkv"})

		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
		}
		if q.Item(1).Path != "/x.mkv" {
			t.Errorf("Item(1) = %q, want /x.mkv", q.Item(1).Path)
		}
	})

	t.Run("into empty queue", func(t *testing.T) {
		q := NewQueue()

		q.InsertAt(5, Item{Path: "/x.mkv"})

		if q.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", q.Len())
		}
		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
		}
		if q.Current() == nil || q.Current().Path != "/x.mkv" {
			t.Errorf("Current() = %v, want /x.mkv", q.Current())
		}
	})
}

func TestQueue_RemoveAt(t *testing.T) {
	t.Run("remove before current", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(2)

		ok, changed := q.RemoveAt(0)

		if !ok {
			t.Error("RemoveAt should return true")
		}
		if changed {
			t.Error("removing before current should not report a change")
		}
		if q.CurrentIndex() != 1 {
			t.Errorf("CurrentIndex() = %d, want 1 (adjusted)", q.CurrentIndex())
		}
		if q.Current().Path != "/c.mkv" {
			t.Errorf("Current() = %q, want /c.mkv (same item)", q.Current().Path)
		}
	})

	t.Run("remove current mid-queue", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(1)

		ok, changed := q.RemoveAt(1)

		if !ok || !changed {
			t.Errorf("RemoveAt = (%v, %v), want (true, true)", ok, changed)
		}
		// The item that slid into the slot becomes current.
		if q.CurrentIndex() != 1 {
			t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
		}
		if q.Current().Path != "/c.mkv" {
			t.Errorf("Current() = %q, want /c.mkv", q.Current().Path)
		}
	})

	t.Run("remove current at tail clamps", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv")
		q.JumpTo(1)

		_, changed := q.RemoveAt(1)

		if !changed {
			t.Error("removing the current item should report a change")
		}
		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
		}
	})

	t.Run("remove after current", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(0)

		_, changed := q.RemoveAt(2)

		if changed {
			t.Error("removing after current should not report a change")
		}
		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
		}
	})

	t.Run("remove last item empties queue", func(t *testing.T) {
		q := queueWith("/a.mkv")

		ok, changed := q.RemoveAt(0)

		if !ok || !changed {
			t.Errorf("RemoveAt = (%v, %v), want (true, true)", ok, changed)
		}
		if !q.IsEmpty() {
			t.Error("queue should be empty")
		}
		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		q := queueWith("/a.mkv")
		if ok, _ := q.RemoveAt(5); ok {
			t.Error("RemoveAt with invalid index should return false")
		}
	})
}

func TestQueue_Move(t *testing.T) {
	t.Run("current item follows move", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(0)

		if !q.Move(0, 2) {
			t.Fatal("Move should succeed")
		}
		if q.CurrentIndex() != 2 {
			t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
		}
		if q.Current().Path != "/a.mkv" {
			t.Errorf("Current() = %q, want /a.mkv", q.Current().Path)
		}
	})

	t.Run("move across current from below", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(1)

		q.Move(0, 2)

		if q.Current().Path != "/b.mkv" {
			t.Errorf("Current() = %q, want /b.mkv (same item)", q.Current().Path)
		}
		if q.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
		}
	})

	t.Run("move across current from above", func(t *testing.T) {
		q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
		q.JumpTo(1)

		q.Move(2, 0)

		if q.Current().Path != "/b.mkv" {
			t.Errorf("Current() = %q, want /b.mkv (same item)", q.Current().Path)
		}
		if q.CurrentIndex() != 2 {
			t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
		}
	})
}

func TestQueue_Clear(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv")
	q.JumpTo(1)

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if q.Order() != nil {
		t.Error("Order() should be nil after Clear")
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := queueWith("/item0.mkv", "/item1.mkv", "/item2.mkv")

	item := q.JumpTo(1)

	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if item == nil || item.Path != "/item1.mkv" {
		t.Errorf("JumpTo returned %v, want /item1.mkv", item)
	}

	if q.JumpTo(5) != nil {
		t.Error("JumpTo with invalid index should return nil")
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_NextPrevious_Wraparound(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
	q.JumpTo(2)

	// User navigation wraps regardless of repeat mode.
	item := q.Next()
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() after Next at end = %d, want 0", q.CurrentIndex())
	}
	if item == nil || item.Path != "/a.mkv" {
		t.Errorf("Next() = %v, want /a.mkv", item)
	}

	item = q.Previous()
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() after Previous at start = %d, want 2", q.CurrentIndex())
	}
	if item == nil || item.Path != "/c.mkv" {
		t.Errorf("Previous() = %v, want /c.mkv", item)
	}
}

func TestQueue_NextPrevious_Empty(t *testing.T) {
	q := NewQueue()
	if q.Next() != nil {
		t.Error("Next() on empty queue should return nil")
	}
	if q.Previous() != nil {
		t.Error("Previous() on empty queue should return nil")
	}
}

func TestQueue_Advance_RepeatOff(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv")

	item := q.Advance()
	if item == nil || item.Path != "/b.mkv" {
		t.Errorf("Advance() = %v, want /b.mkv", item)
	}

	// At the end with repeat off, Advance stops.
	item = q.Advance()
	if item != nil {
		t.Errorf("Advance() at end = %v, want nil", item)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_Advance_RepeatAll(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv")
	q.SetRepeatMode(RepeatAll)
	q.JumpTo(1)

	item := q.Advance()
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (wrapped)", q.CurrentIndex())
	}
	if item == nil || item.Path != "/a.mkv" {
		t.Errorf("Advance() = %v, want /a.mkv", item)
	}
}

func TestQueue_Advance_RepeatOne(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv")

	q.SetRepeatMode(RepeatOne)

	item := q.Advance()
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (same item)", q.CurrentIndex())
	}
	if item == nil || item.Path != "/a.mkv" {
		t.Errorf("Advance() = %v, want /a.mkv", item)
	}
}

func TestQueue_Advance_Empty(t *testing.T) {
	q := NewQueue()
	if q.Advance() != nil {
		t.Error("Advance() on empty queue should return nil")
	}
}

func TestQueue_CycleRepeatMode(t *testing.T) {
	q := NewQueue()

	if q.RepeatMode() != RepeatOff {
		t.Errorf("initial RepeatMode() = %v, want RepeatOff", q.RepeatMode())
	}

	mode := q.CycleRepeatMode()
	if mode != RepeatAll {
		t.Errorf("after 1st cycle = %v, want RepeatAll", mode)
	}

	mode = q.CycleRepeatMode()
	if mode != RepeatOne {
		t.Errorf("after 2nd cycle = %v, want RepeatOne", mode)
	}

	mode = q.CycleRepeatMode()
	if mode != RepeatOff {
		t.Errorf("after 3rd cycle = %v, want RepeatOff", mode)
	}
}

func TestQueue_ToggleShuffle(t *testing.T) {
	q := NewQueue()

	if q.Shuffle() {
		t.Error("initial Shuffle() should be false")
	}

	got := q.ToggleShuffle()
	if !got {
		t.Error("ToggleShuffle() should return true")
	}
	if !q.Shuffle() {
		t.Error("Shuffle() should be true after toggle")
	}

	got = q.ToggleShuffle()
	if got {
		t.Error("ToggleShuffle() should return false")
	}
}

// checkOrder verifies the shuffle order invariant: a permutation of all
// item indices with the current index first.
func checkOrder(t *testing.T, q *PlayingQueue) {
	t.Helper()
	order := q.Order()
	if len(order) != q.Len() {
		t.Fatalf("order length = %d, want %d", len(order), q.Len())
	}
	if order[0] != q.CurrentIndex() {
		t.Errorf("order[0] = %d, want current index %d", order[0], q.CurrentIndex())
	}
	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("order is not a permutation: %v", order)
		}
	}
}

func TestQueue_ShuffleOrderInvariant(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv", "/c.mkv", "/d.mkv", "/e.mkv")
	q.JumpTo(2)
	q.SetShuffle(true)
	checkOrder(t, q)

	// Every structural mutation regenerates the order.
	q.Add(Item{Path: "/f.mkv"})
	checkOrder(t, q)

	q.InsertAt(0, Item{Path: "/g.mkv"})
	checkOrder(t, q)

	q.RemoveAt(0)
	checkOrder(t, q)

	q.Move(0, 3)
	checkOrder(t, q)

	q.Replace([]Item{{Path: "/x.mkv"}, {Path: "/y.mkv"}}, 1)
	checkOrder(t, q)
}

func TestQueue_ShuffleOff_NoOrder(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv")
	if q.Order() != nil {
		t.Error("Order() should be nil with shuffle off")
	}
	q.SetShuffle(true)
	q.SetShuffle(false)
	if q.Order() != nil {
		t.Error("Order() should be nil after disabling shuffle")
	}
}

func TestQueue_ShuffleNextVisitsAll(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv", "/c.mkv", "/d.mkv")
	q.SetShuffle(true)

	seen := map[string]bool{q.Current().Path: true}
	for i := 0; i < 3; i++ {
		item := q.Next()
		if item == nil {
			t.Fatal("Next() returned nil on non-empty queue")
		}
		seen[item.Path] = true
	}
	if len(seen) != 4 {
		t.Errorf("walking the shuffle order visited %d items, want 4", len(seen))
	}
	// One more step wraps to the start of the order.
	if q.Next() == nil {
		t.Error("Next() should wrap, not stop")
	}
}

func TestQueue_ShufflePreviousInvertsNext(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv", "/c.mkv", "/d.mkv")
	q.SetShuffle(true)

	start := q.CurrentIndex()
	q.Next()
	q.Previous()
	if q.CurrentIndex() != start {
		t.Errorf("Next then Previous landed on %d, want %d", q.CurrentIndex(), start)
	}
}

func TestQueue_Advance_ShuffleRepeatOff(t *testing.T) {
	q := queueWith("/a.mkv", "/b.mkv", "/c.mkv")
	q.SetShuffle(true)

	// The current item is first in the order, so exactly two advances
	// succeed before the end of the order.
	for i := 0; i < 2; i++ {
		if q.Advance() == nil {
			t.Fatalf("Advance() %d returned nil before end of order", i+1)
		}
	}
	if q.Advance() != nil {
		t.Error("Advance() at end of shuffle order should return nil")
	}
}

func TestQueue_ShuffleSurvivesEmptyQueue(t *testing.T) {
	q := NewQueue()
	q.SetShuffle(true)
	if q.Order() != nil {
		t.Error("Order() on empty queue should be nil")
	}
	if q.Next() != nil || q.Advance() != nil {
		t.Error("navigation on empty shuffled queue should return nil")
	}
	q.Add(Item{Path: "/a.mkv"})
	checkOrder(t, q)
}
