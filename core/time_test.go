package core

import "testing"

func TestTimeOrdering(t *testing.T) {
	a := Seconds(1)
	b := Seconds(2)

	if !a.Before(b) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %s after %s", b, a)
	}
	if a.Equal(b) {
		t.Fatalf("expected %s != %s", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatalf("unexpected Compare results")
	}
}

func TestTimeAddSub(t *testing.T) {
	a := Seconds(1)
	delta := SecondsDelta(0.5)

	sum := a.Add(delta)
	if !sum.Equal(Seconds(1.5)) {
		t.Fatalf("expected 1.5, got %s", sum)
	}

	back := sum.Sub(a)
	if back != delta {
		t.Fatalf("expected delta %s, got %s", delta, back)
	}
}

func TestTimeTriggerResolve(t *testing.T) {
	current := Seconds(5)

	if got := Now().Resolve(current); !got.Equal(current) {
		t.Fatalf("Now() should resolve to current time, got %s", got)
	}
	if got := At(Seconds(10)).Resolve(current); !got.Equal(Seconds(10)) {
		t.Fatalf("At() should ignore current time, got %s", got)
	}
	if got := In(SecondsDelta(2)).Resolve(current); !got.Equal(Seconds(7)) {
		t.Fatalf("In() should add delta to current, got %s", got)
	}
}

func TestTimeBoundsClosedInterval(t *testing.T) {
	b := NewTimeBounds(Seconds(1), Seconds(2))

	if !b.Includes(Seconds(1)) || !b.Includes(Seconds(2)) || !b.Includes(Seconds(1.5)) {
		t.Fatalf("expected closed interval to include both endpoints and midpoint")
	}
	if b.Includes(Seconds(0.9)) || b.Includes(Seconds(2.1)) {
		t.Fatalf("expected closed interval to exclude values outside range")
	}
	if b.PastEnd(Seconds(2)) {
		t.Fatalf("closed interval's own end should not be PastEnd")
	}
	if !b.PastEnd(Seconds(2.1)) {
		t.Fatalf("expected value beyond closed end to be PastEnd")
	}
}

func TestTimeBoundsHalfOpenInterval(t *testing.T) {
	b := NewHalfOpenTimeBounds(Seconds(1), Seconds(2))

	if b.Includes(Seconds(2)) {
		t.Fatalf("half-open interval should exclude its end")
	}
	if !b.PastEnd(Seconds(2)) {
		t.Fatalf("half-open interval's end should count as PastEnd")
	}
}

func TestTimeBoundsUnbounded(t *testing.T) {
	b := UnboundedTimeBounds()

	if !b.Includes(Seconds(-1000)) || !b.Includes(Seconds(1000)) {
		t.Fatalf("unbounded interval should include everything")
	}
	if b.PastEnd(Seconds(1000)) {
		t.Fatalf("unbounded interval should never report PastEnd")
	}
}

func TestTimeBoundsPanicsOnInvertedRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when end precedes start")
		}
	}()
	NewTimeBounds(Seconds(2), Seconds(1))
}

func TestTimeBoundsAccessors(t *testing.T) {
	b := NewHalfOpenTimeBounds(Seconds(1), Seconds(2))

	start, hasStart := b.Start()
	if !hasStart || !start.Equal(Seconds(1)) {
		t.Fatalf("expected start=1, got %s (hasStart=%v)", start, hasStart)
	}
	end, hasEnd, excl := b.End()
	if !hasEnd || !excl || !end.Equal(Seconds(2)) {
		t.Fatalf("expected end=2 exclusive, got %s (hasEnd=%v excl=%v)", end, hasEnd, excl)
	}
}
