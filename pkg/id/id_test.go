package id

import (
	"testing"
)

func TestNextIsMonotonic(t *testing.T) {
	g := NewGenerator()
	prev := g.Next()
	for i := 0; i < 1000; i++ {
		cur := g.Next()
		if cur.String() <= prev.String() {
			t.Fatalf("id %d not increasing: %s then %s", i, prev, cur)
		}
		prev = cur
	}
}

func TestNextSurvivesClockRegression(t *testing.T) {
	orig := nowMs
	t.Cleanup(func() { nowMs = orig })

	now := int64(1_700_000_000_000)
	nowMs = func() int64 { return now }
	g := NewGenerator()
	a := g.Next()

	now -= 5000 // clock jumps backwards
	b := g.Next()
	if b.String() <= a.String() {
		t.Fatalf("regressed clock broke ordering: %s then %s", a, b)
	}
}

func TestStringIsHex(t *testing.T) {
	g := NewGenerator()
	s := g.Next().String()
	if len(s) != 32 {
		t.Fatalf("hex length: %d", len(s))
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("non-hex char %q in %q", c, s)
		}
	}
}

func TestTimeComponent(t *testing.T) {
	orig := nowMs
	t.Cleanup(func() { nowMs = orig })
	nowMs = func() int64 { return 1_700_000_000_123 }
	g := NewGenerator()
	if ms := g.Next().Time().UnixMilli(); ms != 1_700_000_000_123 {
		t.Fatalf("timestamp: %d", ms)
	}
}
