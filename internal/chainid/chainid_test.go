package chainid

import (
	"errors"
	"testing"

	"foldprep/internal/errs"
)

func TestAllocate_Known(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "BA"},
		{52, "ZA"},
		{53, "AB"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, c := range cases {
		got, err := Allocate(c.n)
		if err != nil {
			t.Fatalf("Allocate(%d): %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("Allocate(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestAllocate_Bijective(t *testing.T) {
	seen := make(map[string]int, 20000)
	for n := 1; n <= 20000; n++ {
		id, err := Allocate(n)
		if err != nil {
			t.Fatalf("Allocate(%d): %v", n, err)
		}
		if prev, dup := seen[id]; dup {
			t.Fatalf("Allocate(%d) = %q collides with Allocate(%d)", n, id, prev)
		}
		seen[id] = n
	}
}

func TestAllocate_InvalidOrdinal(t *testing.T) {
	for _, n := range []int{0, -1, -27} {
		if _, err := Allocate(n); !errors.Is(err, errs.InvalidOrdinal) {
			t.Errorf("Allocate(%d) err = %v, want InvalidOrdinal", n, err)
		}
	}
}

func TestCounter_ContiguousRuns(t *testing.T) {
	var c Counter
	first, err := c.Next(2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Next(3)
	if err != nil {
		t.Fatal(err)
	}
	if got := append(first, second...); len(got) != 5 ||
		got[0] != "A" || got[1] != "B" || got[2] != "C" || got[4] != "E" {
		t.Fatalf("runs = %v", got)
	}
	if c.Used() != 5 {
		t.Fatalf("Used = %d, want 5", c.Used())
	}
	if _, err := c.Next(0); !errors.Is(err, errs.InvalidCopyCount) {
		t.Fatalf("Next(0) err = %v, want InvalidCopyCount", err)
	}
	if c.Used() != 5 {
		t.Fatalf("failed Next must not advance the counter")
	}
}
