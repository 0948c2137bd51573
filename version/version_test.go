package version

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{"equal zero", Version{}, Version{}, 0},
		{"equal full", New(1, 2, 3, 4), New(1, 2, 3, 4), 0},
		{"major wins", New(2, 0, 0, 0), New(1, 9, 9, 9), 1},
		{"major loses", New(1, 9, 9, 9), New(2, 0, 0, 0), -1},
		{"minor beats release", New(0, 2, 0, 0), New(0, 1, 9, 9), 1},
		{"release beats build", New(0, 0, 2, 0), New(0, 0, 1, 9), 1},
		{"build decides", New(1, 2, 3, 5), New(1, 2, 3, 4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Compare must be antisymmetric.
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestCompareTotalOrder(t *testing.T) {
	// Exactly one of <, ==, > must hold for any pair, and the order
	// must be transitive.
	versions := []Version{
		{},
		New(0, 0, 0, 1),
		New(0, 0, 1, 0),
		New(0, 1, 0, 0),
		New(0, 1, 0, 1),
		New(1, 0, 0, 0),
		New(1, 2, 3, 4),
		New(2, 0, 0, 0),
	}

	for i, a := range versions {
		for j, b := range versions {
			got := Compare(a, b)
			switch {
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want 0", a, b, got)
			case i < j && got != -1:
				t.Errorf("Compare(%v, %v) = %d, want -1", a, b, got)
			case i > j && got != 1:
				t.Errorf("Compare(%v, %v) = %d, want 1", a, b, got)
			}
			for _, c := range versions {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 && Compare(a, c) > 0 {
					t.Fatalf("order not transitive: %v <= %v <= %v but Compare(%v, %v) > 0", a, b, c, a, c)
				}
			}
		}
	}
}

func TestAtLeast(t *testing.T) {
	floor := New(1, 2, 0, 0)

	if !New(1, 2, 0, 0).AtLeast(floor) {
		t.Error("version should satisfy its own floor")
	}
	if !New(1, 3, 0, 0).AtLeast(floor) {
		t.Error("newer version should satisfy the floor")
	}
	if New(1, 1, 9, 9).AtLeast(floor) {
		t.Error("older version should not satisfy the floor")
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	tests := []Version{
		{},
		New(1, 2, 3, 4),
		New(0, 0, 0, 1),
		New(4294967295, 0, 0, 4294967295),
	}

	for _, v := range tests {
		t.Run(v.String(), func(t *testing.T) {
			got, err := Parse(v.String())
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", v.String(), err)
			}
			if !got.Equal(v) {
				t.Errorf("Parse(String()) = %v, want %v", got, v)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	bad := []string{
		"",
		"1",
		"1.2",
		"1.2.3",
		"1.2.3.4.5",
		"1.2.3.x",
		"-1.2.3.4",
		"1..3.4",
		"4294967296.0.0.0", // overflows uint32
	}

	for _, s := range bad {
		t.Run(s, func(t *testing.T) {
			if _, err := Parse(s); !errors.Is(err, ErrMalformed) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformed", s, err)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !(Version{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
	if New(0, 0, 0, 1).IsZero() {
		t.Error("nonzero version should not report IsZero")
	}
}
