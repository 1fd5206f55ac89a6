package delta

import (
	"testing"
)

func TestKindAndPlacementNames(t *testing.T) {
	cases := []struct {
		got      string
		expected string
	}{
		{Insertion.String(), "insertion"},
		{Deletion.String(), "deletion"},
		{Kind(9).String(), "Kind(9)"},
		{None.String(), "none"},
		{Before.String(), "before"},
		{After.String(), "after"},
		{Placement(7).String(), "Placement(7)"},
	}

	for _, c := range cases {
		if c.got != c.expected {
			t.Errorf("Expected %q, got %q", c.expected, c.got)
		}
	}
}

func TestOffsetIsChunkIndexTimesChunkSize(t *testing.T) {
	c := NewInsertion(6, Before, []byte("i "))

	if c.Offset(4) != 24 {
		t.Errorf("Unexpected offset %v", c.Offset(4))
	}

	if NewDeletion(0).Offset(4) != 0 {
		t.Error("First chunk should be at offset 0")
	}
}

func TestFormatUsesByteOffsets(t *testing.T) {
	cases := []struct {
		change   Change
		expected string
	}{
		{NewInsertion(1, Before, []byte("sap")), `Insertion(before, 4, "sap")`},
		{NewDeletion(5), "Deletion(20)"},
		{NewInsertion(8, After, []byte("f")), `Insertion(after, 32, "f")`},
	}

	for _, c := range cases {
		if s := c.change.Format(4); s != c.expected {
			t.Errorf("Expected %v, got %v", c.expected, s)
		}
	}
}

func TestChangeEquality(t *testing.T) {
	a := NewInsertion(1, Before, []byte("sap"))

	if !a.Equal(NewInsertion(1, Before, []byte("sap"))) {
		t.Error("Identical insertions should be equal")
	}

	for _, other := range []Change{
		NewInsertion(2, Before, []byte("sap")),
		NewInsertion(1, After, []byte("sap")),
		NewInsertion(1, Before, []byte("sop")),
		NewDeletion(1),
	} {
		if a.Equal(other) {
			t.Errorf("%v should not equal %v", a, other)
		}
	}

	if !NewInsertion(0, After, nil).Equal(NewInsertion(0, After, []byte{})) {
		t.Error("nil and empty literals should be equal")
	}
}

func TestListFilters(t *testing.T) {
	l := List{
		NewInsertion(1, Before, []byte("sap")),
		NewInsertion(6, Before, []byte("i ")),
		NewDeletion(0),
		NewDeletion(5),
	}

	if len(l.Insertions()) != 2 || len(l.Deletions()) != 2 {
		t.Errorf("Unexpected split %v / %v", l.Insertions(), l.Deletions())
	}

	if l.Deletions()[0].ChunkIndex != 0 || l.Deletions()[1].ChunkIndex != 5 {
		t.Errorf("Deletions out of order: %v", l.Deletions())
	}

	if l.LiteralBytes() != 5 {
		t.Errorf("Unexpected literal size %v", l.LiteralBytes())
	}

	if !l.Equal(append(List{}, l...)) {
		t.Error("Copy should be equal")
	}

	if l.Equal(l[:3]) {
		t.Error("Lists of different length should not be equal")
	}
}

func TestStringIsReadable(t *testing.T) {
	if s := NewDeletion(3).String(); s != "Deletion(chunk 3)" {
		t.Errorf("Unexpected %v", s)
	}

	if s := NewInsertion(3, After, []byte("x")).String(); s != `Insertion(after chunk 3, "x")` {
		t.Errorf("Unexpected %v", s)
	}
}
