package quiz

import (
	"sort"
	"testing"
)

func TestShuffleOptionsPreservesCorrectText(t *testing.T) {
	q := Question{
		ID:           1,
		Options:      []string{"14", "20", "12", "10"},
		CorrectIndex: 0,
	}

	for seed := int64(0); seed < 50; seed++ {
		s := NewSeededSampler(seed)
		sq := s.ShuffleOptions(q)

		if sq.CorrectText != "14" {
			t.Fatalf("seed %d: correct text = %q, want %q", seed, sq.CorrectText, "14")
		}
		if len(sq.Options) != len(q.Options) {
			t.Fatalf("seed %d: option count changed: %d", seed, len(sq.Options))
		}
		a := append([]string(nil), q.Options...)
		b := append([]string(nil), sq.Options...)
		sort.Strings(a)
		sort.Strings(b)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("seed %d: shuffled options are not a permutation: %v vs %v",
					seed, q.Options, sq.Options)
			}
		}
	}
}

func TestShuffleOptionsDoesNotMutateQuestion(t *testing.T) {
	q := Question{
		ID:           1,
		Options:      []string{"one", "two", "three"},
		CorrectIndex: 2,
	}
	s := NewSeededSampler(9)
	s.ShuffleOptions(q)

	want := []string{"one", "two", "three"}
	for i, o := range q.Options {
		if o != want[i] {
			t.Fatalf("canonical options mutated at %d: got %q want %q", i, o, want[i])
		}
	}
}

func TestShuffleOptionsActuallyPermutes(t *testing.T) {
	q := Question{
		ID:           1,
		Options:      []string{"a", "b", "c", "d", "e", "f"},
		CorrectIndex: 1,
	}

	moved := false
	for seed := int64(0); seed < 20 && !moved; seed++ {
		sq := NewSeededSampler(seed).ShuffleOptions(q)
		for i := range sq.Options {
			if sq.Options[i] != q.Options[i] {
				moved = true
				break
			}
		}
	}
	if !moved {
		t.Fatal("options never left their canonical order across 20 shuffles")
	}
}

func TestShuffleOptionsOutOfRangeCorrectIndex(t *testing.T) {
	q := Question{ID: 1, Options: []string{"x", "y"}, CorrectIndex: 7}
	sq := NewSeededSampler(11).ShuffleOptions(q)
	if sq.CorrectText != "" {
		t.Fatalf("expected empty correct text for bad index, got %q", sq.CorrectText)
	}
}
