package collections

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty(0, 0, 5, 9); got != 5 {
		t.Errorf("FirstNonEmpty(0,0,5,9) = %v, want 5", got)
	}
	if got := FirstNonEmpty(0, 0); got != 0 {
		t.Errorf("FirstNonEmpty(0,0) = %v, want 0", got)
	}
}

func TestFirstNonEmptyString(t *testing.T) {
	if got := FirstNonEmptyString("", "", "b", "c"); got != "b" {
		t.Errorf("FirstNonEmptyString(\"\",\"\",\"b\",\"c\") = %q, want %q", got, "b")
	}
	if got := FirstNonEmptyString("", ""); got != "" {
		t.Errorf("FirstNonEmptyString(\"\",\"\") = %q, want empty", got)
	}
}

func TestDedupeByKey(t *testing.T) {
	items := []int{1, 2, 2, 3, 1}
	got := DedupeByKey(items, func(i int) int { return i })
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("DedupeByKey length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupeByKey()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDedupeStringsPreservesOrder(t *testing.T) {
	got := DedupeStrings([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("DedupeStrings length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupeStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDedupeStringsCaseInsensitive(t *testing.T) {
	got := DedupeStrings([]string{"John Doe", "JOHN DOE", "Jane Doe"})
	want := []string{"John Doe", "Jane Doe"}
	if len(got) != len(want) {
		t.Fatalf("DedupeStrings length = %d, want %d (case-insensitive natural key per spec §4.10)", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupeStrings()[%d] = %q, want %q (first-occurrence casing kept)", i, got[i], want[i])
		}
	}
}
