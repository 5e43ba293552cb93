package pets

import "testing"

func names(items []Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearch_ByAgeRange_InclusiveAndOrdered(t *testing.T) {
	items := []Pet{
		{Name: "One", Age: 1},
		{Name: "Two", Age: 2},
		{Name: "Three", Age: 3},
		{Name: "Four", Age: 4},
	}

	got := names(Search(items, ByAgeRange(2, 3)))
	if !equal(got, []string{"Two", "Three"}) {
		t.Fatalf("expected [Two Three], got %v", got)
	}
}

func TestSearch_ByNameAndBreed_CaseSensitiveSubstring(t *testing.T) {
	items := []Pet{
		{Name: "Rex", Breed: "Labrador"},
		{Name: "Rexy", Breed: "Poodle"},
		{Name: "rex", Breed: "Lab mix"},
	}

	if got := names(Search(items, ByName("Rex"))); !equal(got, []string{"Rex", "Rexy"}) {
		t.Fatalf("ByName: got %v", got)
	}
	if got := names(Search(items, ByBreed("Lab"))); !equal(got, []string{"Rex", "rex"}) {
		t.Fatalf("ByBreed: got %v", got)
	}
	if got := Search(items, ByBreed("lab")); len(got) != 0 {
		t.Fatalf("ByBreed must be case-sensitive, got %v", names(got))
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	items := []Pet{{Name: "A", Adopted: true}, {Name: "B"}}

	out := Search(items, Available())
	if !equal(names(out), []string{"B"}) {
		t.Fatalf("Available: got %v", names(out))
	}
	out[0].Name = "changed"
	if items[1].Name != "B" {
		t.Fatalf("Search must return a new slice")
	}
	if got := names(Search(items, Adopted())); !equal(got, []string{"A"}) {
		t.Fatalf("Adopted: got %v", got)
	}
	if got := Search(items, nil); len(got) != 2 {
		t.Fatalf("nil filter must match all, got %d", len(got))
	}
}
