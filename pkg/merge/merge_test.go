package merge

import (
	"testing"

	"github.com/sanctionsscore/core/pkg/entity"
)

// S6: two records sharing (source, sourceId, type) fold into one entity;
// the non-canonical name survives as an alt-name and contact info dedupes.
func TestFoldMergesDuplicateSourceRecords(t *testing.T) {
	m := NewEntityMerger()

	a := entity.Entity{
		ID: "1", Name: "John Doe", Type: entity.TypePerson, Source: "OFAC", SourceID: "123",
		Person:  &entity.Person{},
		Contact: entity.ContactInfo{PhoneNumbers: []string{"555-1111"}},
	}
	b := entity.Entity{
		ID: "2", Name: "Johnny Doe", Type: entity.TypePerson, Source: "OFAC", SourceID: "123",
		Person:  &entity.Person{},
		Contact: entity.ContactInfo{PhoneNumbers: []string{"555-1111", "555-2222"}},
	}

	merged := m.Merge([]entity.Entity{a, b})
	if len(merged) != 1 {
		t.Fatalf("Merge produced %d entities, want 1", len(merged))
	}

	out := merged[0]
	if out.Name != "John Doe" {
		t.Errorf("Name = %q, want first-non-empty-wins %q", out.Name, "John Doe")
	}

	foundAlt := false
	for _, alt := range out.Person.AltNames {
		if alt == "Johnny Doe" {
			foundAlt = true
		}
	}
	if !foundAlt {
		t.Errorf("AltNames = %v, want to contain %q", out.Person.AltNames, "Johnny Doe")
	}

	if len(out.Contact.PhoneNumbers) != 2 {
		t.Errorf("PhoneNumbers = %v, want 2 deduped entries", out.Contact.PhoneNumbers)
	}
}

// Testable property 6 (spec §8): merge([e])[0] equals normalize(e).
func TestMergeSingleEntityEqualsNormalize(t *testing.T) {
	m := NewEntityMerger()
	e := entity.Entity{
		Name:   "  José Pérez  ",
		Type:   entity.TypePerson,
		Person: &entity.Person{AltNames: []string{" Pepe Pérez "}},
	}

	merged := m.Merge([]entity.Entity{e})
	if len(merged) != 1 {
		t.Fatalf("Merge([e]) produced %d entities, want 1", len(merged))
	}
	want := e.Normalize()
	if merged[0].Name != want.Name {
		t.Errorf("Merge([e])[0].Name = %q, want %q (e.Normalize().Name)", merged[0].Name, want.Name)
	}
	if merged[0].Person.AltNames[0] != want.Person.AltNames[0] {
		t.Errorf("Merge([e])[0].Person.AltNames[0] = %q, want %q", merged[0].Person.AltNames[0], want.Person.AltNames[0])
	}
}

func TestMergeDistinctNaturalKeysStaySeparate(t *testing.T) {
	m := NewEntityMerger()
	a := entity.Entity{Name: "Alice", Type: entity.TypePerson, Source: "OFAC", SourceID: "1", Person: &entity.Person{}}
	b := entity.Entity{Name: "Bob", Type: entity.TypePerson, Source: "OFAC", SourceID: "2", Person: &entity.Person{}}

	merged := m.Merge([]entity.Entity{a, b})
	if len(merged) != 2 {
		t.Fatalf("Merge produced %d entities, want 2 for distinct natural keys", len(merged))
	}
}

func TestMergeAddressesFillsBlanksOnSharedLines(t *testing.T) {
	a := []entity.Address{{Line1: "350 Fifth Avenue", Line2: "Suite 100", City: "New York"}}
	b := []entity.Address{{Line1: "350 Fifth Avenue", Line2: "Suite 100", PostalCode: "10118", Country: "US"}}

	out := mergeAddresses(a, b)
	if len(out) != 1 {
		t.Fatalf("mergeAddresses produced %d entries, want 1 for shared (line1,line2)", len(out))
	}
	merged := out[0]
	if merged.City != "New York" {
		t.Errorf("City = %q, want %q carried from first record", merged.City, "New York")
	}
	if merged.PostalCode != "10118" {
		t.Errorf("PostalCode = %q, want %q filled in from second record", merged.PostalCode, "10118")
	}
	if merged.Country != "US" {
		t.Errorf("Country = %q, want %q filled in from second record", merged.Country, "US")
	}
}

func TestMergeAddressesDifferentLinesStaySeparate(t *testing.T) {
	a := []entity.Address{{Line1: "350 Fifth Avenue", City: "New York"}}
	b := []entity.Address{{Line1: "221B Baker Street", City: "London"}}

	out := mergeAddresses(a, b)
	if len(out) != 2 {
		t.Fatalf("mergeAddresses produced %d entries, want 2 for distinct streets", len(out))
	}
}

func TestAltNameIfDifferent(t *testing.T) {
	if got := altNameIfDifferent("John Doe", "John Doe"); got != nil {
		t.Errorf("altNameIfDifferent identical names = %v, want nil", got)
	}
	if got := altNameIfDifferent("José", "Jose"); got != nil {
		t.Errorf("altNameIfDifferent diacritic-equivalent names = %v, want nil", got)
	}
	got := altNameIfDifferent("John Doe", "Johnny Doe")
	if len(got) != 2 {
		t.Errorf("altNameIfDifferent distinct names = %v, want both names surfaced", got)
	}
}

func TestMergeSanctionsInfoDedupesPrograms(t *testing.T) {
	a := entity.SanctionsInfo{Programs: []string{"SDN"}, Secondary: false}
	b := entity.SanctionsInfo{Programs: []string{"SDN", "CYBER2"}, Secondary: true}

	out := mergeSanctionsInfo(a, b)
	if len(out.Programs) != 2 {
		t.Errorf("Programs = %v, want 2 deduped entries", out.Programs)
	}
	if !out.Secondary {
		t.Errorf("Secondary = false, want true (true wins on OR-fold)")
	}
}
