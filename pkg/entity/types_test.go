package entity

import "testing"

func TestHasConsistentSubrecord(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want bool
	}{
		{"person with person record", Entity{Type: TypePerson, Person: &Person{}}, true},
		{"person with no record", Entity{Type: TypePerson}, false},
		{"person with mismatched vessel record", Entity{Type: TypePerson, Person: &Person{}, Vessel: &Vessel{}}, false},
		{"unknown with no record", Entity{Type: TypeUnknown}, true},
		{"unknown with a record", Entity{Type: TypeUnknown, Person: &Person{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.HasConsistentSubrecord(); got != tt.want {
				t.Errorf("HasConsistentSubrecord() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveTypeDowngradesOnMismatch(t *testing.T) {
	e := Entity{Type: TypeVessel, Person: &Person{}}
	if got := e.EffectiveType(); got != TypeUnknown {
		t.Errorf("EffectiveType() = %v, want TypeUnknown for inconsistent sub-record", got)
	}
}

func TestAltNamesByType(t *testing.T) {
	e := Entity{Type: TypeBusiness, Business: &Business{AltNames: []string{"Acme Holdings"}}}
	got := e.AltNames()
	if len(got) != 1 || got[0] != "Acme Holdings" {
		t.Errorf("AltNames() = %v, want [Acme Holdings]", got)
	}
}

func TestGovernmentIDsOnlyForIDBearingTypes(t *testing.T) {
	e := Entity{Type: TypeVessel, Vessel: &Vessel{}}
	if got := e.GovernmentIDs(); got != nil {
		t.Errorf("GovernmentIDs() = %v, want nil for a vessel", got)
	}
}

func TestDatesByType(t *testing.T) {
	e := Entity{Type: TypeOrganization, Organization: &Organization{}}
	dates := e.Dates()
	if _, ok := dates["incorporated"]; !ok {
		t.Errorf("Dates() = %v, want key %q for an organization", dates, "incorporated")
	}
	if _, ok := dates["dob"]; ok {
		t.Errorf("Dates() = %v, want no %q key for an organization", dates, "dob")
	}
}

func TestNormalizeTrimsAndRecomposesNFC(t *testing.T) {
	e := Entity{
		Name: "  José Garcı́a  ", // combining acute accent, decomposed
		Addresses: []Address{{Line1: " 350 Fifth Avenue ", City: "New York "}},
		Person:    &Person{AltNames: []string{" Pepe "}},
	}
	got := e.Normalize()
	if got.Name != "José Garcı́a" {
		t.Errorf("Name = %q, want trimmed and NFC-recomposed", got.Name)
	}
	if got.Addresses[0].Line1 != "350 Fifth Avenue" {
		t.Errorf("Addresses[0].Line1 = %q, want trimmed", got.Addresses[0].Line1)
	}
	if got.Person.AltNames[0] != "Pepe" {
		t.Errorf("Person.AltNames[0] = %q, want trimmed", got.Person.AltNames[0])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	e := Entity{Name: "  Wei Zhao  ", Person: &Person{AltNames: []string{"Zhao Wei"}}}
	once := e.Normalize()
	twice := once.Normalize()
	if once.Name != twice.Name || once.Person.AltNames[0] != twice.Person.AltNames[0] {
		t.Errorf("Normalize not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestNormalizeNilSubrecordsStayNil(t *testing.T) {
	e := Entity{Name: "Acme Corp", Type: TypeUnknown}
	got := e.Normalize()
	if got.Person != nil || got.Business != nil || got.Vessel != nil {
		t.Errorf("Normalize() populated a sub-record on an UNKNOWN entity: %+v", got)
	}
}
