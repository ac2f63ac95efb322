package scoring

import (
	"testing"

	"github.com/sanctionsscore/core/pkg/entity"
)

func TestNormalizeIdentifier(t *testing.T) {
	// S7: separator stripping makes "AB 12-34 C" and "AB1234C" equal.
	a := normalizeIdentifier("AB 12-34 C")
	b := normalizeIdentifier("AB1234C")
	if a != b {
		t.Errorf("S7: normalizeIdentifier(%q) = %q, normalizeIdentifier(%q) = %q, want equal", "AB 12-34 C", a, "AB1234C", b)
	}
}

func TestCompareGovernmentIDs(t *testing.T) {
	m := NewExactMatcher()

	t.Run("empty either side", func(t *testing.T) {
		piece := m.CompareGovernmentIDs(nil, []entity.GovernmentID{{Type: entity.GovIDCedula, Identifier: "1"}})
		if piece.FieldsCompared != 0 {
			t.Errorf("FieldsCompared = %d, want 0", piece.FieldsCompared)
		}
	})

	t.Run("S5 exact cedula match", func(t *testing.T) {
		a := []entity.GovernmentID{{Type: entity.GovIDCedula, Country: "VE", Identifier: "5892464"}}
		b := []entity.GovernmentID{{Type: entity.GovIDCedula, Country: "VE", Identifier: "5892464"}}
		piece := m.CompareGovernmentIDs(a, b)
		if !piece.Exact {
			t.Errorf("Exact = false, want true")
		}
		if piece.Score != 1.0 {
			t.Errorf("Score = %v, want 1.0", piece.Score)
		}
	})

	t.Run("S7 separator stripped match", func(t *testing.T) {
		a := []entity.GovernmentID{{Type: entity.GovIDPassport, Identifier: "AB 12-34 C"}}
		b := []entity.GovernmentID{{Type: entity.GovIDPassport, Identifier: "AB1234C"}}
		piece := m.CompareGovernmentIDs(a, b)
		if !piece.Exact {
			t.Errorf("Exact = false, want true after separator stripping")
		}
	})

	t.Run("partial match is fractional, not exact", func(t *testing.T) {
		a := []entity.GovernmentID{
			{Type: entity.GovIDPassport, Identifier: "111"},
			{Type: entity.GovIDSSN, Identifier: "222"},
		}
		b := []entity.GovernmentID{
			{Type: entity.GovIDPassport, Identifier: "111"},
		}
		piece := m.CompareGovernmentIDs(a, b)
		if piece.Exact {
			t.Errorf("Exact = true, want false for partial overlap")
		}
		if piece.Score != 0.5 {
			t.Errorf("Score = %v, want 0.5 (1 match / max(2,1))", piece.Score)
		}
	})

	t.Run("type must also match", func(t *testing.T) {
		a := []entity.GovernmentID{{Type: entity.GovIDPassport, Identifier: "123"}}
		b := []entity.GovernmentID{{Type: entity.GovIDSSN, Identifier: "123"}}
		piece := m.CompareGovernmentIDs(a, b)
		if piece.Matched {
			t.Errorf("Matched = true, want false when Type differs")
		}
	})
}

func TestCompareCryptoAddresses(t *testing.T) {
	m := NewExactMatcher()

	a := []entity.CryptoAddress{{Currency: "BTC", Address: "1A2b3C"}}
	b := []entity.CryptoAddress{{Currency: "btc", Address: "1A2b3C"}}
	piece := m.CompareCryptoAddresses(a, b)
	if !piece.Exact {
		t.Errorf("currency case-insensitive match: Exact = false, want true")
	}

	c := []entity.CryptoAddress{{Currency: "BTC", Address: "1a2b3c"}}
	piece2 := m.CompareCryptoAddresses(a, c)
	if piece2.Matched {
		t.Errorf("address must be case-sensitive: got match between %q and %q", "1A2b3C", "1a2b3c")
	}
}

func TestCompareContactInfo(t *testing.T) {
	m := NewExactMatcher()

	t.Run("no fields present on both sides", func(t *testing.T) {
		a := entity.ContactInfo{EmailAddresses: []string{"a@example.com"}}
		b := entity.ContactInfo{PhoneNumbers: []string{"555-1234"}}
		piece := m.CompareContactInfo(a, b)
		if piece.FieldsCompared != 0 {
			t.Errorf("FieldsCompared = %d, want 0", piece.FieldsCompared)
		}
	})

	t.Run("averaged across present fields", func(t *testing.T) {
		a := entity.ContactInfo{
			EmailAddresses: []string{"a@example.com"},
			PhoneNumbers:   []string{"555-1234"},
		}
		b := entity.ContactInfo{
			EmailAddresses: []string{"a@example.com"},
			PhoneNumbers:   []string{"555-9999"},
		}
		piece := m.CompareContactInfo(a, b)
		if piece.FieldsCompared != 2 {
			t.Errorf("FieldsCompared = %d, want 2", piece.FieldsCompared)
		}
		if piece.Score != 0.5 {
			t.Errorf("Score = %v, want 0.5 (1 of 2 fields matched)", piece.Score)
		}
		if piece.Exact {
			t.Errorf("Exact = true, want false when not all fields matched")
		}
	})
}
