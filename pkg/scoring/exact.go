package scoring

import (
	"strings"

	"github.com/sanctionsscore/core/pkg/entity"
)

// ExactMatcher compares identifier-shaped fields (government IDs, crypto
// addresses, contact info) where similarity is binary: either the
// normalized values are equal or they are not. List-valued fields compare
// as a cross product, matched if any pair agrees.
type ExactMatcher struct{}

// NewExactMatcher builds an ExactMatcher. It holds no state.
func NewExactMatcher() *ExactMatcher { return &ExactMatcher{} }

// normalizeIdentifier strips whitespace, hyphens, and case so
// "123-45-6789" and "123456789" and "123 45 6789" all compare equal.
func normalizeIdentifier(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// CompareGovernmentIDs cross-compares every government ID on each side.
// Two IDs match when both their Type and normalized Identifier are equal;
// Country is ignored, for the match decision and for Exact alike, since
// the same document is sometimes filed under different country codes by
// different list maintainers.
func (m *ExactMatcher) CompareGovernmentIDs(a, b []entity.GovernmentID) ScorePiece {
	if len(a) == 0 || len(b) == 0 {
		return ScorePiece{PieceType: "governmentId", FieldsCompared: 0}
	}

	matches := 0
	for _, ga := range a {
		idA := normalizeIdentifier(ga.Identifier)
		if idA == "" {
			continue
		}
		for _, gb := range b {
			idB := normalizeIdentifier(gb.Identifier)
			if idB == "" {
				continue
			}
			if ga.Type == gb.Type && idA == idB {
				matches++
			}
		}
	}

	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	score := float64(matches) / float64(denom)
	if score > 1.0 {
		score = 1.0
	}
	return ScorePiece{
		PieceType:      "governmentId",
		Score:          score,
		Matched:        score > 0,
		Exact:          score == 1,
		FieldsCompared: 1,
	}
}

// CompareCryptoAddresses cross-compares crypto addresses by currency
// (case-insensitive) and the address string exactly as given
// (case-sensitive, no separator stripping).
func (m *ExactMatcher) CompareCryptoAddresses(a, b []entity.CryptoAddress) ScorePiece {
	if len(a) == 0 || len(b) == 0 {
		return ScorePiece{PieceType: "cryptoAddress", FieldsCompared: 0}
	}

	matches := 0
	for _, ca := range a {
		addrA := normalizeIdentifier(ca.Address)
		if addrA == "" {
			continue
		}
		for _, cb := range b {
			if strings.EqualFold(ca.Currency, cb.Currency) && ca.Address == cb.Address {
				matches++
			}
		}
	}

	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	score := float64(matches) / float64(denom)
	if score > 1.0 {
		score = 1.0
	}
	return ScorePiece{
		PieceType:      "cryptoAddress",
		Score:          score,
		Matched:        score > 0,
		Exact:          score == 1,
		FieldsCompared: 1,
	}
}

// CompareContactInfo cross-compares each of emails, phone numbers, fax
// numbers, and websites independently, case-folded. Only fields present on
// both sides count toward FieldsCompared; the piece score is the average
// match rate (0 or 1 per field) over those fields.
func (m *ExactMatcher) CompareContactInfo(a, b entity.ContactInfo) ScorePiece {
	fieldMatches := func(as, bs []string) (compared bool, matched bool) {
		if len(as) == 0 || len(bs) == 0 {
			return false, false
		}
		for _, x := range as {
			nx := normalizeIdentifier(x)
			if nx == "" {
				continue
			}
			for _, y := range bs {
				if nx == normalizeIdentifier(y) {
					matched = true
				}
			}
		}
		return true, matched
	}

	fields := [][2][]string{
		{a.EmailAddresses, b.EmailAddresses},
		{a.PhoneNumbers, b.PhoneNumbers},
		{a.FaxNumbers, b.FaxNumbers},
		{a.Websites, b.Websites},
	}

	compared := 0
	var sum float64
	allMatched := true
	anyMatched := false
	for _, f := range fields {
		ok, matched := fieldMatches(f[0], f[1])
		if !ok {
			continue
		}
		compared++
		if matched {
			sum += 1.0
			anyMatched = true
		} else {
			allMatched = false
		}
	}

	if compared == 0 {
		return ScorePiece{PieceType: "contactInfo", FieldsCompared: 0}
	}

	score := sum / float64(compared)
	return ScorePiece{
		PieceType:      "contactInfo",
		Score:          score,
		Matched:        anyMatched,
		Exact:          score == 1 && allMatched,
		FieldsCompared: compared,
	}
}
