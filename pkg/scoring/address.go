package scoring

import (
	"strings"

	"github.com/sanctionsscore/core/pkg/entity"
	"github.com/sanctionsscore/core/pkg/normalize"
)

// addressFieldWeights assigns relative importance to each address field
// when folding them into one per-pair score. Line1 carries the most
// discriminating power (street + number), City and Country are coarse
// gates, PostalCode and State are strong corroborators when present.
var addressFieldWeights = map[string]float64{
	"line1":      0.4,
	"line2":      0.1,
	"city":       0.2,
	"state":      0.1,
	"postalCode": 0.1,
	"country":    0.1,
}

// AddressComparer scores postal addresses. Addresses in different
// countries are not compared field-by-field: a country mismatch caps the
// pair's score at 0, since the same street name recurring across
// countries is not meaningful corroboration.
type AddressComparer struct {
	names *NameComparer
}

// NewAddressComparer builds an AddressComparer sharing cfg with the name
// comparer, since address fields are themselves free-text and benefit
// from the same Jaro-Winkler machinery.
func NewAddressComparer(cfg ResolvedSimilarity) *AddressComparer {
	return &AddressComparer{names: NewNameComparer(cfg)}
}

func (c *AddressComparer) fieldScore(a, b string) (float64, bool) {
	na := normalize.Normalize(a, normalize.Options{})
	nb := normalize.Normalize(b, normalize.Options{})
	if na == "" || nb == "" {
		return 0, false
	}
	return c.names.compareSingle(na, nb), true
}

func (c *AddressComparer) comparePair(a, b entity.Address) (float64, bool) {
	countryA := strings.ToUpper(strings.TrimSpace(a.Country))
	countryB := strings.ToUpper(strings.TrimSpace(b.Country))
	if countryA != "" && countryB != "" && countryA != countryB {
		return 0, true
	}

	fields := map[string][2]string{
		"line1":      {a.Line1, b.Line1},
		"line2":      {a.Line2, b.Line2},
		"city":       {a.City, b.City},
		"state":      {a.State, b.State},
		"postalCode": {a.PostalCode, b.PostalCode},
		"country":    {a.Country, b.Country},
	}

	var weightedSum, totalWeight float64
	compared := 0
	for field, vals := range fields {
		score, ok := c.fieldScore(vals[0], vals[1])
		if !ok {
			continue
		}
		w := addressFieldWeights[field]
		weightedSum += score * w
		totalWeight += w
		compared++
	}
	if compared == 0 {
		return 0, false
	}
	return weightedSum / totalWeight, true
}

// CompareAddresses scores two address lists by taking the maximum score
// across every pair, since a single strong address match is sufficient
// corroboration regardless of how many other addresses are on file.
func (c *AddressComparer) CompareAddresses(a, b []entity.Address) ScorePiece {
	if len(a) == 0 || len(b) == 0 {
		return ScorePiece{PieceType: "address", FieldsCompared: 0}
	}

	best := 0.0
	compared := 0
	for _, addrA := range a {
		for _, addrB := range b {
			score, ok := c.comparePair(addrA, addrB)
			if !ok {
				continue
			}
			compared++
			if score > best {
				best = score
			}
		}
	}
	if compared == 0 {
		return ScorePiece{PieceType: "address", FieldsCompared: 0}
	}

	return ScorePiece{
		PieceType:      "address",
		Score:          best,
		Matched:        best > 0,
		Exact:          best >= 0.999,
		FieldsCompared: compared,
	}
}
