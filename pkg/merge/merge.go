// Package merge folds duplicate source records for the same logical
// entity into a single canonical Entity, grouped by natural key.
package merge

import (
	"strings"

	"github.com/sanctionsscore/core/internal/collections"
	"github.com/sanctionsscore/core/pkg/entity"
	"github.com/sanctionsscore/core/pkg/normalize"
)

// naturalKey groups records belonging to the same logical list entry:
// lowercased Source and SourceID, plus Type since the same SourceID is
// occasionally reused across list segments for unrelated subjects.
type naturalKey struct {
	source   string
	sourceID string
	typ      string
}

func keyFor(e entity.Entity) naturalKey {
	return naturalKey{
		source:   strings.ToLower(string(e.Source)),
		sourceID: strings.ToLower(e.SourceID),
		typ:      strings.ToLower(string(e.Type)),
	}
}

// EntityMerger groups entity records by natural key and folds each group
// into one canonical Entity.
type EntityMerger struct{}

// NewEntityMerger builds an EntityMerger. It holds no state.
func NewEntityMerger() *EntityMerger { return &EntityMerger{} }

// Merge groups records by (Source, SourceID, Type) and folds each group
// into a single Entity via Fold, preserving the order of first
// appearance across groups.
func (m *EntityMerger) Merge(records []entity.Entity) []entity.Entity {
	order := make([]naturalKey, 0)
	groups := make(map[naturalKey][]entity.Entity)

	for _, r := range records {
		k := keyFor(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]entity.Entity, 0, len(order))
	for _, k := range order {
		out = append(out, m.Fold(groups[k]))
	}
	return out
}

// Fold collapses a non-empty slice of records believed to describe the
// same logical entity into one. Scalar fields use first-non-empty-wins;
// sequence fields are concatenated and deduped by natural key; name
// variants that differ from the canonical Name become additional
// alt-names rather than being discarded. The result is always re-normalized
// (entity.Entity.Normalize), per spec §4.8, so Fold([e]) == e.Normalize().
func (m *EntityMerger) Fold(records []entity.Entity) entity.Entity {
	if len(records) == 0 {
		return entity.Entity{}
	}
	if len(records) == 1 {
		return records[0].Normalize()
	}

	out := records[0]
	for _, r := range records[1:] {
		out = foldPair(out, r)
	}
	return out.Normalize()
}

func foldPair(a, b entity.Entity) entity.Entity {
	out := a
	out.ID = collections.FirstNonEmptyString(a.ID, b.ID)
	out.Name = collections.FirstNonEmptyString(a.Name, b.Name)
	if out.Type == "" || out.Type == entity.TypeUnknown {
		out.Type = b.Type
	}
	out.Source = entity.Source(collections.FirstNonEmptyString(string(a.Source), string(b.Source)))
	out.SourceID = collections.FirstNonEmptyString(a.SourceID, b.SourceID)

	altFromName := altNameIfDifferent(a.Name, b.Name)

	out.Addresses = mergeAddresses(a.Addresses, b.Addresses)
	out.SanctionsInfo = mergeSanctionsInfo(a.SanctionsInfo, b.SanctionsInfo)
	out.HistoricalInfo = mergeHistoricalInfo(a.HistoricalInfo, b.HistoricalInfo)
	out.Contact = mergeContactInfo(a.Contact, b.Contact)
	out.CryptoAddresses = collections.DedupeByKey(append(append([]entity.CryptoAddress{}, a.CryptoAddresses...), b.CryptoAddresses...),
		func(c entity.CryptoAddress) string { return strings.ToLower(c.Currency + "|" + c.Address) })
	out.Affiliations = collections.DedupeByKey(append(append([]entity.Affiliation{}, a.Affiliations...), b.Affiliations...),
		func(aff entity.Affiliation) string { return strings.ToLower(aff.EntityName + "|" + aff.Type) })

	out.Person = mergePerson(a.Person, b.Person, altFromName)
	out.Business = mergeBusiness(a.Business, b.Business, altFromName)
	out.Organization = mergeOrganization(a.Organization, b.Organization, altFromName)
	out.Aircraft = mergeAircraft(a.Aircraft, b.Aircraft, altFromName)
	out.Vessel = mergeVessel(a.Vessel, b.Vessel, altFromName)

	return out
}

// altNameIfDifferent returns both a and b as would-be alt-names when they
// differ after normalization, and nil otherwise; used so a name variant
// lost in the scalar first-non-empty-wins fold is still preserved as an
// alias (the winning name is added alongside it).
func altNameIfDifferent(a, b string) []string {
	if a == "" || b == "" || a == b {
		return nil
	}
	if normalize.Normalize(a, normalize.Options{}) == normalize.Normalize(b, normalize.Options{}) {
		return nil
	}
	return []string{a, b}
}

// mergeAddresses dedupes on (Line1, Line2) rather than the full record:
// two addresses sharing a street line but differing on city/state/postal
// (e.g. contributed by two source records with partial data) are the same
// physical address, so their other fields are filled in field-wise under
// the first-non-empty rule instead of both surviving as separate entries.
func mergeAddresses(a, b []entity.Address) []entity.Address {
	addrKey := func(addr entity.Address) string {
		return strings.ToLower(addr.Line1) + "|" + strings.ToLower(addr.Line2)
	}

	var out []entity.Address
	index := make(map[string]int)
	for _, addr := range append(append([]entity.Address{}, a...), b...) {
		k := addrKey(addr)
		if i, ok := index[k]; ok {
			out[i] = fillAddressBlanks(out[i], addr)
			continue
		}
		index[k] = len(out)
		out = append(out, addr)
	}
	return out
}

func fillAddressBlanks(a, b entity.Address) entity.Address {
	return entity.Address{
		Line1:      collections.FirstNonEmptyString(a.Line1, b.Line1),
		Line2:      collections.FirstNonEmptyString(a.Line2, b.Line2),
		City:       collections.FirstNonEmptyString(a.City, b.City),
		State:      collections.FirstNonEmptyString(a.State, b.State),
		PostalCode: collections.FirstNonEmptyString(a.PostalCode, b.PostalCode),
		Country:    collections.FirstNonEmptyString(a.Country, b.Country),
	}
}

func mergeSanctionsInfo(a, b entity.SanctionsInfo) entity.SanctionsInfo {
	return entity.SanctionsInfo{
		Programs:    collections.DedupeStrings(append(append([]string{}, a.Programs...), b.Programs...)),
		Secondary:   a.Secondary || b.Secondary,
		Description: collections.FirstNonEmptyString(a.Description, b.Description),
	}
}

func mergeHistoricalInfo(a, b []entity.HistoricalInfo) []entity.HistoricalInfo {
	combined := append(append([]entity.HistoricalInfo{}, a...), b...)
	return collections.DedupeByKey(combined, func(h entity.HistoricalInfo) string {
		return strings.ToLower(h.Type + "|" + h.Value)
	})
}

func mergeContactInfo(a, b entity.ContactInfo) entity.ContactInfo {
	return entity.ContactInfo{
		EmailAddresses: collections.DedupeStrings(append(append([]string{}, a.EmailAddresses...), b.EmailAddresses...)),
		PhoneNumbers:   collections.DedupeStrings(append(append([]string{}, a.PhoneNumbers...), b.PhoneNumbers...)),
		FaxNumbers:     collections.DedupeStrings(append(append([]string{}, a.FaxNumbers...), b.FaxNumbers...)),
		Websites:       collections.DedupeStrings(append(append([]string{}, a.Websites...), b.Websites...)),
	}
}

func mergeGovernmentIDs(a, b []entity.GovernmentID) []entity.GovernmentID {
	combined := append(append([]entity.GovernmentID{}, a...), b...)
	return collections.DedupeByKey(combined, func(g entity.GovernmentID) string {
		return strings.ToLower(string(g.Type) + "|" + g.Country + "|" + g.Identifier)
	})
}

func mergePerson(a, b *entity.Person, altFromName []string) *entity.Person {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	out.AltNames = collections.DedupeStrings(append(append(append([]string{}, a.AltNames...), b.AltNames...), altFromName...))
	out.Gender = collections.FirstNonEmptyString(a.Gender, b.Gender)
	if a.DOB == nil {
		out.DOB = b.DOB
	}
	if a.Deceased == nil {
		out.Deceased = b.Deceased
	}
	out.BirthPlace = collections.FirstNonEmptyString(a.BirthPlace, b.BirthPlace)
	out.Titles = collections.DedupeStrings(append(append([]string{}, a.Titles...), b.Titles...))
	out.Remarks = collections.DedupeStrings(append(append([]string{}, a.Remarks...), b.Remarks...))
	out.GovernmentIDs = mergeGovernmentIDs(a.GovernmentIDs, b.GovernmentIDs)
	return &out
}

func mergeBusiness(a, b *entity.Business, altFromName []string) *entity.Business {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	out.AltNames = collections.DedupeStrings(append(append(append([]string{}, a.AltNames...), b.AltNames...), altFromName...))
	if a.Incorporated == nil {
		out.Incorporated = b.Incorporated
	}
	if a.Dissolved == nil {
		out.Dissolved = b.Dissolved
	}
	out.GovernmentIDs = mergeGovernmentIDs(a.GovernmentIDs, b.GovernmentIDs)
	return &out
}

func mergeOrganization(a, b *entity.Organization, altFromName []string) *entity.Organization {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	out.AltNames = collections.DedupeStrings(append(append(append([]string{}, a.AltNames...), b.AltNames...), altFromName...))
	if a.Incorporated == nil {
		out.Incorporated = b.Incorporated
	}
	if a.Dissolved == nil {
		out.Dissolved = b.Dissolved
	}
	out.GovernmentIDs = mergeGovernmentIDs(a.GovernmentIDs, b.GovernmentIDs)
	return &out
}

func mergeAircraft(a, b *entity.Aircraft, altFromName []string) *entity.Aircraft {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	out.AltNames = collections.DedupeStrings(append(append(append([]string{}, a.AltNames...), b.AltNames...), altFromName...))
	out.TailNumber = collections.FirstNonEmptyString(a.TailNumber, b.TailNumber)
	out.Model = collections.FirstNonEmptyString(a.Model, b.Model)
	out.Manufacturer = collections.FirstNonEmptyString(a.Manufacturer, b.Manufacturer)
	out.Operator = collections.FirstNonEmptyString(a.Operator, b.Operator)
	if a.Built == nil {
		out.Built = b.Built
	}
	if a.Destroyed == nil {
		out.Destroyed = b.Destroyed
	}
	return &out
}

func mergeVessel(a, b *entity.Vessel, altFromName []string) *entity.Vessel {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	out.AltNames = collections.DedupeStrings(append(append(append([]string{}, a.AltNames...), b.AltNames...), altFromName...))
	out.IMONumber = collections.FirstNonEmptyString(a.IMONumber, b.IMONumber)
	out.MMSI = collections.FirstNonEmptyString(a.MMSI, b.MMSI)
	out.CallSign = collections.FirstNonEmptyString(a.CallSign, b.CallSign)
	out.Flag = collections.FirstNonEmptyString(a.Flag, b.Flag)
	if out.Tonnage == 0 {
		out.Tonnage = b.Tonnage
	}
	out.Owner = collections.FirstNonEmptyString(a.Owner, b.Owner)
	return &out
}
