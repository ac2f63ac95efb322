// Package entity defines the value types screened by the scoring engine:
// sanctioned-list entities, their typed sub-records, and the identifiers,
// addresses, and contact details attached to them.
package entity

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Type discriminates which typed sub-record is populated on an Entity.
type Type string

const (
	TypePerson       Type = "PERSON"
	TypeBusiness     Type = "BUSINESS"
	TypeOrganization Type = "ORGANIZATION"
	TypeAircraft     Type = "AIRCRAFT"
	TypeVessel       Type = "VESSEL"
	TypeUnknown      Type = "UNKNOWN"
)

// Source identifies the sanctioned-list publisher an Entity was sourced from.
type Source string

const (
	SourceUSOFAC  Source = "US_OFAC"
	SourceUSCSL   Source = "US_CSL"
	SourceEUCSL   Source = "EU_CSL"
	SourceUKCSL   Source = "UK_CSL"
	SourceUnknown Source = "UNKNOWN"
)

// GovernmentIDType enumerates the closed set of government-issued
// identifier kinds the matcher understands.
type GovernmentIDType string

const (
	GovIDPassport      GovernmentIDType = "PASSPORT"
	GovIDSSN           GovernmentIDType = "SSN"
	GovIDTaxID         GovernmentIDType = "TAX_ID"
	GovIDCedula        GovernmentIDType = "CEDULA"
	GovIDNationalID    GovernmentIDType = "NATIONAL_ID"
	GovIDDriversLicense GovernmentIDType = "DRIVERS_LICENSE"
	GovIDRegistration  GovernmentIDType = "REGISTRATION"
	GovIDOther         GovernmentIDType = "OTHER"
)

// GovernmentID is a (type, country, identifier) triple.
type GovernmentID struct {
	Type       GovernmentIDType
	Country    string
	Identifier string
}

// Address is a postal address. Fields are compared case-insensitively.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// ContactInfo holds the sequences of contact channels attached to an Entity.
type ContactInfo struct {
	EmailAddresses []string
	PhoneNumbers   []string
	FaxNumbers     []string
	Websites       []string
}

// CryptoAddress is a (currency, address) pair.
type CryptoAddress struct {
	Currency string
	Address  string
}

// SanctionsInfo describes the sanctions program(s) an Entity is listed under.
type SanctionsInfo struct {
	Programs    []string
	Secondary   bool
	Description string
}

// HistoricalInfo is a single (type, value, date?) historical fact, e.g. a
// former name, a delisting note, or an aka record with provenance.
type HistoricalInfo struct {
	Type  string
	Value string
	Date  *time.Time
}

// Affiliation links an Entity to another named entity (e.g. a subsidiary,
// a vessel's owner, an aircraft's operator) by name and relationship type.
type Affiliation struct {
	EntityName string
	Type       string
}

// Person is the typed sub-record for Type == TypePerson.
type Person struct {
	AltNames      []string
	Gender        string
	DOB           *time.Time
	Deceased      *time.Time
	BirthPlace    string
	Titles        []string
	Remarks       []string
	GovernmentIDs []GovernmentID
}

// Business is the typed sub-record for Type == TypeBusiness.
type Business struct {
	AltNames      []string
	Incorporated  *time.Time
	Dissolved     *time.Time
	GovernmentIDs []GovernmentID
}

// Organization is the typed sub-record for Type == TypeOrganization.
type Organization struct {
	AltNames      []string
	Incorporated  *time.Time
	Dissolved     *time.Time
	GovernmentIDs []GovernmentID
}

// Aircraft is the typed sub-record for Type == TypeAircraft.
type Aircraft struct {
	AltNames     []string
	TailNumber   string
	Model        string
	Manufacturer string
	Operator     string
	Built        *time.Time
	Destroyed    *time.Time
}

// Vessel is the typed sub-record for Type == TypeVessel.
type Vessel struct {
	AltNames  []string
	IMONumber string
	MMSI      string
	CallSign  string
	Flag      string
	Tonnage   float64
	Owner     string
}

// Entity is the root value type screened by the scoring engine. Exactly one
// of Person, Business, Organization, Aircraft, or Vessel is populated,
// consistent with Type (none for TypeUnknown).
type Entity struct {
	ID       string
	Name     string
	Type     Type
	Source   Source
	SourceID string

	Person       *Person
	Business     *Business
	Organization *Organization
	Aircraft     *Aircraft
	Vessel       *Vessel

	Addresses       []Address
	SanctionsInfo   SanctionsInfo
	HistoricalInfo  []HistoricalInfo
	Contact         ContactInfo
	CryptoAddresses []CryptoAddress
	Affiliations    []Affiliation
}

// HasConsistentSubrecord reports whether the populated typed sub-record (if
// any) matches Type. A mismatch means the scorer must treat the entity as
// TypeUnknown for scoring purposes.
func (e Entity) HasConsistentSubrecord() bool {
	switch e.Type {
	case TypePerson:
		return e.Person != nil && e.Business == nil && e.Organization == nil && e.Aircraft == nil && e.Vessel == nil
	case TypeBusiness:
		return e.Business != nil && e.Person == nil && e.Organization == nil && e.Aircraft == nil && e.Vessel == nil
	case TypeOrganization:
		return e.Organization != nil && e.Person == nil && e.Business == nil && e.Aircraft == nil && e.Vessel == nil
	case TypeAircraft:
		return e.Aircraft != nil && e.Person == nil && e.Business == nil && e.Organization == nil && e.Vessel == nil
	case TypeVessel:
		return e.Vessel != nil && e.Person == nil && e.Business == nil && e.Organization == nil && e.Aircraft == nil
	case TypeUnknown:
		return e.Person == nil && e.Business == nil && e.Organization == nil && e.Aircraft == nil && e.Vessel == nil
	default:
		return false
	}
}

// EffectiveType returns Type, downgraded to TypeUnknown when the populated
// sub-record is inconsistent with the declared Type.
func (e Entity) EffectiveType() Type {
	if !e.HasConsistentSubrecord() {
		return TypeUnknown
	}
	return e.Type
}

// AltNames returns the alt-name sequence from whichever typed sub-record is
// populated, or nil if none is (or the entity is TypeUnknown/Aircraft has
// none populated, etc).
func (e Entity) AltNames() []string {
	switch e.EffectiveType() {
	case TypePerson:
		return e.Person.AltNames
	case TypeBusiness:
		return e.Business.AltNames
	case TypeOrganization:
		return e.Organization.AltNames
	case TypeAircraft:
		return e.Aircraft.AltNames
	case TypeVessel:
		return e.Vessel.AltNames
	default:
		return nil
	}
}

// GovernmentIDs returns the government-ID sequence from whichever typed
// sub-record carries one, or nil.
func (e Entity) GovernmentIDs() []GovernmentID {
	switch e.EffectiveType() {
	case TypePerson:
		return e.Person.GovernmentIDs
	case TypeBusiness:
		return e.Business.GovernmentIDs
	case TypeOrganization:
		return e.Organization.GovernmentIDs
	default:
		return nil
	}
}

// Dates returns the comparable date fields present on the typed sub-record,
// tagged by DateComparer field name ("dob", "deceased", "built",
// "incorporated").
func (e Entity) Dates() map[string]*time.Time {
	out := make(map[string]*time.Time, 2)
	switch e.EffectiveType() {
	case TypePerson:
		out["dob"] = e.Person.DOB
		out["deceased"] = e.Person.Deceased
	case TypeBusiness:
		out["incorporated"] = e.Business.Incorporated
		out["deceased"] = e.Business.Dissolved
	case TypeOrganization:
		out["incorporated"] = e.Organization.Incorporated
		out["deceased"] = e.Organization.Dissolved
	case TypeAircraft:
		out["built"] = e.Aircraft.Built
		out["deceased"] = e.Aircraft.Destroyed
	}
	return out
}

// normalizeField trims surrounding whitespace and recomposes s to NFC, the
// Unicode form every entity string field is assumed to carry downstream.
// It performs no case-folding or punctuation stripping — that is the
// comparator's job (pkg/normalize); this is a structural canonicalization
// applied once at the data-model boundary, not a comparison step.
func normalizeField(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = normalizeField(s)
	}
	return out
}

// Normalize returns a copy of e with every string field NFC-recomposed and
// trimmed. It does not mutate e, does not touch dates or the Type/Source
// discriminators, and is idempotent: Normalize(Normalize(e)) == Normalize(e).
func (e Entity) Normalize() Entity {
	out := e
	out.ID = normalizeField(e.ID)
	out.Name = normalizeField(e.Name)
	out.SourceID = normalizeField(e.SourceID)

	out.Addresses = make([]Address, len(e.Addresses))
	for i, a := range e.Addresses {
		out.Addresses[i] = Address{
			Line1:      normalizeField(a.Line1),
			Line2:      normalizeField(a.Line2),
			City:       normalizeField(a.City),
			State:      normalizeField(a.State),
			PostalCode: normalizeField(a.PostalCode),
			Country:    normalizeField(a.Country),
		}
	}

	out.SanctionsInfo = SanctionsInfo{
		Programs:    normalizeStrings(e.SanctionsInfo.Programs),
		Secondary:   e.SanctionsInfo.Secondary,
		Description: normalizeField(e.SanctionsInfo.Description),
	}

	out.HistoricalInfo = make([]HistoricalInfo, len(e.HistoricalInfo))
	for i, h := range e.HistoricalInfo {
		out.HistoricalInfo[i] = HistoricalInfo{
			Type:  normalizeField(h.Type),
			Value: normalizeField(h.Value),
			Date:  h.Date,
		}
	}

	out.Contact = ContactInfo{
		EmailAddresses: normalizeStrings(e.Contact.EmailAddresses),
		PhoneNumbers:   normalizeStrings(e.Contact.PhoneNumbers),
		FaxNumbers:     normalizeStrings(e.Contact.FaxNumbers),
		Websites:       normalizeStrings(e.Contact.Websites),
	}

	out.CryptoAddresses = make([]CryptoAddress, len(e.CryptoAddresses))
	for i, c := range e.CryptoAddresses {
		out.CryptoAddresses[i] = CryptoAddress{Currency: normalizeField(c.Currency), Address: normalizeField(c.Address)}
	}

	out.Affiliations = make([]Affiliation, len(e.Affiliations))
	for i, aff := range e.Affiliations {
		out.Affiliations[i] = Affiliation{EntityName: normalizeField(aff.EntityName), Type: normalizeField(aff.Type)}
	}

	out.Person = normalizePerson(e.Person)
	out.Business = normalizeBusiness(e.Business)
	out.Organization = normalizeOrganization(e.Organization)
	out.Aircraft = normalizeAircraft(e.Aircraft)
	out.Vessel = normalizeVessel(e.Vessel)

	return out
}

func normalizeGovernmentIDs(ids []GovernmentID) []GovernmentID {
	out := make([]GovernmentID, len(ids))
	for i, g := range ids {
		out[i] = GovernmentID{Type: g.Type, Country: normalizeField(g.Country), Identifier: normalizeField(g.Identifier)}
	}
	return out
}

func normalizePerson(p *Person) *Person {
	if p == nil {
		return nil
	}
	out := *p
	out.AltNames = normalizeStrings(p.AltNames)
	out.Gender = normalizeField(p.Gender)
	out.BirthPlace = normalizeField(p.BirthPlace)
	out.Titles = normalizeStrings(p.Titles)
	out.Remarks = normalizeStrings(p.Remarks)
	out.GovernmentIDs = normalizeGovernmentIDs(p.GovernmentIDs)
	return &out
}

func normalizeBusiness(b *Business) *Business {
	if b == nil {
		return nil
	}
	out := *b
	out.AltNames = normalizeStrings(b.AltNames)
	out.GovernmentIDs = normalizeGovernmentIDs(b.GovernmentIDs)
	return &out
}

func normalizeOrganization(o *Organization) *Organization {
	if o == nil {
		return nil
	}
	out := *o
	out.AltNames = normalizeStrings(o.AltNames)
	out.GovernmentIDs = normalizeGovernmentIDs(o.GovernmentIDs)
	return &out
}

func normalizeAircraft(ac *Aircraft) *Aircraft {
	if ac == nil {
		return nil
	}
	out := *ac
	out.AltNames = normalizeStrings(ac.AltNames)
	out.TailNumber = normalizeField(ac.TailNumber)
	out.Model = normalizeField(ac.Model)
	out.Manufacturer = normalizeField(ac.Manufacturer)
	out.Operator = normalizeField(ac.Operator)
	return &out
}

func normalizeVessel(v *Vessel) *Vessel {
	if v == nil {
		return nil
	}
	out := *v
	out.AltNames = normalizeStrings(v.AltNames)
	out.IMONumber = normalizeField(v.IMONumber)
	out.MMSI = normalizeField(v.MMSI)
	out.CallSign = normalizeField(v.CallSign)
	out.Flag = normalizeField(v.Flag)
	out.Owner = normalizeField(v.Owner)
	return &out
}
