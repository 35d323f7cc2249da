package api

import "encoding/xml"

// Schema locations stamped onto the root elements of the two output
// documents. Consumers validate against these externally; topoxml itself
// only guarantees element ordering.
const (
	SummarySchemaLocation  = "https://my.opensciencegrid.org/schema/rgsummary.xsd"
	DowntimeSchemaLocation = "https://my.opensciencegrid.org/schema/rgdowntime.xsd"
	XSINamespace           = "http://www.w3.org/2001/XMLSchema-instance"
)

// Placeholder values injected when a resource omits an optional block.
const (
	ServicesPlaceholder = "no applicable service exists"
	InfoPlaceholder     = "(Information not available)"
	NotAvailable        = "Not Available"
)

// ResourceSummary is the root of the rgsummary document.
// Struct field order throughout this package is the schema order; records
// are assembled once during expansion and never reordered afterward.
type ResourceSummary struct {
	XMLName        xml.Name         `xml:"ResourceSummary"`
	XSI            string           `xml:"xmlns:xsi,attr"`
	SchemaLocation string           `xml:"xsi:schemaLocation,attr"`
	ResourceGroups []*ResourceGroup `xml:"ResourceGroup"`
}

// NameID is a resolved cross-reference: a numeric registry ID paired with
// the human name it was resolved from.
type NameID struct {
	ID   int    `xml:"ID"`
	Name string `xml:"Name"`
}

// ResourceGroup is one expanded group record. Optional fields are pointers
// so that keys absent from the raw record stay absent from the output.
type ResourceGroup struct {
	GridType         *string   `xml:"GridType,omitempty"`
	GroupID          *int      `xml:"GroupID,omitempty"`
	GroupName        string    `xml:"GroupName"`
	Disable          *bool     `xml:"Disable,omitempty"`
	Facility         NameID    `xml:"Facility"`
	Site             NameID    `xml:"Site"`
	SupportCenter    NameID    `xml:"SupportCenter"`
	GroupDescription *string   `xml:"GroupDescription,omitempty"`
	Resources        Resources `xml:"Resources"`
}

type Resources struct {
	Resource []*Resource `xml:"Resource"`
}

type Resource struct {
	ID              *int            `xml:"ID,omitempty"`
	Name            string          `xml:"Name"`
	Active          *bool           `xml:"Active,omitempty"`
	Disable         *bool           `xml:"Disable,omitempty"`
	Services        Services        `xml:"Services"`
	Description     *string         `xml:"Description,omitempty"`
	FQDN            *string         `xml:"FQDN,omitempty"`
	FQDNAliases     FQDNAliases     `xml:"FQDNAliases"`
	VOOwnership     VOOwnership     `xml:"VOOwnership"`
	WLCGInformation WLCGInformation `xml:"WLCGInformation"`
	ContactLists    ContactLists    `xml:"ContactLists"`
}

// Services either wraps the resolved service list or renders as the
// configured placeholder text when the resource declares none.
type Services struct {
	Service []*Service
}

func (s Services) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(s.Service) == 0 {
		return e.EncodeElement(ServicesPlaceholder, start)
	}
	wrapped := struct {
		Service []*Service `xml:"Service"`
	}{s.Service}
	return e.EncodeElement(wrapped, start)
}

// Service.Details carries whatever free-form block the raw record had:
// a Details value for mappings, a plain string for scalars.
type Service struct {
	ID          int     `xml:"ID"`
	Name        string  `xml:"Name"`
	Description *string `xml:"Description,omitempty"`
	Details     any     `xml:"Details,omitempty"`
}

type FQDNAliases struct {
	FQDNAlias []string `xml:"FQDNAlias"`
}

// VOOwnership is the normalized ownership breakdown. A zero value (no
// shares, no chart) renders as the information-not-available placeholder.
type VOOwnership struct {
	Ownership []Ownership
	ChartURL  string
}

func (v VOOwnership) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(v.Ownership) == 0 && v.ChartURL == "" {
		return e.EncodeElement(InfoPlaceholder, start)
	}
	wrapped := struct {
		Ownership []Ownership `xml:"Ownership"`
		ChartURL  string      `xml:"ChartURL"`
	}{v.Ownership, v.ChartURL}
	return e.EncodeElement(wrapped, start)
}

type Ownership struct {
	VO      string  `xml:"VO"`
	Percent float64 `xml:"Percent"`
}

// WLCGInformation carries the allow-listed interop fields. Info is nil when
// the raw record had no WLCG block, in which case the placeholder (or the
// literal scalar the record carried instead of a block) is rendered.
type WLCGInformation struct {
	Info    *WLCGFields
	Literal string
}

func (w WLCGInformation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if w.Info != nil {
		return e.EncodeElement(*w.Info, start)
	}
	if w.Literal != "" {
		return e.EncodeElement(w.Literal, start)
	}
	return e.EncodeElement(InfoPlaceholder, start)
}

// WLCGFields is the fixed allow-list. Value-typed fields carry injected
// defaults (false, empty, 0) and are always emitted; pointer fields are
// emitted only when present in the raw record.
type WLCGFields struct {
	InteropBDII        bool     `xml:"InteropBDII"`
	LDAPURL            string   `xml:"LDAPURL"`
	InteropMonitoring  *bool    `xml:"InteropMonitoring,omitempty"`
	InteropAccounting  *bool    `xml:"InteropAccounting,omitempty"`
	AccountingName     string   `xml:"AccountingName"`
	KSI2KMin           *int     `xml:"KSI2KMin,omitempty"`
	KSI2KMax           *int     `xml:"KSI2KMax,omitempty"`
	StorageCapacityMin *float64 `xml:"StorageCapacityMin,omitempty"`
	StorageCapacityMax *float64 `xml:"StorageCapacityMax,omitempty"`
	HEPSPEC            *float64 `xml:"HEPSPEC,omitempty"`
	APELNormalFactor   *float64 `xml:"APELNormalFactor,omitempty"`
	TapeCapacity       int      `xml:"TapeCapacity"`
}

type ContactLists struct {
	ContactList []*ContactList `xml:"ContactList"`
}

type ContactList struct {
	ContactType string   `xml:"ContactType"`
	Contacts    Contacts `xml:"Contacts"`
}

type Contacts struct {
	Contact []Contact `xml:"Contact"`
}

type Contact struct {
	ContactRank string `xml:"ContactRank"`
	Name        string `xml:"Name"`
}
