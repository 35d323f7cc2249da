package api

import "encoding/xml"

// Downtimes is the root of the rgdowntime document. The three buckets are
// always present, in this order, even when empty.
type Downtimes struct {
	XMLName        xml.Name     `xml:"Downtimes"`
	XSI            string       `xml:"xmlns:xsi,attr"`
	SchemaLocation string       `xml:"xsi:schemaLocation,attr"`
	Past           DowntimeList `xml:"PastDowntimes"`
	Current        DowntimeList `xml:"CurrentDowntimes"`
	Future         DowntimeList `xml:"FutureDowntimes"`
}

type DowntimeList struct {
	Downtime []*Downtime `xml:"Downtime"`
}

// Downtime is one maintenance window with its cross-references resolved
// against the owning group's expanded resource list.
type Downtime struct {
	ID            int                   `xml:"ID"`
	ResourceID    int                   `xml:"ResourceID"`
	ResourceGroup DowntimeResourceGroup `xml:"ResourceGroup"`
	ResourceName  string                `xml:"ResourceName"`
	ResourceFQDN  string                `xml:"ResourceFQDN"`
	StartTime     string                `xml:"StartTime"`
	EndTime       string                `xml:"EndTime"`
	Class         string                `xml:"Class"`
	Severity      string                `xml:"Severity"`
	CreatedTime   string                `xml:"CreatedTime"`
	UpdateTime    string                `xml:"UpdateTime"`
	Services      DowntimeServices      `xml:"Services"`
	Description   string                `xml:"Description"`
}

type DowntimeResourceGroup struct {
	GroupName string `xml:"GroupName"`
	GroupID   int    `xml:"GroupID"`
}

type DowntimeServices struct {
	Service []DowntimeService `xml:"Service"`
}

type DowntimeService struct {
	ID          int    `xml:"ID"`
	Name        string `xml:"Name"`
	Description string `xml:"Description"`
}
