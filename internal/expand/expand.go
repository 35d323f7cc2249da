// Package expand holds the pure transformation rules that turn raw,
// partially-specified records into fully-populated output records: default
// injection, cross-reference resolution against the lookup tables, VO
// share normalization, and assembly in schema order.
package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridfabric/topoxml/api"
	"github.com/gridfabric/topoxml/internal/record"
)

const otherVO = "(Other)"

// Services resolves each service's ID through the lookup table. A name
// missing from the table is fatal to the enclosing resource.
func Services(raw []record.Service, serviceIDs record.Lookup) ([]*api.Service, error) {
	services := make([]*api.Service, 0, len(raw))
	for _, svc := range raw {
		id, ok := serviceIDs[svc.Name]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: "service", Name: svc.Name}
		}
		services = append(services, &api.Service{
			ID:          id,
			Name:        svc.Name,
			Description: svc.Description,
			Details:     svc.Details,
		})
	}
	return services, nil
}

// VOOwnership normalizes the ownership shares: when explicit percentages
// total less than 100, a synthetic (Other) share covers the remainder so
// the result always sums to exactly 100. The chart URL encodes the padded
// share list.
func VOOwnership(shares []record.VOShare) api.VOOwnership {
	total := 0.0
	for _, s := range shares {
		total += s.Percent
	}
	padded := make([]record.VOShare, len(shares), len(shares)+1)
	copy(padded, shares)
	if total < 100 {
		padded = append(padded, record.VOShare{VO: otherVO, Percent: 100 - total})
	}
	ownership := make([]api.Ownership, len(padded))
	for i, s := range padded {
		ownership[i] = api.Ownership{VO: s.VO, Percent: s.Percent}
	}
	return api.VOOwnership{Ownership: ownership, ChartURL: chartURL(padded)}
}

// chartEscaper covers the characters that would break the query string
// while leaving ':' ',' '(' ')' '|' readable, so the chd series stays
// greppable in the output document.
var chartEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	"=", "%3D",
	"+", "%2B",
	"#", "%23",
	" ", "+",
)

func chartURL(shares []record.VOShare) string {
	chd := make([]string, 0, len(shares))
	chl := make([]string, 0, len(shares))
	for _, s := range shares {
		percent := strconv.FormatFloat(s.Percent, 'f', -1, 64)
		name := s.VO
		if name == otherVO {
			name = "Other"
		}
		chd = append(chd, percent)
		chl = append(chl, fmt.Sprintf("%s(%s%%)", percent, name))
	}
	query := "chco=00cc00&cht=p3" +
		"&chd=" + chartEscaper.Replace("t:"+strings.Join(chd, ",")) +
		"&chs=280x65" +
		"&chl=" + chartEscaper.Replace(strings.Join(chl, "|"))
	return "http://chart.apis.google.com/chart?" + query
}

// ContactLists regroups contacts by type, each entry ordered
// {ContactRank, Name}.
func ContactLists(raw []record.ContactList) api.ContactLists {
	lists := make([]*api.ContactList, 0, len(raw))
	for _, cl := range raw {
		contacts := make([]api.Contact, 0, len(cl.Contacts))
		for _, c := range cl.Contacts {
			contacts = append(contacts, api.Contact{ContactRank: c.Rank, Name: c.Name})
		}
		lists = append(lists, &api.ContactList{
			ContactType: cl.Type,
			Contacts:    api.Contacts{Contact: contacts},
		})
	}
	return api.ContactLists{ContactList: lists}
}

// WLCGInformation applies the allow-list: known fields pass through,
// defaulted fields (AccountingName, InteropBDII, LDAPURL, TapeCapacity)
// appear even when absent, everything else is dropped.
func WLCGInformation(raw *record.WLCG) *api.WLCGFields {
	out := &api.WLCGFields{}
	if raw.InteropBDII != nil {
		out.InteropBDII = *raw.InteropBDII
	}
	if raw.LDAPURL != nil {
		out.LDAPURL = *raw.LDAPURL
	}
	out.InteropMonitoring = raw.InteropMonitoring
	out.InteropAccounting = raw.InteropAccounting
	if raw.AccountingName != nil {
		out.AccountingName = *raw.AccountingName
	}
	out.KSI2KMin = raw.KSI2KMin
	out.KSI2KMax = raw.KSI2KMax
	out.StorageCapacityMin = raw.StorageCapacityMin
	out.StorageCapacityMax = raw.StorageCapacityMax
	out.HEPSPEC = raw.HEPSPEC
	out.APELNormalFactor = raw.APELNormalFactor
	if raw.TapeCapacity != nil {
		out.TapeCapacity = *raw.TapeCapacity
	}
	return out
}

// Resource expands a single raw resource: sub-records are expanded, the
// mapping key becomes the Name field, and defaults fill the optional
// blocks. The output field order is fixed by the api.Resource layout.
func Resource(name string, raw *record.Resource, serviceIDs record.Lookup) (*api.Resource, error) {
	res := &api.Resource{
		ID:          raw.ID,
		Name:        name,
		Active:      raw.Active,
		Disable:     raw.Disable,
		Description: raw.Description,
		FQDN:        raw.FQDN,
		FQDNAliases: api.FQDNAliases{FQDNAlias: raw.FQDNAliases},
	}
	if len(raw.Services) > 0 {
		services, err := Services(raw.Services, serviceIDs)
		if err != nil {
			return nil, err
		}
		res.Services = api.Services{Service: services}
	}
	if raw.HasVOOwnership {
		res.VOOwnership = VOOwnership(raw.VOOwnership)
	}
	if len(raw.ContactLists) > 0 {
		res.ContactLists = ContactLists(raw.ContactLists)
	}
	switch {
	case raw.WLCGInformation != nil:
		res.WLCGInformation = api.WLCGInformation{Info: WLCGInformation(raw.WLCGInformation)}
	case raw.WLCGLiteral != nil:
		res.WLCGInformation = api.WLCGInformation{Literal: *raw.WLCGLiteral}
	}
	return res, nil
}
