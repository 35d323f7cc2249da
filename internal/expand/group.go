package expand

import (
	"slices"
	"strings"

	"github.com/gridfabric/topoxml/api"
	"github.com/gridfabric/topoxml/internal/record"
)

// ResourceGroup expands a raw group record. The support center name is
// resolved through its lookup table, every resource is expanded, and the
// result is sorted by resource name. Any single resource failure aborts
// the whole group with the offending raw resource attached.
func ResourceGroup(raw *record.ResourceGroup, serviceIDs, supportCenters record.Lookup) (*api.ResourceGroup, error) {
	scID, ok := supportCenters[raw.SupportCenter]
	if !ok {
		return nil, &GroupError{
			Group: raw,
			Err:   &UnresolvedReferenceError{Kind: "support center", Name: raw.SupportCenter},
		}
	}

	resources := make([]*api.Resource, 0, len(raw.Resources))
	for i := range raw.Resources {
		named := &raw.Resources[i]
		res, err := Resource(named.Name, &named.Resource, serviceIDs)
		if err != nil {
			return nil, &GroupError{Group: raw, Resource: named, Err: err}
		}
		resources = append(resources, res)
	}
	slices.SortFunc(resources, func(a, b *api.Resource) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &api.ResourceGroup{
		GridType:         raw.GridType,
		GroupID:          raw.GroupID,
		GroupName:        raw.GroupName,
		Disable:          raw.Disable,
		Facility:         api.NameID{ID: raw.Facility.ID, Name: raw.Facility.Name},
		Site:             api.NameID{ID: raw.Site.ID, Name: raw.Site.Name},
		SupportCenter:    api.NameID{ID: scID, Name: raw.SupportCenter},
		GroupDescription: raw.GroupDescription,
		Resources:        api.Resources{Resource: resources},
	}, nil
}
