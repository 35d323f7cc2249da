// Package topology aggregates expanded records into the nested
// facility/site/group structure and the three downtime buckets, and
// produces the two final ordered documents.
package topology

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gridfabric/topoxml/api"
)

type site struct {
	id     int
	groups map[string]*api.ResourceGroup
}

type facility struct {
	id    int
	sites map[string]*site
}

// Store accumulates one run's output. The evaluation instant for downtime
// classification is captured once at construction so every downtime in a
// run is classified against the same point in time.
type Store struct {
	now        time.Time
	log        *zap.Logger
	facilities map[string]*facility

	past    []*api.Downtime
	current []*api.Downtime
	future  []*api.Downtime
}

func NewStore(now time.Time, log *zap.Logger) *Store {
	return &Store{
		now:        now,
		log:        log,
		facilities: make(map[string]*facility),
	}
}

// AddFacility registers a facility; repeat calls keep existing sites.
func (s *Store) AddFacility(name string, id int) {
	f, ok := s.facilities[name]
	if !ok {
		f = &facility{sites: make(map[string]*site)}
		s.facilities[name] = f
	}
	f.id = id
}

// AddSite registers a site under a facility; repeat calls keep existing
// groups.
func (s *Store) AddSite(facilityName, name string, id int) {
	f, ok := s.facilities[facilityName]
	if !ok {
		f = &facility{sites: make(map[string]*site)}
		s.facilities[facilityName] = f
	}
	st, ok := f.sites[name]
	if !ok {
		st = &site{groups: make(map[string]*api.ResourceGroup)}
		f.sites[name] = st
	}
	st.id = id
}

// Facility returns the registered ID for a facility name.
func (s *Store) Facility(name string) (int, bool) {
	f, ok := s.facilities[name]
	if !ok {
		return 0, false
	}
	return f.id, true
}

// Site returns the registered ID for a site name within a facility.
func (s *Store) Site(facilityName, name string) (int, bool) {
	f, ok := s.facilities[facilityName]
	if !ok {
		return 0, false
	}
	st, ok := f.sites[name]
	if !ok {
		return 0, false
	}
	return st.id, true
}

// AddResourceGroup inserts an expanded group. Keys derive from unique file
// paths, so a repeated key is a walk bug; the last write wins but is
// reported.
func (s *Store) AddResourceGroup(facilityName, siteName, name string, rg *api.ResourceGroup) error {
	f, ok := s.facilities[facilityName]
	if !ok {
		return fmt.Errorf("facility %q not registered", facilityName)
	}
	st, ok := f.sites[siteName]
	if !ok {
		return fmt.Errorf("site %q not registered under facility %q", siteName, facilityName)
	}
	if _, exists := st.groups[name]; exists {
		s.log.Warn("duplicate resource group key; overwriting",
			zap.String("facility", facilityName),
			zap.String("site", siteName),
			zap.String("group", name))
	}
	st.groups[name] = rg
	return nil
}

// AddDowntime classifies a downtime into one of the three buckets. A nil
// downtime is the discard signal from expansion and is ignored.
func (s *Store) AddDowntime(dt *api.Downtime) error {
	if dt == nil {
		return nil
	}
	start, err := ParseTime(dt.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseTime(dt.EndTime)
	if err != nil {
		return err
	}
	switch Classify(start, end, s.now) {
	case Past:
		s.past = append(s.past, dt)
	case Future:
		s.future = append(s.future, dt)
	default:
		s.current = append(s.current, dt)
	}
	return nil
}

// ResourceSummary flattens the nested structure into a single group list
// sorted case-insensitively by group name, wrapped with the schema
// attributes the consumers require.
func (s *Store) ResourceSummary() *api.ResourceSummary {
	var groups []*api.ResourceGroup
	for _, f := range s.facilities {
		for _, st := range f.sites {
			for _, rg := range st.groups {
				groups = append(groups, rg)
			}
		}
	}
	slices.SortStableFunc(groups, func(a, b *api.ResourceGroup) int {
		return strings.Compare(strings.ToLower(a.GroupName), strings.ToLower(b.GroupName))
	})
	return &api.ResourceSummary{
		XSI:            api.XSINamespace,
		SchemaLocation: api.SummarySchemaLocation,
		ResourceGroups: groups,
	}
}

// Downtimes emits the three buckets in fixed past/current/future order.
// Within a bucket, entries stay in discovery order.
func (s *Store) Downtimes() *api.Downtimes {
	return &api.Downtimes{
		SchemaLocation: api.DowntimeSchemaLocation,
		XSI:            api.XSINamespace,
		Past:           api.DowntimeList{Downtime: s.past},
		Current:        api.DowntimeList{Downtime: s.current},
		Future:         api.DowntimeList{Downtime: s.future},
	}
}
