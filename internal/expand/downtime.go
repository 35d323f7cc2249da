package expand

import (
	"go.uber.org/zap"

	"github.com/gridfabric/topoxml/api"
	"github.com/gridfabric/topoxml/internal/record"
)

// Downtime resolves a raw downtime against its group's already-expanded
// resource list. Reference failures here are recoverable: an unknown
// resource discards the downtime, an unknown service discards just that
// reference, and a downtime left with no resolved services is discarded.
// Every drop is reported on the diagnostic stream; nil means "discard".
func Downtime(raw *record.Downtime, group *api.ResourceGroup, log *zap.Logger) *api.Downtime {
	var res *api.Resource
	for _, r := range group.Resources.Resource {
		if r.Name == raw.ResourceName {
			res = r
			break
		}
	}
	if res == nil {
		log.Warn("downtime references a resource the group does not have; dropping downtime",
			zap.String("resource", raw.ResourceName),
			zap.String("group", group.GroupName),
			zap.Int("downtime", raw.ID))
		return nil
	}

	var services []api.DowntimeService
	for _, want := range raw.Services {
		resolved := false
		for _, svc := range res.Services.Service {
			if svc.Name != want {
				continue
			}
			desc := ""
			if svc.Description != nil {
				desc = *svc.Description
			}
			services = append(services, api.DowntimeService{ID: svc.ID, Name: svc.Name, Description: desc})
			resolved = true
			break
		}
		if !resolved {
			log.Warn("downtime lists a service the resource does not have; dropping reference",
				zap.String("service", want),
				zap.String("resource", raw.ResourceName))
		}
	}
	if len(services) == 0 {
		log.Warn("no existing services listed for downtime; dropping downtime",
			zap.String("resource", raw.ResourceName),
			zap.Int("downtime", raw.ID))
		return nil
	}

	resourceID := 0
	if res.ID != nil {
		resourceID = *res.ID
	}
	fqdn := ""
	if res.FQDN != nil {
		fqdn = *res.FQDN
	}
	groupID := 0
	if group.GroupID != nil {
		groupID = *group.GroupID
	}

	return &api.Downtime{
		ID:            raw.ID,
		ResourceID:    resourceID,
		ResourceGroup: api.DowntimeResourceGroup{GroupName: group.GroupName, GroupID: groupID},
		ResourceName:  res.Name,
		ResourceFQDN:  fqdn,
		StartTime:     raw.StartTime,
		EndTime:       raw.EndTime,
		Class:         raw.Class,
		Severity:      raw.Severity,
		CreatedTime:   api.NotAvailable,
		UpdateTime:    api.NotAvailable,
		Services:      api.DowntimeServices{Service: services},
		Description:   raw.Description,
	}
}
