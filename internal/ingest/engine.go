// Package ingest drives one conversion run: it walks the input tree,
// loads the lookup tables, expands every record in dependency order and
// feeds the topology store.
package ingest

import (
	"fmt"
	"slices"
	"strings"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/gridfabric/topoxml/api"
	"github.com/gridfabric/topoxml/internal/expand"
	"github.com/gridfabric/topoxml/internal/record"
	"github.com/gridfabric/topoxml/internal/topology"
)

const (
	facilityMarker = "FACILITY.yaml"
	siteMarker     = "SITE.yaml"
	downtimeSuffix = "_downtime.yaml"
	yamlSuffix     = ".yaml"
)

// Engine walks a billy filesystem rooted at the input directory. Tests
// drive it against in-memory trees; production uses osfs.
type Engine struct {
	fs  billy.Filesystem
	log *zap.Logger
}

func NewEngine(fs billy.Filesystem, log *zap.Logger) *Engine {
	return &Engine{fs: fs, log: log}
}

// Run performs a full conversion pass and returns the two output
// documents. The run is strictly sequential; the first structural failure
// aborts it, while reference failures local to a downtime are logged and
// recovered inside expansion.
func (e *Engine) Run() (*api.ResourceSummary, *api.Downtimes, error) {
	serviceIDs, err := e.loadLookup("services.yaml")
	if err != nil {
		return nil, nil, err
	}
	supportCenters, err := e.loadLookup("support-centers.yaml")
	if err != nil {
		return nil, nil, err
	}

	store := topology.NewStore(time.Now().UTC(), e.log)

	facilities, err := e.subdirs(".")
	if err != nil {
		return nil, nil, err
	}
	for _, facilityName := range facilities {
		markerPath := e.fs.Join(facilityName, facilityMarker)
		if _, err := e.fs.Stat(markerPath); err != nil {
			continue
		}
		id, err := e.loadID(markerPath)
		if err != nil {
			return nil, nil, err
		}
		store.AddFacility(facilityName, id)
	}

	for _, facilityName := range facilities {
		sites, err := e.subdirs(facilityName)
		if err != nil {
			return nil, nil, err
		}
		for _, siteName := range sites {
			markerPath := e.fs.Join(facilityName, siteName, siteMarker)
			if _, err := e.fs.Stat(markerPath); err != nil {
				continue
			}
			id, err := e.loadID(markerPath)
			if err != nil {
				return nil, nil, err
			}
			store.AddSite(facilityName, siteName, id)
		}
	}

	for _, facilityName := range facilities {
		sites, err := e.subdirs(facilityName)
		if err != nil {
			return nil, nil, err
		}
		for _, siteName := range sites {
			dir := e.fs.Join(facilityName, siteName)
			entries, err := e.fs.ReadDir(dir)
			if err != nil {
				return nil, nil, err
			}
			names := make([]string, 0, len(entries))
			for _, ent := range entries {
				name := ent.Name()
				if ent.IsDir() || !strings.HasSuffix(name, yamlSuffix) {
					continue
				}
				if name == siteMarker || strings.HasSuffix(name, downtimeSuffix) {
					continue
				}
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				if err := e.ingestGroup(store, serviceIDs, supportCenters, facilityName, siteName, name); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return store.ResourceSummary(), store.Downtimes(), nil
}

func (e *Engine) ingestGroup(store *topology.Store, serviceIDs, supportCenters record.Lookup, facilityName, siteName, fileName string) error {
	groupName := strings.TrimSuffix(fileName, yamlSuffix)
	path := e.fs.Join(facilityName, siteName, fileName)

	data, err := util.ReadFile(e.fs, path)
	if err != nil {
		return err
	}
	raw, err := record.ParseResourceGroup(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	facilityID, ok := store.Facility(facilityName)
	if !ok {
		return &expand.GroupError{Group: raw, Err: fmt.Errorf("facility %q has no %s", facilityName, facilityMarker)}
	}
	siteID, ok := store.Site(facilityName, siteName)
	if !ok {
		return &expand.GroupError{Group: raw, Err: fmt.Errorf("site %q has no %s", siteName, siteMarker)}
	}
	raw.GroupName = groupName
	raw.Facility = record.NameRef{Name: facilityName, ID: facilityID}
	raw.Site = record.NameRef{Name: siteName, ID: siteID}

	rg, err := expand.ResourceGroup(raw, serviceIDs, supportCenters)
	if err != nil {
		return err
	}
	if err := store.AddResourceGroup(facilityName, siteName, groupName, rg); err != nil {
		return err
	}
	e.log.Debug("expanded resource group",
		zap.String("facility", facilityName),
		zap.String("site", siteName),
		zap.String("group", groupName),
		zap.Int("resources", len(rg.Resources.Resource)))

	return e.ingestDowntimes(store, raw, rg, facilityName, siteName, groupName)
}

func (e *Engine) ingestDowntimes(store *topology.Store, rawGroup *record.ResourceGroup, rg *api.ResourceGroup, facilityName, siteName, groupName string) error {
	path := e.fs.Join(facilityName, siteName, groupName+downtimeSuffix)
	if _, err := e.fs.Stat(path); err != nil {
		return nil
	}
	data, err := util.ReadFile(e.fs, path)
	if err != nil {
		return err
	}
	downtimes, err := record.ParseDowntimes(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, raw := range downtimes {
		dt := expand.Downtime(raw, rg, e.log)
		if err := store.AddDowntime(dt); err != nil {
			return &expand.DowntimeError{Downtime: raw, Group: rawGroup, Err: err}
		}
	}
	return nil
}

func (e *Engine) subdirs(dir string) ([]string, error) {
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, ent := range entries {
		if ent.IsDir() {
			names = append(names, ent.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (e *Engine) loadLookup(name string) (record.Lookup, error) {
	data, err := util.ReadFile(e.fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	table, err := record.ParseLookup(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return table, nil
}

func (e *Engine) loadID(path string) (int, error) {
	data, err := util.ReadFile(e.fs, path)
	if err != nil {
		return 0, err
	}
	id, err := record.ParseID(data)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return id, nil
}
