// Package record models the raw, loosely-structured YAML records that feed
// the expansion engine. Decoding goes through yaml.Node rather than plain
// maps so that document order survives: VO shares, service lists and
// contact ranks are emitted in the order the operator wrote them.
package record

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gridfabric/topoxml/api"
)

// NameRef is a facility or site reference injected by the driver before
// expansion: the directory name plus the ID read from its marker file.
type NameRef struct {
	Name string
	ID   int
}

// Resource is one raw resource record. Pointer fields distinguish
// absent-from-input (nil) from present-with-zero-value; absent optional
// blocks get defaults injected at expansion time.
type Resource struct {
	ID              *int
	Active          *bool
	Disable         *bool
	Description     *string
	FQDN            *string
	FQDNAliases     []string
	Services        []Service
	VOOwnership     []VOShare
	HasVOOwnership  bool
	ContactLists    []ContactList
	WLCGInformation *WLCG
	WLCGLiteral     *string
}

type Service struct {
	Name        string
	Description *string
	Details     any
}

type VOShare struct {
	VO      string
	Percent float64
}

type ContactList struct {
	Type     string
	Contacts []Contact
}

type Contact struct {
	Rank string
	Name string
}

// WLCG mirrors the raw WLCGInformation block. All fields are optional;
// the expansion allow-list decides which survive and which get defaults.
type WLCG struct {
	InteropBDII        *bool    `yaml:"InteropBDII"`
	LDAPURL            *string  `yaml:"LDAPURL"`
	InteropMonitoring  *bool    `yaml:"InteropMonitoring"`
	InteropAccounting  *bool    `yaml:"InteropAccounting"`
	AccountingName     *string  `yaml:"AccountingName"`
	KSI2KMin           *int     `yaml:"KSI2KMin"`
	KSI2KMax           *int     `yaml:"KSI2KMax"`
	StorageCapacityMin *float64 `yaml:"StorageCapacityMin"`
	StorageCapacityMax *float64 `yaml:"StorageCapacityMax"`
	HEPSPEC            *float64 `yaml:"HEPSPEC"`
	APELNormalFactor   *float64 `yaml:"APELNormalFactor"`
	TapeCapacity       *int     `yaml:"TapeCapacity"`
}

// NamedResource pairs a resource with its mapping key from the group file.
type NamedResource struct {
	Name     string
	Resource Resource
}

// ResourceGroup is one raw group record. GroupName, Facility and Site are
// not part of the file; the driver injects them from the directory layout
// before expansion.
type ResourceGroup struct {
	GridType         *string
	GroupID          *int
	GroupName        string
	Disable          *bool
	GroupDescription *string
	SupportCenter    string
	Facility         NameRef
	Site             NameRef
	Resources        []NamedResource
}

// Downtime is one raw maintenance record from a *_downtime.yaml file.
type Downtime struct {
	ID           int      `yaml:"ID"`
	ResourceName string   `yaml:"ResourceName"`
	StartTime    string   `yaml:"StartTime"`
	EndTime      string   `yaml:"EndTime"`
	Class        string   `yaml:"Class"`
	Severity     string   `yaml:"Severity"`
	Description  string   `yaml:"Description"`
	Services     []string `yaml:"Services"`
}

type mappingEntry struct {
	key   string
	value *yaml.Node
}

func resolve(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode {
		return n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func mappingEntries(n *yaml.Node) ([]mappingEntry, error) {
	n = resolve(n)
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = resolve(n.Content[0])
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got %s", n.Tag)
	}
	entries := make([]mappingEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var key string
		if err := n.Content[i].Decode(&key); err != nil {
			return nil, fmt.Errorf("mapping key: %w", err)
		}
		entries = append(entries, mappingEntry{key: key, value: n.Content[i+1]})
	}
	return entries, nil
}

func decodeInto[T any](n *yaml.Node, field string) (*T, error) {
	var v T
	if err := resolve(n).Decode(&v); err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	return &v, nil
}

// UnmarshalYAML decodes a raw resource, keeping sub-record order and
// recording which optional blocks were present. Keys outside the known set
// are ignored; the fixed output ordering would drop them anyway.
func (r *Resource) UnmarshalYAML(value *yaml.Node) error {
	entries, err := mappingEntries(value)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if isNull(ent.value) {
			continue
		}
		switch ent.key {
		case "ID":
			if r.ID, err = decodeInto[int](ent.value, "ID"); err != nil {
				return err
			}
		case "Active":
			if r.Active, err = decodeInto[bool](ent.value, "Active"); err != nil {
				return err
			}
		case "Disable":
			if r.Disable, err = decodeInto[bool](ent.value, "Disable"); err != nil {
				return err
			}
		case "Description":
			if r.Description, err = decodeInto[string](ent.value, "Description"); err != nil {
				return err
			}
		case "FQDN":
			if r.FQDN, err = decodeInto[string](ent.value, "FQDN"); err != nil {
				return err
			}
		case "FQDNAliases":
			node := resolve(ent.value)
			if node.Kind == yaml.ScalarNode {
				// A single alias entered without list syntax.
				r.FQDNAliases = []string{node.Value}
				continue
			}
			if err := node.Decode(&r.FQDNAliases); err != nil {
				return fmt.Errorf("field FQDNAliases: %w", err)
			}
		case "Services":
			if r.Services, err = decodeServices(ent.value); err != nil {
				return err
			}
		case "VOOwnership":
			r.HasVOOwnership = true
			if r.VOOwnership, err = decodeVOShares(ent.value); err != nil {
				return err
			}
		case "ContactLists":
			if r.ContactLists, err = decodeContactLists(ent.value); err != nil {
				return err
			}
		case "WLCGInformation":
			node := resolve(ent.value)
			if node.Kind == yaml.ScalarNode {
				if r.WLCGLiteral, err = decodeInto[string](node, "WLCGInformation"); err != nil {
					return err
				}
				continue
			}
			var w WLCG
			if err := node.Decode(&w); err != nil {
				return fmt.Errorf("field WLCGInformation: %w", err)
			}
			r.WLCGInformation = &w
		}
	}
	return nil
}

func decodeServices(n *yaml.Node) ([]Service, error) {
	entries, err := mappingEntries(n)
	if err != nil {
		return nil, fmt.Errorf("field Services: %w", err)
	}
	services := make([]Service, 0, len(entries))
	for _, ent := range entries {
		svc := Service{Name: ent.key}
		if !isNull(ent.value) {
			attrs, err := mappingEntries(ent.value)
			if err != nil {
				return nil, fmt.Errorf("service %s: %w", ent.key, err)
			}
			for _, attr := range attrs {
				if isNull(attr.value) {
					continue
				}
				switch attr.key {
				case "Description":
					if svc.Description, err = decodeInto[string](attr.value, "Description"); err != nil {
						return nil, fmt.Errorf("service %s: %w", ent.key, err)
					}
				case "Details":
					details, err := detailValue(attr.value)
					if err != nil {
						return nil, fmt.Errorf("service %s: %w", ent.key, err)
					}
					svc.Details = details
				}
			}
		}
		services = append(services, svc)
	}
	return services, nil
}

func decodeVOShares(n *yaml.Node) ([]VOShare, error) {
	entries, err := mappingEntries(n)
	if err != nil {
		return nil, fmt.Errorf("field VOOwnership: %w", err)
	}
	shares := make([]VOShare, 0, len(entries))
	for _, ent := range entries {
		var percent float64
		if err := resolve(ent.value).Decode(&percent); err != nil {
			return nil, fmt.Errorf("VOOwnership %s: %w", ent.key, err)
		}
		shares = append(shares, VOShare{VO: ent.key, Percent: percent})
	}
	return shares, nil
}

func decodeContactLists(n *yaml.Node) ([]ContactList, error) {
	entries, err := mappingEntries(n)
	if err != nil {
		return nil, fmt.Errorf("field ContactLists: %w", err)
	}
	lists := make([]ContactList, 0, len(entries))
	for _, ent := range entries {
		list := ContactList{Type: ent.key}
		if !isNull(ent.value) {
			contacts, err := mappingEntries(ent.value)
			if err != nil {
				return nil, fmt.Errorf("contact list %s: %w", ent.key, err)
			}
			for _, c := range contacts {
				var name string
				if err := resolve(c.value).Decode(&name); err != nil {
					return nil, fmt.Errorf("contact list %s rank %s: %w", ent.key, c.key, err)
				}
				list.Contacts = append(list.Contacts, Contact{Rank: c.key, Name: name})
			}
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// detailValue converts an arbitrary YAML subtree into an order-preserving
// value: mappings become Details blocks keeping key order, sequences become
// repeated elements, scalars keep their source text.
func detailValue(n *yaml.Node) (any, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := detailValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		entries, err := mappingEntries(n)
		if err != nil {
			return nil, err
		}
		d := api.Details{Fields: make([]api.DetailField, 0, len(entries))}
		for _, ent := range entries {
			v, err := detailValue(ent.value)
			if err != nil {
				return nil, err
			}
			d.Fields = append(d.Fields, api.DetailField{Name: ent.key, Value: v})
		}
		return d, nil
	default:
		return "", nil
	}
}

// UnmarshalYAML decodes a raw resource group. Resources keep document
// order here; expansion sorts them by name.
func (g *ResourceGroup) UnmarshalYAML(value *yaml.Node) error {
	entries, err := mappingEntries(value)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if isNull(ent.value) {
			continue
		}
		switch ent.key {
		case "GridType":
			if g.GridType, err = decodeInto[string](ent.value, "GridType"); err != nil {
				return err
			}
		case "GroupID":
			if g.GroupID, err = decodeInto[int](ent.value, "GroupID"); err != nil {
				return err
			}
		case "Disable":
			if g.Disable, err = decodeInto[bool](ent.value, "Disable"); err != nil {
				return err
			}
		case "GroupDescription":
			if g.GroupDescription, err = decodeInto[string](ent.value, "GroupDescription"); err != nil {
				return err
			}
		case "SupportCenter":
			var sc string
			if err := resolve(ent.value).Decode(&sc); err != nil {
				return fmt.Errorf("field SupportCenter: %w", err)
			}
			g.SupportCenter = sc
		case "Resources":
			resources, err := mappingEntries(ent.value)
			if err != nil {
				return fmt.Errorf("field Resources: %w", err)
			}
			seen := make(map[string]bool, len(resources))
			for _, r := range resources {
				if seen[r.key] {
					return fmt.Errorf("resource key %q already defined", r.key)
				}
				seen[r.key] = true
				var res Resource
				if !isNull(r.value) {
					if err := resolve(r.value).Decode(&res); err != nil {
						return fmt.Errorf("resource %s: %w", r.key, err)
					}
				}
				g.Resources = append(g.Resources, NamedResource{Name: r.key, Resource: res})
			}
		}
	}
	return nil
}

// ParseResourceGroup decodes one group file.
func ParseResourceGroup(data []byte) (*ResourceGroup, error) {
	var g ResourceGroup
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseDowntimes decodes a *_downtime.yaml file, which holds either a
// single downtime mapping or a list of them.
func ParseDowntimes(data []byte) ([]*Downtime, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolve(doc.Content[0])
	switch root.Kind {
	case yaml.SequenceNode:
		var list []*Downtime
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		var single Downtime
		if err := root.Decode(&single); err != nil {
			return nil, err
		}
		return []*Downtime{&single}, nil
	default:
		return nil, fmt.Errorf("expected downtime mapping or list, got %s", root.Tag)
	}
}
