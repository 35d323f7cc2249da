package expand

import (
	"fmt"

	"github.com/ohler55/ojg/pretty"

	"github.com/gridfabric/topoxml/internal/record"
)

// UnresolvedReferenceError reports a name with no entry in the relevant
// lookup table or expanded structure. Service and support-center lookups
// are fatal to the enclosing expansion; downtime-local lookups are
// recovered by the caller.
type UnresolvedReferenceError struct {
	Kind string // "service" or "support center"
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Name)
}

// GroupError aborts a whole resource group's expansion. It carries the raw
// group record, and the raw resource that failed when one did, so the
// operator sees exactly what was fed in.
type GroupError struct {
	Group    *record.ResourceGroup
	Resource *record.NamedResource
	Err      error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("expanding resource group %q: %v", e.Group.GroupName, e.Err)
}

func (e *GroupError) Unwrap() error { return e.Err }

// Detail renders the attached raw record(s) for the diagnostic stream.
func (e *GroupError) Detail() string {
	out := "resource group:\n" + pretty.SEN(e.Group)
	if e.Resource != nil {
		out += "\nresource:\n" + pretty.SEN(e.Resource)
	}
	return out
}

// DowntimeError aborts a downtime's expansion or classification. It carries
// the raw downtime and its owning group's raw record.
type DowntimeError struct {
	Downtime *record.Downtime
	Group    *record.ResourceGroup
	Err      error
}

func (e *DowntimeError) Error() string {
	return fmt.Sprintf("expanding downtime %d in group %q: %v", e.Downtime.ID, e.Group.GroupName, e.Err)
}

func (e *DowntimeError) Unwrap() error { return e.Err }

func (e *DowntimeError) Detail() string {
	return "downtime:\n" + pretty.SEN(e.Downtime) + "\nresource group:\n" + pretty.SEN(e.Group)
}
