package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfabric/topoxml/api"
)

const groupYAML = `
GroupID: 275
SupportCenter: Self Supported
GroupDescription: Compute cluster
Resources:
  CE1:
    ID: 42
    Active: true
    FQDN: ce1.example.net
    FQDNAliases:
      - alias.example.net
    Services:
      SRMv2:
        Description: storage
        Details:
          uri_override: srm.example.net:8443
          hidden: false
      CE:
        Description: compute
    VOOwnership:
      glow: 60
      cms: 30
    ContactLists:
      Admin Contact:
        Primary: F. Last
  CE2:
    Disable: true
    WLCGInformation: (no WLCG participation)
`

func TestParseResourceGroup(t *testing.T) {
	g, err := ParseResourceGroup([]byte(groupYAML))
	require.NoError(t, err)

	require.NotNil(t, g.GroupID)
	assert.Equal(t, 275, *g.GroupID)
	assert.Equal(t, "Self Supported", g.SupportCenter)
	require.NotNil(t, g.GroupDescription)

	require.Len(t, g.Resources, 2)
	ce1 := g.Resources[0]
	assert.Equal(t, "CE1", ce1.Name)
	require.NotNil(t, ce1.Resource.ID)
	assert.Equal(t, 42, *ce1.Resource.ID)
	assert.Equal(t, []string{"alias.example.net"}, ce1.Resource.FQDNAliases)

	// Document order survives decoding: SRMv2 was written before CE.
	require.Len(t, ce1.Resource.Services, 2)
	assert.Equal(t, "SRMv2", ce1.Resource.Services[0].Name)
	details, ok := ce1.Resource.Services[0].Details.(api.Details)
	require.True(t, ok)
	assert.Equal(t, api.DetailField{Name: "uri_override", Value: "srm.example.net:8443"}, details.Fields[0])
	assert.Equal(t, api.DetailField{Name: "hidden", Value: "false"}, details.Fields[1])
	assert.Equal(t, "CE", ce1.Resource.Services[1].Name)

	assert.True(t, ce1.Resource.HasVOOwnership)
	require.Len(t, ce1.Resource.VOOwnership, 2)
	assert.Equal(t, VOShare{VO: "glow", Percent: 60}, ce1.Resource.VOOwnership[0])
	assert.Equal(t, VOShare{VO: "cms", Percent: 30}, ce1.Resource.VOOwnership[1])

	require.Len(t, ce1.Resource.ContactLists, 1)
	assert.Equal(t, "Admin Contact", ce1.Resource.ContactLists[0].Type)
	assert.Equal(t, Contact{Rank: "Primary", Name: "F. Last"}, ce1.Resource.ContactLists[0].Contacts[0])

	ce2 := g.Resources[1]
	require.NotNil(t, ce2.Resource.Disable)
	assert.True(t, *ce2.Resource.Disable)
	require.NotNil(t, ce2.Resource.WLCGLiteral)
	assert.Equal(t, "(no WLCG participation)", *ce2.Resource.WLCGLiteral)
	assert.Nil(t, ce2.Resource.WLCGInformation)
}

func TestParseResourceGroup_NullServicesTreatedAsAbsent(t *testing.T) {
	g, err := ParseResourceGroup([]byte("Resources:\n  R1:\n    Services:\n"))
	require.NoError(t, err)
	require.Len(t, g.Resources, 1)
	assert.Empty(t, g.Resources[0].Resource.Services)
}

func TestParseResourceGroup_DuplicateResourceKey(t *testing.T) {
	// Resource names key the group's mapping, so a repeated key is an
	// authoring error, not a second resource.
	_, err := ParseResourceGroup([]byte("Resources:\n  CE1:\n    ID: 1\n  CE1:\n    ID: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CE1"`)
}

func TestParseResourceGroup_WLCGMapping(t *testing.T) {
	g, err := ParseResourceGroup([]byte(`
Resources:
  R1:
    WLCGInformation:
      InteropBDII: true
      HEPSPEC: 8000
      UnknownField: keepaway
`))
	require.NoError(t, err)
	w := g.Resources[0].Resource.WLCGInformation
	require.NotNil(t, w)
	require.NotNil(t, w.InteropBDII)
	assert.True(t, *w.InteropBDII)
	require.NotNil(t, w.HEPSPEC)
	assert.Equal(t, 8000.0, *w.HEPSPEC)
	assert.Nil(t, w.TapeCapacity)
}

func TestParseDowntimes_List(t *testing.T) {
	data := []byte(`
- ID: 1
  ResourceName: CE1
  StartTime: 2021-01-01 00:00
  EndTime: 2021-01-02 00:00
  Services:
    - CE
- ID: 2
  ResourceName: CE2
  Services: [SRMv2]
`)
	got, err := ParseDowntimes(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "CE1", got[0].ResourceName)
	assert.Equal(t, "2021-01-01 00:00", got[0].StartTime)
	assert.Equal(t, []string{"SRMv2"}, got[1].Services)
}

func TestParseDowntimes_SingleMapping(t *testing.T) {
	got, err := ParseDowntimes([]byte("ID: 7\nResourceName: CE1\nServices: [CE]\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].ID)
}

func TestParseLookup(t *testing.T) {
	table, err := ParseLookup([]byte("CE: 1\nSRMv2: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, Lookup{"CE": 1, "SRMv2": 3}, table)
}

func TestParseID(t *testing.T) {
	id, err := ParseID([]byte("ID: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, id)
}
