package xmlout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfabric/topoxml/api"
)

func TestWrite_SummaryDocument(t *testing.T) {
	doc := &api.ResourceSummary{
		XSI:            api.XSINamespace,
		SchemaLocation: api.SummarySchemaLocation,
		ResourceGroups: []*api.ResourceGroup{{GroupName: "alpha"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"))
	assert.Contains(t, out, `<ResourceSummary xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.Contains(t, out, `xsi:schemaLocation="`+api.SummarySchemaLocation+`"`)
	assert.Contains(t, out, "<GroupName>alpha</GroupName>")
	assert.True(t, strings.HasSuffix(out, "</ResourceSummary>\n"))
}

func TestWrite_DowntimesAlwaysEmitBuckets(t *testing.T) {
	doc := &api.Downtimes{
		SchemaLocation: api.DowntimeSchemaLocation,
		XSI:            api.XSINamespace,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()

	past := strings.Index(out, "<PastDowntimes>")
	current := strings.Index(out, "<CurrentDowntimes>")
	future := strings.Index(out, "<FutureDowntimes>")
	require.GreaterOrEqual(t, past, 0)
	assert.Greater(t, current, past)
	assert.Greater(t, future, current)
}
