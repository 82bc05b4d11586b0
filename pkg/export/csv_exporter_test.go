package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows: []map[string]string{
			{"ID": "1", "Name": "Boiler"},
			{"ID": "2", "Name": "Filter, coarse"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\n1,Boiler\n2,\"Filter, coarse\"\n", string(content))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
