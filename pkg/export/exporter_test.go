package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Dataset{
	Headers: []string{"day", "start_time", "subject"},
	Rows: []map[string]string{
		{"day": "MON", "start_time": "09:00:00", "subject": "Algorithms, II"},
		{"day": "TUE", "subject": "Networks"},
	},
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sample, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "day,start_time,subject\nMON,09:00:00,\"Algorithms, II\"\nTUE,,Networks\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sample, "Weekly timetable")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestRendererMetadata(t *testing.T) {
	var r Renderer = NewPDFExporter()
	assert.Equal(t, "pdf", r.Extension())
	r = NewCSVExporter()
	assert.Equal(t, "text/csv", r.ContentType())
}
