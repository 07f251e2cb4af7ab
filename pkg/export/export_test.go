package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Sınıf", "Saat"},
		Rows: []map[string]string{
			{"Sınıf": "5A", "Saat": "46"},
			{"Sınıf": "5B"},
		},
		Notes: []string{"Politika: weekly=45"},
	}
}

func TestCSVExporterRender(t *testing.T) {
	body, err := NewCSVExporter(';').Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Sınıf;Saat\n5A;46\n5B;\n", string(body))

	body, err = NewCSVExporter(0).Render(sampleDataset())
	require.NoError(t, err)
	assert.Contains(t, string(body), "5A,46")

	_, err = NewCSVExporter(';').Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	body, err := NewPDFExporter().Render(sampleDataset(), "Haftalık Ders Yükü")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestTurkishFolderKeepsCP1252Letters(t *testing.T) {
	assert.Equal(t, "Ögretmen Sinif Haftalik ISIK Ç Ü", turkishFolder.Replace("Öğretmen Sınıf Haftalık IŞIK Ç Ü"))
	assert.Equal(t, "Istanbul Dogu", turkishFolder.Replace("İstanbul Doğu"))
}
