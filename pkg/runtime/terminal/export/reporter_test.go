package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

func TestReporter_Neighborhoods(t *testing.T) {
	var buf bytes.Buffer
	rows := []convert.NeighborhoodSummary{
		{Neighborhood: domain.NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "A00a"}, Groups: 2, Addresses: 7},
		{Neighborhood: domain.NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "A00b"}, Groups: 1, Addresses: 1},
	}

	require.NoError(t, NewReporter(&buf).Neighborhoods("afvalwijzer.csv", rows))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "afvalwijzer.csv: 2 neighborhoods\n"))
	assert.Contains(t, out, "| Amsterdam                | A00a           |         2 |         7 |")
	assert.Contains(t, out, "| Total                    |                |         3 |         8 |")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 9)
	for _, line := range lines[1:] {
		assert.Len(t, line, len(lines[1]))
	}
}

func TestReporter_Formats(t *testing.T) {
	var buf bytes.Buffer
	infos := []convert.FormatInfo{
		{Ext: ".csv", Kind: convert.KindRaw},
		{Ext: ".pdf", Kind: convert.KindDocument, ContentType: "application/pdf"},
	}

	require.NoError(t, NewReporter(&buf).Formats(infos))

	assert.Equal(t, ".csv     raw       \n.pdf     document  application/pdf\n", buf.String())
}
