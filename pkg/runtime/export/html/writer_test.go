package html

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

func TestWriter_Write(t *testing.T) {
	rep := &domain.Report{
		Title: "Waste guide",
		Date:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Chapters: []domain.Chapter{{
			Neighborhood: domain.NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "F84c"},
			Blocks: []domain.Block{{
				Addresses: []string{"Cycladenlaan 1–9"},
				Rules: []domain.RuleLabels{{
					Fraction: "Rest",
					Labels:   []domain.Label{{Caption: "Remark", Text: "Bel <14020> & maak een afspraak"}},
				}},
			}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "<title>Waste guide, 2024-05-01</title>")
	assert.Contains(t, out, "grid-template-columns:4rem 1fr")
	assert.Contains(t, out, "<h1>Amsterdam, neighborhood F84c</h1>")
	assert.Contains(t, out, "<li>Cycladenlaan 1–9</li>")
	assert.Contains(t, out, "<label>Remark:</label><div>Bel &lt;14020&gt; &amp; maak een afspraak</div>")
}
