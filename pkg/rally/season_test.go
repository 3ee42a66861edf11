package rally

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonCSV = `event,start,end,location,distance,ss,stage,length,condition,service
R1,2024-03-01,2024-03-04,Monte Carlo,120km,SS1,Col de Turini,15km,tarmac,30min
R1,2024-03-01,2024-03-04,Monte Carlo,120km,SS2,Sospel,12km,tarmac,
R2,2024-03-10,2024-03-12,Sweden,90km,SS1,Vargasen,14km,snow,30min
R3,2024-03-20,2024-03-22,Portugal,100km,,,,,
`

func TestLoadSeason(t *testing.T) {
	rallies, err := LoadSeason(strings.NewReader(seasonCSV))
	require.NoError(t, err)
	require.Len(t, rallies, 3)

	t.Run("groups stages under their rally", func(t *testing.T) {
		assert.Equal(t, "R1", rallies[0].Event)
		assert.Len(t, rallies[0].Stages, 2)
		assert.Equal(t, "Col de Turini", rallies[0].Stages[0].Stage)
		assert.Len(t, rallies[1].Stages, 1)
	})

	t.Run("rows without a stage add no stage", func(t *testing.T) {
		assert.Empty(t, rallies[2].Stages)
	})

	t.Run("parses the date range", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), rallies[0].Start)
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), rallies[0].End)
	})

	t.Run("rejects malformed rows", func(t *testing.T) {
		_, err := LoadSeason(strings.NewReader("h1,h2\nR1,2024-03-01\n"))
		require.Error(t, err)

		_, err = LoadSeason(strings.NewReader("event,start,end,location,distance,ss,stage,length,condition,service\nR1,not-a-date,2024-03-04,Monte Carlo,120km,,,,,\n"))
		require.Error(t, err)
	})
}

func TestSeasonRallyDraft(t *testing.T) {
	rallies, err := LoadSeason(strings.NewReader(seasonCSV))
	require.NoError(t, err)

	draft := rallies[0].Draft()
	assert.Equal(t, "R1 Monte Carlo", draft.Summary)
	assert.Contains(t, draft.Description, "Total distance 120km over 2 stage(s)")
	assert.Contains(t, draft.Description, "Col de Turini")
	assert.Equal(t, rallies[0].Start, draft.Start)
	assert.Equal(t, rallies[0].End, draft.End)
}
