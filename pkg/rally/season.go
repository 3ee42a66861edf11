package rally

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/zkraus/bubla/pkg/calendar"
)

// SeasonRally is one rally from the season plan CSV, with its stages
// grouped under it.
type SeasonRally struct {
	Event    string
	Location string
	Distance string
	Start    time.Time
	End      time.Time
	Stages   []SeasonStage
}

type SeasonStage struct {
	SS        string
	Stage     string
	Length    string
	Condition string
	Service   string
}

// LoadSeason parses the season plan CSV. Each row carries the rally
// columns plus one stage; consecutive rows with the same event number
// contribute stages to the same rally. The first row is a header.
func LoadSeason(r io.Reader) ([]SeasonRally, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read season CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("season CSV has no data rows")
	}

	var rallies []SeasonRally
	index := map[string]int{}
	for i, line := range records[1:] {
		if len(line) < 10 {
			return nil, fmt.Errorf("season CSV row %d has %d columns, want 10", i+2, len(line))
		}

		event := line[0]
		at, ok := index[event]
		if !ok {
			start, err := time.Parse("2006-01-02", line[1])
			if err != nil {
				return nil, fmt.Errorf("season CSV row %d has invalid start date: %w", i+2, err)
			}
			end, err := time.Parse("2006-01-02", line[2])
			if err != nil {
				return nil, fmt.Errorf("season CSV row %d has invalid end date: %w", i+2, err)
			}
			rallies = append(rallies, SeasonRally{
				Event:    event,
				Start:    start,
				End:      end,
				Location: line[3],
				Distance: line[4],
			})
			at = len(rallies) - 1
			index[event] = at
		}

		stage := SeasonStage{
			SS:        line[5],
			Stage:     line[6],
			Length:    line[7],
			Condition: line[8],
			Service:   line[9],
		}
		if stage.Stage != "" {
			rallies[at].Stages = append(rallies[at].Stages, stage)
		}
	}
	return rallies, nil
}

// Draft turns the rally into a calendar event draft: summary from
// event number and location, description with the stage table.
func (r SeasonRally) Draft() calendar.Draft {
	return calendar.Draft{
		Summary: fmt.Sprintf("%s %s", r.Event, r.Location),
		Description: fmt.Sprintf("Total distance %s over %d stage(s)\n%s",
			r.Distance, len(r.Stages), stageTable(r.Stages)),
		Start: r.Start,
		End:   r.End,
	}
}

// Interval exposes the rally as a bare calendar event so the planner's
// collision check can be reused for import deduplication.
func (r SeasonRally) Interval() calendar.Event {
	return calendar.Event{Summary: r.Event, Start: r.Start, End: r.End}
}

func stageTable(stages []SeasonStage) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	for _, stage := range stages {
		table.Append([]string{stage.SS, stage.Stage, stage.Length, stage.Condition, stage.Service})
	}
	table.Render()
	return sb.String()
}
