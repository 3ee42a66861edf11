package rally

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Leaderboard and standings are preview commands backed by fixture
// data until the results provider integration lands.
// TODO: replace the fixtures with the racenet results feed.

type leaderboardEntry struct {
	Rank      int
	Name      string
	Vehicle   string
	TotalTime string
	TotalDiff string
}

var previewLeaderboard = []leaderboardEntry{
	{1, "sykynxCZ", "Mitsubishi Space Star R5", "44:24.696", "--"},
	{2, "aranelek", "Ford Fiesta R5", "46:21.601", "+01:56.905"},
	{3, "Maidens", "ŠKODA Fabia R5", "47:50.198", "+03:25.502"},
	{4, "ThePlagueDoc24", "Ford Fiesta R5", "48:57.641", "+04:32.945"},
	{5, "Risinek", "ŠKODA Fabia R5", "49:43.359", "+05:18.663"},
	{6, "mischmo", "ŠKODA Fabia R5", "52:00.002", "+07:35.306"},
	{7, "VohultoNeboUhni", "ŠKODA Fabia R5", "01:59:09.272", "+01:14:44.576"},
}

type standingsEntry struct {
	Rank        int
	Name        string
	TotalPoints int
	EventPoints []int
}

var previewStandings = []standingsEntry{
	{1, "Maidens", 25, []int{7, 4, 5, 9}},
	{2, "aranelek", 21, []int{3, 8, 7, 3}},
	{3, "sykynxCZ", 17, []int{5, 6, 1, 5}},
	{4, "Risinek", 14, []int{4, 5, 1, 4}},
	{5, "SharpEye24", 12, []int{0, 2, 4, 6}},
	{6, "mischmo", 10, []int{2, 3, 3, 2}},
	{7, "nert", 5, []int{1, 1, 2, 1}},
	{8, "xholesov", 3, []int{1, 1, 0, 1}},
	{9, "VohultoNeboUhni", 1, []int{0, 0, 0, 1}},
}

const seasonEvents = 12

// Leaderboard renders the current event leaderboard preview table.
func Leaderboard() string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"rank", "name", "vehicle", "total time", "total diff"})
	for _, entry := range previewLeaderboard {
		table.Append([]string{
			strconv.Itoa(entry.Rank),
			entry.Name,
			entry.Vehicle,
			entry.TotalTime,
			entry.TotalDiff,
		})
	}
	table.Render()
	return preview(fmt.Sprintf("```%s```", sb.String()))
}

// Standings renders the season standings preview table, one column
// per season event.
func Standings() string {
	header := []string{"rank", "name", "points"}
	for i := 0; i < seasonEvents; i++ {
		header = append(header, strconv.Itoa(i+1))
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(header)
	for _, entry := range previewStandings {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Name,
			strconv.Itoa(entry.TotalPoints),
		}
		for i := 0; i < seasonEvents; i++ {
			points := 0
			if i < len(entry.EventPoints) {
				points = entry.EventPoints[i]
			}
			row = append(row, strconv.Itoa(points))
		}
		table.Append(row)
	}
	table.Render()
	return preview(fmt.Sprintf("```%s```", sb.String()))
}

func preview(message string) string {
	return strings.Join([]string{
		"# 🚧 PREVIEW RESPONSE MOCK DATA 🚧",
		message,
		"# 🚧 END OF PREVIEW RESPONSE 🚧",
	}, "\n")
}
