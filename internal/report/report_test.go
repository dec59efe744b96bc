package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/score"
)

func testRun(t *testing.T) *analyzer.Run {
	t.Helper()
	cards := []catalog.Card{
		{ID: 1, Name: "Bastion", NameZh: "堡垒", Color: catalog.ColorRed, Cost: 2, Effect: "+1 Wall +1 Tower"},
		{ID: 2, Name: "Meteor", NameZh: "陨石", Color: catalog.ColorBlue, Cost: 8, Effect: "5 damage to enemy tower"},
		{ID: 3, Name: "Brick Pile", Color: catalog.ColorGreen, Cost: 0, Effect: "+3 Wall"},
		{ID: 4, Name: "Oddity", Cost: 0, Effect: "Play again"},
	}
	return analyzer.Score(cards, score.DefaultWeights(), log.NewMemoryLogger())
}

func TestColorMark(t *testing.T) {
	assert.Equal(t, "[R]", ColorMark("Red"))
	assert.Equal(t, "[G]", ColorMark("Green"))
	assert.Equal(t, "[ ]", ColorMark(""))
	assert.Equal(t, "", listMark("Purple"))
}

func TestPrintTable(t *testing.T) {
	run := testRun(t)
	var buf bytes.Buffer
	PrintTable(&buf, run.Ranked, "Top", 2)

	lines := strings.Split(strings.Trim(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, " RNK   CLR  COST      NET  Card Name                 Chinese", lines[3])
	assert.Equal(t, "   1. [G]     0c    +0.25  Brick Pile", strings.TrimRight(lines[5], " "))
	assert.Equal(t, "   2. [ ]     0c    +0.00  Oddity", strings.TrimRight(lines[6], " "))
}

func TestPrintDetail(t *testing.T) {
	run := testRun(t)
	var buf bytes.Buffer
	PrintDetail(&buf, run.Scored[1])

	out := buf.String()
	assert.Contains(t, out, "  [B] [Meteor] 陨石  (Cost: 8)")
	assert.Contains(t, out, "  - Input pts : -10.00 pt")
	assert.Contains(t, out, "      [tower_damage                  ]: +4.50")
	assert.Contains(t, out, "      [high_cost_premium             ]: +0.16")
	assert.Contains(t, out, "  = Net Value: -5.34 pt  [strategic/niche]")
}

func TestPrintReportSections(t *testing.T) {
	run := testRun(t)

	var brief bytes.Buffer
	PrintReport(&brief, run, false)
	assert.NotContains(t, brief.String(), "[OVERTUNED]")

	var full bytes.Buffer
	PrintReport(&full, run, true)
	out := full.String()
	for _, want := range []string{
		"[ALL] Full Card Power Ranking",
		"[R] Red Deck Power Ranking",
		"[OVERTUNED] Net Value > 0  (1 cards)",
		"[STRATEGIC] Net Value < -5  (1 cards - niche/tactical)",
		"    [B] Meteor                   (陨石)  net: -5.34  -> 5 damage to enemy tower",
		">>> Best Efficiency Top-10:",
		"[BALANCE] Net Value Distribution",
	} {
		assert.Contains(t, out, want)
	}
	// zero-cost cards are left out of efficiency
	eff := out[strings.Index(out, "[EFFICIENCY]"):]
	assert.NotContains(t, eff, "Brick Pile")
}

func TestPrintCalibration(t *testing.T) {
	var buf bytes.Buffer
	PrintCalibration(&buf)
	assert.Contains(t, buf.String(), "HOW TO CALIBRATE THE MODEL:")
	assert.Contains(t, buf.String(), "--weights")
}

func TestWriteJSON(t *testing.T) {
	run := testRun(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Records(run.Ranked)))

	out := buf.String()
	assert.Contains(t, out, `"name_zh": "陨石"`)
	assert.Contains(t, out, "\n  {\n    \"rank\": 1,\n")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "Brick Pile", decoded[0]["name"])
	assert.Equal(t, 4.0, decoded[3]["rank"])

	// breakdown keeps scoring order
	i := strings.Index(out, `"tower_damage": 4.5`)
	j := strings.Index(out, `"high_cost_premium": 0.16`)
	assert.True(t, i > 0 && j > i)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card_power_results.json")
	require.NoError(t, ExportJSON(path, testRun(t).Ranked))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	run := testRun(t)
	require.NoError(t, ExportXLSX(path, run))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RankingSheet, SummarySheet}, f.GetSheetList())

	name, err := f.GetCellValue(RankingSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Brick Pile", name)

	breakdown, err := f.GetCellValue(RankingSheet, "K5")
	require.NoError(t, err)
	assert.Equal(t, "tower_damage=+4.50; high_cost_premium=+0.16", breakdown)

	metric, err := f.GetCellValue(SummarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "cards", metric)
	count, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "4", count)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	run := testRun(t)

	first, err := ExportSQLite(path, "cards.json", run.Weights, run.Ranked)
	require.NoError(t, err)
	second, err := ExportSQLite(path, "cards.json", run.Weights, run.Ranked)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	s, err := OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, 4, runs[0].CardCount)

	rank, net, err := s.RankOf(first, "Meteor")
	require.NoError(t, err)
	assert.Equal(t, 4, rank)
	assert.Equal(t, -5.34, net)
}
