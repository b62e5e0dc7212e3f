package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/riskibarqy/fcdata/internal/usecase"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *tabular.Table {
	table := tabular.NewTable()
	table.Append(tabular.Row{
		{Column: "team_name", Value: jsonvalue.Str("Beşiktaş")},
		{Column: "points", Value: jsonvalue.Int(21)},
		{Column: "x", Value: jsonvalue.Null()},
	})
	table.Append(tabular.Row{
		{Column: "team_name", Value: jsonvalue.Str("Göztepe")},
		{Column: "points", Value: jsonvalue.Num(17.5)},
		{Column: "x", Value: jsonvalue.Bool(true)},
	})
	return table
}

func TestEncodeJSON_IndentsAndKeepsColumnOrder(t *testing.T) {
	t.Parallel()

	out, err := EncodeJSON(sampleTable())
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}

	want := `[
    {
        "team_name": "Beşiktaş",
        "points": 21,
        "x": null
    },
    {
        "team_name": "Göztepe",
        "points": 17.5,
        "x": true
    }
]`
	if string(out) != want {
		t.Fatalf("unexpected json:\n%s\nwant:\n%s", out, want)
	}
}

func TestEncodeJSON_EmptyTable(t *testing.T) {
	t.Parallel()

	out, err := EncodeJSON(tabular.NewTable())
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}
	if string(out) != "[]" {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestFileExporter_WritesBothFormats(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	exporter := NewFileExporter(Config{Dir: dir})
	name := usecase.ExportName{
		Source:     tournament.SourceSofascore,
		Country:    "Turkey",
		Tournament: "Trendyol Super Lig",
		Kind:       usecase.KindStandings,
	}

	paths, err := exporter.Export(context.Background(), sampleTable(), name, usecase.ExportFormats{JSON: true, Excel: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected two files, got %v", paths)
	}
	if filepath.Base(paths[0]) != "sofascore_turkey_trendyol_super_lig_standings_data.json" {
		t.Fatalf("unexpected json path: %s", paths[0])
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Fatalf("json file missing: %v", err)
	}

	f, err := excelize.OpenFile(paths[1])
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(excelSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and two rows, got %d", len(rows))
	}
	if rows[0][0] != "team_name" || rows[0][1] != "points" || rows[0][2] != "x" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Beşiktaş" || rows[1][1] != "21" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "Göztepe" || rows[2][1] != "17.5" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestFileExporter_NoFormats(t *testing.T) {
	t.Parallel()

	exporter := NewFileExporter(Config{Dir: t.TempDir()})
	paths, err := exporter.Export(context.Background(), sampleTable(), usecase.ExportName{Kind: usecase.KindShots}, usecase.ExportFormats{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no files, got %v", paths)
	}
}
