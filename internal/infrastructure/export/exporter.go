package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

type Config struct {
	Dir    string
	Logger *logging.Logger
}

// FileExporter writes datasets as JSON and Excel files under one directory.
type FileExporter struct {
	dir    string
	logger *logging.Logger
}

var _ usecase.Exporter = (*FileExporter)(nil)

func NewFileExporter(cfg Config) *FileExporter {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &FileExporter{dir: dir, logger: logger}
}

// Export writes every requested format and returns the written paths. A
// failure stops at the failing format; files already written are returned.
func (e *FileExporter) Export(ctx context.Context, table *tabular.Table, name usecase.ExportName, formats usecase.ExportFormats) ([]string, error) {
	if table == nil {
		return nil, fmt.Errorf("export %s: nil table", name.Kind)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir %s: %w", e.dir, err)
	}

	var paths []string
	if formats.JSON {
		path := filepath.Join(e.dir, FileName(name, "json"))
		out, err := EncodeJSON(table)
		if err != nil {
			return paths, fmt.Errorf("encode json: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return paths, fmt.Errorf("write json %s: %w", path, err)
		}
		e.logger.DebugContext(ctx, "json file saved", "path", path, "rows", table.Len())
		paths = append(paths, path)
	}
	if formats.Excel {
		path := filepath.Join(e.dir, FileName(name, "xlsx"))
		if err := WriteExcel(path, table); err != nil {
			return paths, err
		}
		e.logger.DebugContext(ctx, "excel file saved", "path", path, "rows", table.Len())
		paths = append(paths, path)
	}
	return paths, nil
}
