package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExportFormats lists the accepted output extensions.
func ExportFormats() []string {
	return []string{".json", ".csv"}
}

func checkOutput(path string, enriched bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return nil
	case ".csv":
		if enriched {
			return trenderr.Validation("output",
				"enriched data has nested fields and cannot be saved as CSV", []string{".json"})
		}
		return nil
	default:
		return trenderr.Validation("output",
			fmt.Sprintf("unsupported file format %q", filepath.Ext(path)), ExportFormats())
	}
}

// Export writes report to path. JSON files hold the whole report when it is
// enriched and the bare rows otherwise. CSV files hold keyword, rank and traffic
// columns and stay empty when there are no rows.
func Export(report *domain.BulkReport, path string) error {
	if err := checkOutput(path, report.Metadata.Enriched); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = writeCSV(f, report.Trends)
	} else {
		var payload any = report.Trends
		if report.Metadata.Enriched {
			payload = report
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(payload)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(f *os.File, rows []domain.BulkTrend) error {
	if len(rows) == 0 {
		return nil
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"keyword", "rank", "traffic"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Keyword, strconv.Itoa(r.Rank), r.Traffic}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
