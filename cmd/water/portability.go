package water

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/realbLanK993/water/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var csvHeader = []string{"date", "timestamp", "quantity_ml", "glasses"}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				if err := writeLogsCSV(f, data.Logs); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d log(s) to %s\n", len(data.Logs), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		var payload service.ExportData
		switch strings.ToLower(strings.TrimSpace(importFormat)) {
		case "json":
			raw, err := os.ReadFile(importIn)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("parse import json: %w", err)
			}
		case "csv":
			f, err := os.Open(importIn)
			if err != nil {
				return fmt.Errorf("open import csv: %w", err)
			}
			defer f.Close()
			payload.Logs, err = readLogsCSV(f)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format %q (use json or csv)", importFormat)
		}

		return withSession(func(s *session, sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(sqldb, payload, mode, importDryRun)
			if err != nil {
				return err
			}
			if report.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %d log(s) from %s\n", report.LogsImported, importIn)
				return nil
			}
			s.log.Info("data imported",
				zap.String("mode", string(mode)),
				zap.Int("logs", report.LogsImported),
				zap.Bool("settings", report.SettingsImported),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d log(s) from %s\n", report.LogsImported, importIn)
			if report.SettingsImported {
				fmt.Fprintln(cmd.OutOrStdout(), "Imported settings")
			}
			return nil
		})
	},
}

func writeLogsCSV(w io.Writer, logs []service.ExportLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write export csv header: %w", err)
	}
	for _, l := range logs {
		record := []string{l.Date, l.Timestamp, strconv.Itoa(l.QuantityMl), strconv.Itoa(l.Glasses)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export csv: %w", err)
	}
	return nil
}

func readLogsCSV(r io.Reader) ([]service.ExportLog, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read import csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("import csv contains no data rows")
	}
	logs := make([]service.ExportLog, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("csv row %d has %d columns, expected %d", i+2, len(row), len(csvHeader))
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("csv row %d quantity_ml: invalid number %q", i+2, row[2])
		}
		glasses, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("csv row %d glasses: invalid number %q", i+2, row[3])
		}
		logs = append(logs, service.ExportLog{
			Date:       strings.TrimSpace(row[0]),
			Timestamp:  strings.TrimSpace(row[1]),
			QuantityMl: quantity,
			Glasses:    glasses,
		})
	}
	return logs, nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "append", "Import mode: append|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
