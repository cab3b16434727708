package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lingodrills/exercise-service/internal/repositories"
)

// ExportService renders a learner's drill results as downloadable files.
type ExportService interface {
	ExportProgressCSV(ctx context.Context, learnerID string) ([]byte, error)
	ExportProgressExcel(ctx context.Context, learnerID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var progressHeader = []string{"Exercise", "Complete", "Score %", "Last Updated"}

func (s *exportService) ExportProgressCSV(ctx context.Context, learnerID string) ([]byte, error) {
	records, err := s.repo.Progress().ListProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for export: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(progressHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.ExerciseSlug,
			strconv.FormatBool(rec.Complete),
			strconv.Itoa(rec.Pct),
			rec.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Progress exported to CSV",
		"learner_id", learnerID,
		"records", len(records))
	return buf.Bytes(), nil
}

func (s *exportService) ExportProgressExcel(ctx context.Context, learnerID string) ([]byte, error) {
	records, err := s.repo.Progress().ListProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Progress"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, title := range progressHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.ExerciseSlug,
			rec.Complete,
			rec.Pct,
			rec.UpdatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Progress exported to Excel",
		"learner_id", learnerID,
		"records", len(records))
	return buf.Bytes(), nil
}
