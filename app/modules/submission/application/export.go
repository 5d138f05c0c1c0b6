package submissionservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/skyrden-airlines/portal/app/shared/observability"
)

// ExportSheet is the worksheet name of the export workbook.
const ExportSheet = "Submissions"

var exportColumns = []string{
	"Submission ID", "Form", "Slot", "Applicant", "Discord ID", "Roblox",
	"Status", "Submitted At", "Reviewed By", "Reviewed At", "Feedback", "Notified",
}

func (s *service) Export(ctx context.Context, query AdminQuery) ([]byte, error) {
	return observability.Run(ctx, s.telemetry, "Export", query.FormID, func(ctx context.Context) ([]byte, error) {
		rows, err := s.adminList(ctx, query)
		if err != nil {
			return nil, err
		}
		return buildWorkbook(rows)
	})
}

// answerKeys lists answer ids in form field order across all rows, then any
// keys the forms no longer define.
func answerKeys(rows []*AdminSubmissionView) []string {
	seen := map[string]bool{}
	var keys []string
	for _, row := range rows {
		for _, k := range row.answerOrder() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func buildWorkbook(rows []*AdminSubmissionView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ExportSheet); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	keys := answerKeys(rows)

	header := make([]interface{}, 0, len(exportColumns)+len(keys))
	for _, c := range exportColumns {
		header = append(header, c)
	}
	for _, k := range keys {
		header = append(header, k)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(ExportSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style export header: %w", err)
	}

	for idx, row := range rows {
		cells := make([]interface{}, 0, len(header))
		var applicant, discordID, roblox, reviewer string
		if row.Applicant != nil {
			applicant, discordID, roblox = row.Applicant.DiscordUsername, row.Applicant.DiscordID, row.Applicant.RobloxUsername
		}
		if row.Reviewer != nil {
			reviewer = row.Reviewer.DiscordUsername
		}
		var feedback string
		if row.AdminFeedback != nil {
			feedback = *row.AdminFeedback
		}
		cells = append(cells,
			row.ID.String(), row.FormTitle, row.Slot, applicant, discordID, roblox,
			string(row.Status), formatTime(&row.CreatedAt), reviewer, formatTime(row.ReviewedAt),
			feedback, row.NotificationSent,
		)
		for _, k := range keys {
			cells = append(cells, row.Responses[k].String())
		}

		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ExportSheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("failed to write export row %d: %w", idx+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
