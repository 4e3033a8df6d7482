package export

import (
	"bytes"
	"fmt"

	"go-roster/internal/roster"

	"github.com/xuri/excelize/v2"
)

const (
	rosterSheet   = "Week Roster"
	coverageSheet = "Coverage"
)

var rosterHeader = []string{
	"Date",
	"Employee #",
	"Name",
	"Team",
	"Shift",
	"Source",
}

var coverageHeader = []string{
	"Date",
	"Compliant",
	"Violations",
}

// DaySection is one resolved day of the exported week.
type DaySection struct {
	Roster   roster.RosterResponse
	Coverage roster.CoverageResponse
}

// BuildWeeklyRosterWorkbook renders seven day sections into an XLSX file
// with one roster sheet and one coverage summary sheet.
func BuildWeeklyRosterWorkbook(days []DaySection) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(rosterSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create roster sheet: %w", err)
	}
	if _, err := f.NewSheet(coverageSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create coverage sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeader(f, rosterSheet, rosterHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeader(f, coverageSheet, coverageHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	rosterRow := 2
	for _, day := range days {
		for _, member := range rosterMembers(day.Roster) {
			team := ""
			if member.Team != nil {
				team = *member.Team
			}
			cells := []any{
				day.Roster.Date,
				member.EmployeeNumber,
				member.FullName,
				team,
				member.Shift,
				member.Source,
			}
			if err := writeRow(f, rosterSheet, rosterRow, cells); err != nil {
				f.Close()
				return nil, err
			}
			rosterRow++
		}
	}

	for i, day := range days {
		compliant := "YES"
		if !day.Coverage.Compliant {
			compliant = "NO"
		}
		cells := []any{
			day.Coverage.Date,
			compliant,
			violationSummary(day.Coverage.Violations),
		}
		if err := writeRow(f, coverageSheet, i+2, cells); err != nil {
			f.Close()
			return nil, err
		}
	}

	for col, width := range []float64{12, 12, 28, 8, 14, 12} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(rosterSheet, name, name, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("set header style %s: %w", cell, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// rosterMembers flattens the buckets in display order: working shifts
// first, then off and leave.
func rosterMembers(r roster.RosterResponse) []roster.RosterMember {
	out := make([]roster.RosterMember, 0, len(r.Morning)+len(r.Evening)+len(r.Off)+len(r.OnLeave))
	out = append(out, r.Morning...)
	out = append(out, r.Evening...)
	out = append(out, r.Off...)
	out = append(out, r.OnLeave...)
	return out
}

func violationSummary(violations []roster.Violation) string {
	if len(violations) == 0 {
		return ""
	}
	summary := ""
	for i, v := range violations {
		if i > 0 {
			summary += "; "
		}
		summary += v.Type
	}
	return summary
}
