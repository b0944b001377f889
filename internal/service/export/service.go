package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

const (
	roomSheet        = "객실"
	passengerSheet   = "승객"
	nationalitySheet = "국적"

	dateHeader      = "날짜"
	legHeader       = "구간"
	totalGradeLabel = "총계"
	remainingLabel  = "잔여"
	headcountHeader = "인원"
)

// Service renders an occupancy matrix into an xlsx workbook with a
// room sheet, a passenger sheet and a nationality manifest sheet. The
// workbook mirrors the on-screen matrix so a saved file and the
// dashboard agree for the same window.
type Service struct {
	manifest ManifestRepository
	logger   Logger
}

func NewService(manifest ManifestRepository, logger Logger) *Service {
	return &Service{manifest: manifest, logger: logger}
}

// BuildWorkbook assembles the workbook for an already-built matrix.
// The ticket scope must be the one the matrix was built with so the
// manifest sheet counts the same ticket population.
func (s *Service) BuildWorkbook(ctx context.Context, matrix *domain.OccupancyMatrix, scope domain.TicketScope) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeCountSheet(f, roomSheet, matrix, roomCell); err != nil {
		return nil, err
	}
	if err := s.writeCountSheet(f, passengerSheet, matrix, passengerCell); err != nil {
		return nil, err
	}
	if err := s.writeManifestSheet(ctx, f, matrix, scope); err != nil {
		return nil, err
	}

	// The default sheet is replaced by the room sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: BuildWorkbook - drop default sheet: %v", ErrInternal, err)
	}
	index, err := f.GetSheetIndex(roomSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: BuildWorkbook - locate room sheet: %v", ErrInternal, err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: BuildWorkbook - serialize workbook: %v", ErrInternal, err)
	}
	s.logger.Info("export: workbook built, route=%s rows=%d", matrix.RouteCode, len(matrix.Rows))
	return buf.Bytes(), nil
}

// cellColumns lists the sub-columns for one grade group of a sheet and
// extracts their values from a cell.
type cellColumns func(hasVacancy bool) ([]string, func(c domain.MatrixCell) []int)

func roomCell(hasVacancy bool) ([]string, func(c domain.MatrixCell) []int) {
	if !hasVacancy {
		return []string{domain.StateConfirmed.Label(), domain.StateBlocked.Label()},
			func(c domain.MatrixCell) []int { return []int{c.RoomsConfirmed, c.RoomsBlocked} }
	}
	return []string{domain.StateConfirmed.Label(), domain.StateBlocked.Label(), domain.StateVacant.Label()},
		func(c domain.MatrixCell) []int { return []int{c.RoomsConfirmed, c.RoomsBlocked, c.RoomsVacant} }
}

func passengerCell(hasVacancy bool) ([]string, func(c domain.MatrixCell) []int) {
	if !hasVacancy {
		return []string{domain.StateConfirmed.Label(), domain.StateBlocked.Label()},
			func(c domain.MatrixCell) []int { return []int{c.PaxConfirmed, c.PaxBlocked} }
	}
	return []string{domain.StateConfirmed.Label(), domain.StateBlocked.Label(), remainingLabel},
		func(c domain.MatrixCell) []int { return []int{c.PaxConfirmed, c.PaxBlocked, c.PaxRemaining} }
}

// writeCountSheet writes one count sheet: a two-row header with grade
// groups merged across their sub-columns, then one row per sailing.
func (s *Service) writeCountSheet(f *excelize.File, sheet string, matrix *domain.OccupancyMatrix, columns cellColumns) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("%w: writeCountSheet - create sheet %s: %v", ErrInternal, sheet, err)
	}

	subHeaders, extract := columns(matrix.HasVacancy())
	group := len(subHeaders)

	setCell(f, sheet, 1, 1, dateHeader)
	setCell(f, sheet, 2, 1, legHeader)
	mergeRows(f, sheet, 1, 1, 2)
	mergeRows(f, sheet, 2, 1, 2)

	col := 3
	for _, grade := range matrix.Grades {
		label := grade
		if grade == domain.TotalGradeCode {
			label = totalGradeLabel
		}
		setCell(f, sheet, col, 1, label)
		mergeCols(f, sheet, col, col+group-1, 1)
		for i, sub := range subHeaders {
			setCell(f, sheet, col+i, 2, sub)
		}
		col += group
	}

	for rowIdx, row := range matrix.Rows {
		r := rowIdx + 3
		setCell(f, sheet, 1, r, row.DateLabel)
		setCell(f, sheet, 2, r, row.DeparturePort+" → "+row.ArrivalPort)
		col = 3
		for _, grade := range matrix.Grades {
			for i, v := range extract(row.Cells[grade]) {
				setCell(f, sheet, col+i, r, v)
			}
			col += group
		}
	}

	return nil
}

// writeManifestSheet writes the per-sailing nationality breakdown with
// age brackets. Passengers without a birth date stay in the headcount
// but appear in no bracket.
func (s *Service) writeManifestSheet(ctx context.Context, f *excelize.File, matrix *domain.OccupancyMatrix, scope domain.TicketScope) error {
	if _, err := f.NewSheet(nationalitySheet); err != nil {
		return fmt.Errorf("%w: writeManifestSheet - create sheet: %v", ErrInternal, err)
	}

	scheduleIDs := matrix.ScheduleIDs()
	var records []domain.PassengerRecord
	if len(scheduleIDs) > 0 {
		var err error
		records, err = s.manifest.PassengersBySchedule(ctx, scheduleIDs, scope)
		if err != nil {
			return fmt.Errorf("%w: writeManifestSheet - load manifest: %v", ErrInternal, err)
		}
	}

	etds := make(map[int64]time.Time, len(matrix.Rows))
	labels := make(map[int64]string, len(matrix.Rows))
	for _, row := range matrix.Rows {
		etds[row.ScheduleID] = row.ETD
		labels[row.ScheduleID] = row.DateLabel
	}

	setCell(f, nationalitySheet, 1, 1, dateHeader)
	setCell(f, nationalitySheet, 2, 1, nationalitySheet)
	setCell(f, nationalitySheet, 3, 1, headcountHeader)
	for i, band := range ageBandLabels() {
		setCell(f, nationalitySheet, 4+i, 1, band)
	}

	rows := aggregateDemographics(records, etds, scheduleIDs)
	for i, row := range rows {
		r := i + 2
		setCell(f, nationalitySheet, 1, r, labels[row.ScheduleID])
		setCell(f, nationalitySheet, 2, r, row.Nationality)
		setCell(f, nationalitySheet, 3, r, row.Total)
		for j, band := range ageBandLabels() {
			setCell(f, nationalitySheet, 4+j, r, row.Bands[band])
		}
	}

	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	name, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, name, value)
}

func mergeCols(f *excelize.File, sheet string, fromCol, toCol, row int) {
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	_ = f.MergeCell(sheet, from, to)
}

func mergeRows(f *excelize.File, sheet string, col, fromRow, toRow int) {
	from, _ := excelize.CoordinatesToCellName(col, fromRow)
	to, _ := excelize.CoordinatesToCellName(col, toRow)
	_ = f.MergeCell(sheet, from, to)
}
