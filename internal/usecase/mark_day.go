package usecase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

// Mark is an explicit status for one employee on the sheet.
type Mark struct {
	Status domain.AttendanceStatus
	Notes  *string
}

type MarkDayResult struct {
	Records []domain.AttendanceRecord
	// Ignored lists mark employee ids that match no current employee.
	Ignored []string
}

// MarkDay records a whole attendance sheet for one date. Every current employee
// is upserted; employees without an explicit mark are recorded as absent.
type MarkDay struct {
	sheet ports.AttendanceSheet
}

func NewMarkDay(sheet ports.AttendanceSheet) *MarkDay {
	return &MarkDay{sheet: sheet}
}

func (uc *MarkDay) Execute(date domain.Date, marks map[string]Mark) (MarkDayResult, error) {
	if date.IsZero() {
		return MarkDayResult{}, &domain.OpError{
			Op:   "usecase.markday",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: date is required", domain.ErrInvalidInput),
		}
	}

	employees := uc.sheet.Employees()
	known := make(map[string]bool, len(employees))

	res := MarkDayResult{Records: make([]domain.AttendanceRecord, 0, len(employees))}
	var errs []error
	for _, e := range employees {
		known[e.ID] = true

		in := domain.AttendanceInput{EmployeeID: e.ID, Date: date, Status: domain.StatusAbsent}
		if m, ok := marks[e.ID]; ok {
			if m.Status != "" {
				in.Status = m.Status
			}
			in.Notes = m.Notes
		}

		rec, err := uc.sheet.AddAttendanceRecord(in)
		if err != nil {
			errs = append(errs, fmt.Errorf("mark %s: %w", e.ID, err))
		}
		res.Records = append(res.Records, rec)
	}

	for id := range marks {
		if !known[id] {
			res.Ignored = append(res.Ignored, id)
		}
	}
	sort.Strings(res.Ignored)

	return res, errors.Join(errs...)
}
