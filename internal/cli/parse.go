package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/attendpay/internal/domain"
)

func invalidInput(op string, format string, args ...any) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...)),
	}
}

func parseDateFlag(name, value string) (domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return domain.Date{}, invalidInput("cli.parse", "--%s must be YYYY-MM-DD, got %q", name, value)
	}
	return d, nil
}

// parseDayFlag is parseDateFlag with "today" as the default.
func parseDayFlag(name, value string, now time.Time) (domain.Date, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "today") {
		return domain.DateOf(now), nil
	}
	return parseDateFlag(name, v)
}

func parseStatus(value string) (domain.AttendanceStatus, error) {
	s := domain.AttendanceStatus(strings.ToLower(strings.TrimSpace(value)))
	if s == "halfday" || s == "half_day" {
		s = domain.StatusHalfDay
	}
	if !s.Known() {
		return "", invalidInput("cli.parse", "status must be one of %s, got %q", statusList(), value)
	}
	return s, nil
}

func statusList() string {
	names := make([]string, 0, 4)
	for _, s := range domain.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func parseRole(value string) (domain.Role, error) {
	r := domain.Role(strings.ToLower(strings.TrimSpace(value)))
	switch r {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleUser:
		return r, nil
	}
	return "", invalidInput("cli.parse", "role must be admin, manager or user, got %q", value)
}

// period fills a zero month or year from now.
func period(month, year int, now time.Time) (int, int, error) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return 0, 0, invalidInput("cli.parse", "--month must be 1..12, got %d", month)
	}
	if year < 1 {
		return 0, 0, invalidInput("cli.parse", "--year must be positive, got %d", year)
	}
	return month, year, nil
}
