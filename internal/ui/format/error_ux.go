package format

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/attendpay/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// UserMessage turns an error into one short line for the operator. Details stay
// in the log file.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found (tip: run `attendpay init`)"
			}
			if strings.Contains(oe.Op, "transfer") {
				return "No staged import (run `attendpay data import <file>` first)"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config: " + detail(oe)

		case domain.KindInvalidInput:
			return detail(oe)

		case domain.KindInvalidDocument:
			return "Import rejected: " + detail(oe)

		case domain.KindCorrupt:
			if oe.Path != "" {
				return "Stored data is unreadable: " + filepath.Base(oe.Path)
			}
			return "Stored data is unreadable"

		case domain.KindStorage:
			return "Could not save data; changes are kept in memory (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

// detail is the cause of oe without the sentinel prefix.
func detail(oe *domain.OpError) string {
	if oe.Err == nil {
		return string(oe.Kind)
	}
	msg := oe.Err.Error()
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrInvalidDocument, domain.ErrInvalidConfig} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
