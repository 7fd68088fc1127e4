package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskIDs parses task ids from args.
//
// Each argument is either all digits ("3") or a hash followed by digits
// ("#3"), as ids are shown by the list command. Ids keep argument order;
// repeats are kept so "toggle 3 3" flips twice.
func ParseTaskIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskIDRequired
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseTaskID(arg string) (int, error) {
	digits := strings.TrimPrefix(arg, "#")
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
