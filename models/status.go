package models

import (
	"fmt"
	"strings"
)

type TableStatus string

const (
	TableFree     TableStatus = "FREE"
	TableOccupied TableStatus = "OCCUPIED"
	TableDisabled TableStatus = "DISABLED"
)

// ParseTableStatus accepts any casing and rejects unknown values.
func ParseTableStatus(s string) (TableStatus, error) {
	switch st := TableStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case TableFree, TableOccupied, TableDisabled:
		return st, nil
	}
	return "", fmt.Errorf("unknown table status %q", s)
}

func (s TableStatus) Valid() bool {
	return s == TableFree || s == TableOccupied || s == TableDisabled
}

// CanSetManually reports whether an operator may move a table from s to next
// without going through a session. Only FREE <-> DISABLED qualifies; a no-op
// change on FREE or DISABLED is allowed.
func (s TableStatus) CanSetManually(next TableStatus) bool {
	switch s {
	case TableFree:
		return next == TableFree || next == TableDisabled
	case TableDisabled:
		return next == TableDisabled || next == TableFree
	}
	return false
}

// CanOpen reports whether a session may start on a table in this status.
func (s TableStatus) CanOpen() bool { return s == TableFree }

// CanClose reports whether the table has a session that may be closed.
func (s TableStatus) CanClose() bool { return s == TableOccupied }
