package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

func GenerateID() string {
	return uuid.New().String()
}

// ClampLimit falls back to the default for non-positive values and caps the
// rest at MaxListLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// JoinDice renders faces as "3-5-1".
func JoinDice(dice []int) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

// FormatDice renders faces as "[3, 5, 1]".
func FormatDice(dice []int) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
