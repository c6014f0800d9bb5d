package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int.
// Strings that are not plain base-10 integers, including overflowing ones, yield 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case string:
		return atoi(v)
	case []byte:
		return atoi(string(v))
	default:
		return atoi(fmt.Sprintf("%v", v))
	}
}

// atoi returns 0 for anything strconv.Atoi rejects; on overflow Atoi
// returns the clamped value along with the error.
func atoi(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32:
		return ToInt(v) == 1
	case string:
		return isTruthy(v)
	case []byte:
		return isTruthy(string(v))
	default:
		return false
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
