package utility

import (
	"strconv"
)

// Contains kiểm tra slice có chứa phần tử item hay không.
func Contains[T comparable](items []T, item T) bool {
	for _, v := range items {
		if v == item {
			return true
		}
	}
	return false
}

// P2Int64 parse string sang int64, trả về 0 nếu không parse được.
func P2Int64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
