package utils

import (
	"fmt"
	"strconv"
)

func RoundToTwoDecimals(value float64) float64 {
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", value), 64)
	return rounded
}

func RoundToOneDecimal(value float64) float64 {
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.1f", value), 64)
	return rounded
}

// Percentage returns part/total*100 rounded to two decimals, or 0 for an empty total.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return RoundToTwoDecimals(float64(part) / float64(total) * 100)
}
