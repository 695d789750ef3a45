package krw

import "fmt"

// Format renders an amount with comma grouping for reasons and reports.
func Format(amount int64) string {
	if amount == 0 {
		return "0"
	}
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	if neg {
		return "-" + string(result)
	}
	return string(result)
}
