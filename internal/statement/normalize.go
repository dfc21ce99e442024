package statement

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeAmount converts a raw amount string to a float, stripping
// currency formatting ($, quotes, thousands separators). Unparseable
// input yields 0 rather than an error; sign is preserved.
func NormalizeAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", `"`, "", ",", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

// NormalizeDate converts MM/DD/YYYY or MM/DD/YY to zero-padded
// YYYY-MM-DD. Two-digit years above 50 map to 19xx, the rest to 20xx.
// Any other shape is passed through unchanged.
func NormalizeDate(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return raw
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return raw
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return raw
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return raw
	}

	if len(parts[2]) <= 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
