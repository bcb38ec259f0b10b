package service

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseTruthy accepts real booleans and the strings "true", "1" and "yes" in any case. Everything else is false.
func ParseTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case *bool:
		return t != nil && *t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true
		}
		return false
	case float64:
		return t == 1
	case int:
		return t == 1
	}
	return false
}

// ParseMesa reads a table number given either as text or as a JSON number rendered to text.
func ParseMesa(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// PriceToCents rounds half away from zero to whole cents.
func PriceToCents(p decimal.Decimal) int64 {
	return p.Shift(2).Round(0).IntPart()
}

func CentsToPrice(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
