package price

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Raw is a price exactly as the backend stores it: either a number or
// free text like "По запросу". The catalog parser writes whatever the
// supplier site showed, so both forms occur in one listing.
type Raw string

func (r *Raw) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Raw(s)
		return nil
	}
	*r = Raw(data)
	return nil
}

type Kind int

const (
	Numeric Kind = iota
	FreeText
)

// Display is the tagged form a price takes on a card: a parsed amount
// in BYN, or the raw text when the entry has no digits at all.
type Display struct {
	Kind   Kind
	Amount float64
	Text   string
}

func (r Raw) Display() Display {
	s := strings.TrimSpace(string(r))
	if s != "" && !containsDigit(s) {
		return Display{Kind: FreeText, Text: s}
	}
	return Display{Kind: Numeric, Amount: Parse(s)}
}

// Parse extracts the first numeric token from a price string,
// "12 500 руб." -> 12500. Comma is a decimal separator. Returns 0
// when the string holds no number.
func Parse(raw string) float64 {
	if raw == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	s := b.String()

	start := strings.IndexFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9' || r == '.' || r == ','
	})
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' || c == ',' {
			end++
			continue
		}
		break
	}
	token := strings.Replace(s[start:end], ",", ".", 1)
	return floatPrefix(token)
}

// floatPrefix parses the leading float of a token, ignoring whatever
// trails it ("12500." -> 12500, "12.500.50" -> 12.5).
func floatPrefix(s string) float64 {
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !dot {
			dot = true
			end++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders an amount with two decimals, comma as the decimal
// separator and space as the thousands separator: 12500.5 -> "12 500,50".
// NaN formats to the empty string.
func Format(num float64) string {
	if math.IsNaN(num) {
		return ""
	}
	fixed := strconv.FormatFloat(num, 'f', 2, 64)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, decPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(' ')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}

// ConvertFunc maps an amount in BYN into the display currency.
type ConvertFunc func(float64) float64

// FormatWithCurrency renders a raw price in the given currency. Raw
// values without a single digit ("По запросу", "Цена уточняется") pass
// through verbatim so a card can show them as-is.
func FormatWithCurrency(raw Raw, currency string, convert ConvertFunc) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return ""
	}
	if !containsDigit(s) {
		return s
	}
	return FormatAmount(Parse(s), currency, convert)
}

// FormatAmount is FormatWithCurrency for an already-numeric amount in BYN.
func FormatAmount(num float64, currency string, convert ConvertFunc) string {
	if convert != nil {
		num = convert(num)
	}
	formatted := Format(num)
	if formatted == "" {
		return ""
	}
	if currency == "" {
		currency = "BYN"
	}
	return formatted + " " + currency
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
