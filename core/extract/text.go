package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Fichusgg/casa-score-br/core"
)

const currencyMarker = "R$"

// Defaults substituted when every strategy for a field fails.
const (
	DefaultAreaM2 = 75
	DefaultBairro = "Centro"
	DefaultCidade = "São Paulo"
	DefaultEstado = "SP"
)

var (
	// areaPattern captures the integer part of "75 m²", "1.200m2", "75,5 M²"
	// and "100.5 m2". The number must not continue a longer one.
	areaPattern = regexp.MustCompile(`(?i)(?:^|[^\d.,])(\d{1,3}(?:\.\d{3})+|\d+)(?:[.,]\d{1,2})?\s*m(?:²|2)(?:[^\p{L}\d]|$)`)

	// bedroomsPattern captures the count in "2 quartos", "1 quarto", "3 dormitórios".
	bedroomsPattern = regexp.MustCompile(`(?i)(?:^|[^\d.,])(\d{1,2})\s*(?:quartos?|dormit[óo]rios?)(?:[^\p{L}]|$)`)

	// pricePattern captures the amount in "R$ 850.000" or "R$850.000,00".
	pricePattern = regexp.MustCompile(`R\$\s*((?:\d{1,3}(?:\.\d{3})+|\d+)(?:,\d{1,2})?)`)

	numberToken    = regexp.MustCompile(`\d[\d.,]*`)
	decimalPoint   = regexp.MustCompile(`^\d+\.\d{1,2}$`)
	plainInteger   = regexp.MustCompile(`^\d+$`)
	addressSegment = regexp.MustCompile(`^\p{L}[\p{L}'. -]*(?:,\s*\p{L}[\p{L}'. -]*)+$`)
	stateSuffix    = regexp.MustCompile(`\s*[-/]\s*[A-Za-z]{2}$`)
)

// parsePrice reads a whole currency amount. Brazilian formatting is assumed
// ("850.000,00"), except a lone dot followed by one or two digits, which is
// a decimal point ("850000.00" in meta tags).
func parsePrice(s string) (int, bool) {
	if i := strings.Index(s, currencyMarker); i >= 0 {
		s = s[i+len(currencyMarker):]
	}
	tok := numberToken.FindString(s)
	if tok == "" {
		return 0, false
	}
	tok = strings.TrimRight(tok, ".,")

	switch {
	case strings.Contains(tok, ","):
		tok = tok[:strings.Index(tok, ",")]
	case decimalPoint.MatchString(tok):
		tok = tok[:strings.Index(tok, ".")]
	}
	tok = strings.ReplaceAll(tok, ".", "")

	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseArea reads a positive floor area from "75 m²" style text or a bare number.
func parseArea(s string) (int, bool) {
	raw := strings.TrimSpace(s)
	if m := areaPattern.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	if !plainInteger.MatchString(strings.ReplaceAll(raw, ".", "")) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ".", ""))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseBedrooms reads a bedroom count from "2 quartos" style text or a bare number.
func parseBedrooms(s string) (int, bool) {
	raw := strings.TrimSpace(s)
	if m := bedroomsPattern.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	if !plainInteger.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseTitle(s string) (string, bool) {
	return nonEmpty(s)
}

// isAddressSegment accepts digit-free "Bairro, Cidade" text.
func isAddressSegment(seg string) bool {
	return addressSegment.MatchString(seg)
}

// splitAddress splits "Bairro, Cidade[, ...]" on commas. The state is never
// read from text.
func splitAddress(raw, estado string) core.Address {
	addr := core.Address{Bairro: DefaultBairro, Cidade: DefaultCidade, Estado: estado}

	parts := strings.Split(raw, ",")
	if b := collapseSpace(parts[0]); b != "" {
		addr.Bairro = b
	}
	if len(parts) > 1 {
		if c := collapseSpace(stateSuffix.ReplaceAllString(parts[1], "")); c != "" {
			addr.Cidade = c
		}
	}
	return addr
}
