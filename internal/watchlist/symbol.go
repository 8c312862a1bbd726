package watchlist

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrConflict means the (user, symbol) pair is already on the watchlist.
	ErrConflict = errors.New("watchlist: entry already exists")
	// ErrNotFound means the referenced user profile does not exist and could
	// not be created from the available identity claims.
	ErrNotFound = errors.New("watchlist: user not found")
	// ErrInvalidSymbol means the symbol failed ticker validation.
	ErrInvalidSymbol = errors.New("watchlist: invalid symbol")
)

// tickerPattern accepts 1-10 uppercase alphanumerics, with '.' and '-'
// allowed after the first character (BRK.B, RDS-A).
var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.-]{0,9}$`)

// NormalizeSymbol upper-cases a ticker and validates it against the
// conservative ticker grammar. All store lookups and keys use the
// normalized form.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !tickerPattern.MatchString(s) {
		return "", ErrInvalidSymbol
	}
	return s, nil
}
