package chain

import (
	"regexp"
	"strings"
)

// Tag identifies the blockchain family of a token address.
type Tag string

const (
	Ethereum Tag = "Ethereum"
	Solana   Tag = "Solana"
	Binance  Tag = "Binance"
	Polygon  Tag = "Polygon"
	Unknown  Tag = "Unknown"
)

var (
	evmPattern     = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	solanaPattern  = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
	binancePattern = regexp.MustCompile(`^[a-zA-Z0-9]{42}$`)
)

// Detect identifies the blockchain family of an address by its shape.
// Patterns are checked in a fixed order; the first match wins.
func Detect(address string) Tag {
	address = strings.TrimSpace(address)

	if evmPattern.MatchString(address) {
		return Ethereum
	}
	if solanaPattern.MatchString(address) {
		return Solana
	}
	if binancePattern.MatchString(address) {
		return Binance
	}
	// Polygon addresses share the 0x+40-hex shape with Ethereum, so the
	// Ethereum arm above always wins and this one never fires. The shape
	// alone cannot tell the two chains apart; kept to mirror the
	// advertised chain list.
	if evmPattern.MatchString(address) {
		return Polygon
	}

	return Unknown
}

// IsSupportedAddress is the validation gate in front of the analysis
// pipeline. It accepts only EVM (0x+40 hex) and Solana base58 shapes.
// Note this is narrower than Detect: Binance-shaped addresses are
// recognized there but rejected here.
func IsSupportedAddress(address string) bool {
	address = strings.TrimSpace(address)
	return evmPattern.MatchString(address) || solanaPattern.MatchString(address)
}
