// Package identity parses FiveM player identifier lists and converts
// hex-encoded Steam IDs into profile URLs.
package identity

import (
	"fmt"
	"strings"
)

// SteamProfileBase is the prefix of a public Steam community profile URL.
const SteamProfileBase = "https://steamcommunity.com/profiles/"

// HexToDecimal converts a hexadecimal string of arbitrary length to its
// decimal string representation. Steam-derived identifiers exceed 64 bits,
// so the conversion works over a little-endian decimal digit slice instead
// of fixed-width integers: each input digit multiplies the accumulator by 16
// and adds itself, carrying overflow into new digit positions.
func HexToDecimal(hex string) (string, error) {
	if hex == "" {
		return "", fmt.Errorf("identity: empty hex string")
	}

	digits := []int{0}
	for i := 0; i < len(hex); i++ {
		carry, err := hexDigit(hex[i])
		if err != nil {
			return "", err
		}

		for j := 0; j < len(digits); j++ {
			digits[j] = digits[j]*16 + carry
			carry = digits[j] / 10
			digits[j] %= 10
		}
		for carry > 0 {
			digits = append(digits, carry%10)
			carry /= 10
		}
	}

	var sb strings.Builder
	sb.Grow(len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(byte('0' + digits[i]))
	}

	return sb.String(), nil
}

// hexDigit returns the numeric value of a single hex character.
func hexDigit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	default:
		return 0, fmt.Errorf("identity: invalid hex character %q", c)
	}
}

// Extract returns the value after the first ':' of the first identifier
// tagged with the given prefix, or "" and false when none match.
// Matching is case-sensitive and first-match-wins in input order.
func Extract(identifiers []string, prefix string) (string, bool) {
	tag := prefix + ":"
	for _, id := range identifiers {
		if strings.HasPrefix(id, tag) {
			return id[len(tag):], true
		}
	}

	return "", false
}

// SteamProfileURL derives the Steam community profile URL from a player's
// identifier list. Returns "" and false when the player carries no usable
// steam identifier.
func SteamProfileURL(identifiers []string) (string, bool) {
	hexID, ok := Extract(identifiers, "steam")
	if !ok {
		return "", false
	}

	decID, err := HexToDecimal(hexID)
	if err != nil {
		return "", false
	}

	return SteamProfileBase + decID, true
}

// DiscordID returns the player's Discord snowflake, if present.
func DiscordID(identifiers []string) (string, bool) {
	return Extract(identifiers, "discord")
}

// PlayerIP returns the player's connection address, if present.
func PlayerIP(identifiers []string) (string, bool) {
	return Extract(identifiers, "ip")
}
