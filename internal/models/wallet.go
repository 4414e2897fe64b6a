package models

import "strings"

const (
	AddressPrefix = "0x"
	AddressLength = 42
)

// HasAddressPrefix is the loose check used on play requests.
func HasAddressPrefix(address string) bool {
	return strings.HasPrefix(address, AddressPrefix)
}

// ValidateWalletAddress checks shape only: prefix and length. The hex body is
// not inspected.
func ValidateWalletAddress(address string) error {
	if !HasAddressPrefix(address) || len(address) != AddressLength {
		return Invalid("Invalid wallet address format")
	}
	return nil
}
