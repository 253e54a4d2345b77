// Package numbering compacts sorted address lists into readable house number
// ranges, e.g. "Silodam 1A–465B".
package numbering

import (
	"fmt"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

// UnknownAddressError means an address was queried that is not part of the
// universe the Compactor was built with. This is a caller bug.
type UnknownAddressError struct {
	Address domain.Address
}

func (e *UnknownAddressError) Error() string {
	return fmt.Sprintf("unknown address: %s (%s, %s) is not in the address universe",
		e.Address, e.Address.Locality, e.Address.Neighborhood)
}
