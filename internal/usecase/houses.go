package usecase

import (
	"strconv"

	"TrueArk/internal/domain/models"
)

// DeriveHouses builds the Whole Sign house table from the Ascendant's sign
// index. House 1 takes the Ascendant's sign; house n takes the sign at cyclic
// offset n-1. Cusp degrees play no role: each house occupies one entire sign.
//
// The Ascendant must already be normalized; this function has no failure path
// of its own and always returns a complete 12-entry table.
func DeriveHouses(ascSignIndex int) map[string]string {
	houses := make(map[string]string, 12)
	for n := 1; n <= 12; n++ {
		houses[strconv.Itoa(n)] = models.SignAt(ascSignIndex + n - 1)
	}
	return houses
}
