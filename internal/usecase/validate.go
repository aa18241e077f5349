package usecase

import (
	"fmt"
	"strconv"

	"TrueArk/internal/domain/models"
)

// ValidateOutput is the last gate before a chart is considered well-formed.
// It re-derives the Whole Sign mapping independently instead of trusting
// DeriveHouses, so any future drift between the two is caught here. A failure
// is an internal defect, never a user-input problem.
func ValidateOutput(
	bodies map[string]models.BodyPosition,
	angles map[string]models.AnglePosition,
	houses map[string]string,
) error {
	for name, pos := range bodies {
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			return &ValidationError{
				Check:  "longitude-range",
				Entity: name,
				Detail: fmt.Sprintf("longitude %v out of [0, 360)", pos.Longitude),
			}
		}
		if pos.Degree < 0 || pos.Degree >= 30 {
			return &ValidationError{
				Check:  "degree-range",
				Entity: name,
				Detail: fmt.Sprintf("degree %v out of [0, 30)", pos.Degree),
			}
		}
	}

	for name, pos := range angles {
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			return &ValidationError{
				Check:  "longitude-range",
				Entity: name,
				Detail: fmt.Sprintf("longitude %v out of [0, 360)", pos.Longitude),
			}
		}
	}

	asc, ok := angles[models.AngleAscendant]
	if !ok {
		return &ValidationError{Check: "ascendant-present", Entity: models.AngleAscendant, Detail: "missing"}
	}
	ascIndex := models.SignIndex(asc.Sign)
	if ascIndex < 0 {
		return &ValidationError{
			Check:  "ascendant-sign",
			Entity: models.AngleAscendant,
			Detail: fmt.Sprintf("unknown sign %q", asc.Sign),
		}
	}

	if got := houses["1"]; got != asc.Sign {
		return &ValidationError{
			Check:  "house1-ascendant",
			Entity: "house 1",
			Detail: fmt.Sprintf("ascendant is in %s but house 1 is %s", asc.Sign, got),
		}
	}

	for n := 1; n <= 12; n++ {
		want := models.SignAt(ascIndex + n - 1)
		got, ok := houses[strconv.Itoa(n)]
		if !ok {
			return &ValidationError{
				Check:  "house-complete",
				Entity: "house " + strconv.Itoa(n),
				Detail: "missing",
			}
		}
		if got != want {
			return &ValidationError{
				Check:  "whole-sign-order",
				Entity: "house " + strconv.Itoa(n),
				Detail: fmt.Sprintf("expected %s, got %s", want, got),
			}
		}
	}
	return nil
}
