package usecase

import (
	"strconv"
	"testing"

	"TrueArk/internal/domain/models"
)

func TestDeriveHousesCyclicLaw(t *testing.T) {
	for asc := 0; asc < 12; asc++ {
		houses := DeriveHouses(asc)
		if len(houses) != 12 {
			t.Fatalf("asc index %d: %d houses, want 12", asc, len(houses))
		}
		for n := 1; n <= 12; n++ {
			want := models.ZodiacSigns[(asc+n-1)%12]
			got := houses[strconv.Itoa(n)]
			if got != want {
				t.Fatalf("asc index %d house %d: %s, want %s", asc, n, got, want)
			}
		}
	}
}

func TestDeriveHousesFromSagittarius(t *testing.T) {
	houses := DeriveHouses(models.SignIndex("Sagittarius"))
	if houses["1"] != "Sagittarius" {
		t.Fatalf("house 1 = %s, want Sagittarius", houses["1"])
	}
	if houses["2"] != "Capricorn" {
		t.Fatalf("house 2 = %s, want Capricorn", houses["2"])
	}
	if houses["7"] != "Gemini" {
		t.Fatalf("house 7 = %s, want Gemini", houses["7"])
	}
	if houses["10"] != "Virgo" {
		t.Fatalf("house 10 = %s, want Virgo", houses["10"])
	}
}
