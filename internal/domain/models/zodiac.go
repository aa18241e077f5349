package models

// ZodiacSigns is the fixed tropical zodiac in cyclic order. Sign index 0 is
// Aries; every index arithmetic in the engine is modulo this list.
var ZodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignAt returns the sign name at a cyclic index.
func SignAt(index int) string {
	return ZodiacSigns[((index%12)+12)%12]
}

// SignIndex returns the position of a sign name in the zodiac, or -1.
func SignIndex(sign string) int {
	for i, s := range ZodiacSigns {
		if s == sign {
			return i
		}
	}
	return -1
}

// Body identifies a tracked celestial body.
type Body string

const (
	Sun      Body = "Sun"
	Moon     Body = "Moon"
	Mercury  Body = "Mercury"
	Venus    Body = "Venus"
	Mars     Body = "Mars"
	Jupiter  Body = "Jupiter"
	Saturn   Body = "Saturn"
	Uranus   Body = "Uranus"
	Neptune  Body = "Neptune"
	Pluto    Body = "Pluto"
	TrueNode Body = "TrueNode"
)

// TrackedBodies is the fixed body set every chart must contain, in output order.
var TrackedBodies = [11]Body{
	Sun, Moon, Mercury, Venus, Mars,
	Jupiter, Saturn, Uranus, Neptune, Pluto,
	TrueNode,
}

// Angle names, exactly two per chart.
const (
	AngleAscendant = "Ascendant"
	AngleMidheaven = "Midheaven"
)
