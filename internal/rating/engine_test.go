package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustEvenMatchShutout(t *testing.T) {
	// Equal ratings, 11-0. mov = round(11*51/11) = 51, so
	// movFactor = 51^0.8/7.5 ~= 23.230/7.5 ~= 3.097 for both sides,
	// exp = 0.5 each, delta = round(21 * 3.097 * 0.5) = 33.
	u1, u2 := Adjust("Alice", "Bob", 1600, 1600, 11, 0)

	assert.Equal(t, Update{Name: "Alice", NewRating: 1633, Won: true, Delta: 33}, u1)
	assert.Equal(t, Update{Name: "Bob", NewRating: 1567, Won: false, Delta: -33}, u2)
}

func TestAdjustZeroZeroIsDegenerate(t *testing.T) {
	// Both scores zero leaves the margin-of-victory normalization
	// undefined; policy is mov = 0, so nothing moves.
	u1, u2 := Adjust("Alice", "Bob", 1600, 1600, 0, 0)

	assert.Equal(t, 0, u1.Delta)
	assert.Equal(t, 0, u2.Delta)
	assert.Equal(t, 1600, u1.NewRating)
	assert.Equal(t, 1600, u2.NewRating)
	assert.False(t, u1.Won)
	assert.False(t, u2.Won)
}

func TestAdjustTieCreditsNeitherSide(t *testing.T) {
	u1, u2 := Adjust("Alice", "Bob", 1700, 1500, 7, 7)

	assert.False(t, u1.Won)
	assert.False(t, u2.Won)
	// mov is 0 for any tie, so deltas are zero regardless of the gap
	assert.Equal(t, 0, u1.Delta)
	assert.Equal(t, 0, u2.Delta)
}

func TestAdjustRatingFloor(t *testing.T) {
	// 110 vs 150, 0-11: the loser's raw delta (-30) would take them to 80
	u1, u2 := Adjust("Alice", "Bob", 110, 150, 0, 11)

	assert.Equal(t, -30, u1.Delta)
	assert.Equal(t, 100, u1.NewRating, "rating never drops below the floor")
	assert.False(t, u1.Won)

	assert.Equal(t, 28, u2.Delta)
	assert.Equal(t, 178, u2.NewRating)
	assert.True(t, u2.Won)
}

func TestAdjustMirrorSymmetry(t *testing.T) {
	cases := []struct {
		name           string
		r1, r2, s1, s2 int
	}{
		{"even shutout", 1600, 1600, 11, 0},
		{"favourite wins", 1800, 1400, 11, 7},
		{"upset", 1400, 1800, 11, 9},
		{"tie", 1550, 1700, 5, 5},
		{"scoreless", 1600, 1500, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a1, a2 := Adjust("P1", "P2", tc.r1, tc.r2, tc.s1, tc.s2)
			b2, b1 := Adjust("P2", "P1", tc.r2, tc.r1, tc.s2, tc.s1)

			assert.Equal(t, a1.NewRating, b1.NewRating)
			assert.Equal(t, a1.Delta, b1.Delta)
			assert.Equal(t, a1.Won, b1.Won)
			assert.Equal(t, a2.NewRating, b2.NewRating)
			assert.Equal(t, a2.Delta, b2.Delta)
			assert.Equal(t, a2.Won, b2.Won)
		})
	}
}

func TestAdjustExtremeGapNegativeDivisor(t *testing.T) {
	// Below eloDiff = -1250 the MOV divisor goes negative, flipping the
	// delta sign: a 100-rated player beating a 1600-rated one is computed
	// as a loss for the winner. The formula carries this quirk; the engine
	// just has to produce defined numbers and hold the floor.
	u1, u2 := Adjust("Underdog", "Champ", 100, 1600, 11, 0)

	assert.True(t, u1.Won)
	assert.Negative(t, u1.Delta)
	assert.Equal(t, Floor, u1.NewRating)
	assert.False(t, u2.Won)
	assert.Negative(t, u2.Delta)
}

func TestAdjustDivisorCrossingZeroDoesNotBlowUp(t *testing.T) {
	// eloDiff exactly -1250 makes the raw divisor 0; it is clamped, giving
	// an extreme but defined delta rather than a division failure.
	u1, u2 := Adjust("Low", "High", 350, 1600, 11, 0)

	assert.Positive(t, u1.Delta)
	assert.GreaterOrEqual(t, u1.NewRating, Floor)
	assert.GreaterOrEqual(t, u2.NewRating, Floor)
}

func TestAdjustResultsNeverBelowFloor(t *testing.T) {
	ratings := []int{100, 110, 500, 1600, 2400}
	scores := [][2]int{{11, 0}, {0, 11}, {21, 19}, {3, 2}, {1, 0}}

	for _, r1 := range ratings {
		for _, r2 := range ratings {
			for _, sc := range scores {
				u1, u2 := Adjust("A", "B", r1, r2, sc[0], sc[1])
				assert.GreaterOrEqual(t, u1.NewRating, Floor)
				assert.GreaterOrEqual(t, u2.NewRating, Floor)
			}
		}
	}
}
