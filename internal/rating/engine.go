package rating

import "math"

// Rating formula constants
const (
	// KFactor scales the maximum rating change per game
	KFactor = 21

	// Floor is the hard lower bound on any rating
	Floor = 100

	// movScale normalizes margin of victory to a fixed-length 51-point game,
	// so games of different total length compare fairly
	movScale = 51

	// movExponent dampens the margin-of-victory curve
	movExponent = 0.8

	// The MOV divisor is movDivisorBase + movDivisorSlope * eloDiff. For
	// extreme negative rating gaps it crosses zero around eloDiff = -1250.
	movDivisorBase  = 7.5
	movDivisorSlope = 0.006

	// logisticSpan is the rating span of the win-probability curve
	logisticSpan = 400

	// minDivisor bounds the MOV divisor away from zero so extreme rating
	// gaps produce extreme but finite deltas
	minDivisor = 1e-9
)

// Update is the engine's result for one player. It is transient: the caller
// persists NewRating into the player record and discards the Update.
type Update struct {
	Name      string
	NewRating int
	Won       bool
	Delta     int
}

// Adjust computes new ratings for both players of a finished game.
//
// Pure and deterministic: no I/O, no state, safe under unlimited concurrency.
// Scores must be non-negative; a 0-0 game is degenerate and yields mov = 0
// rather than an undefined division. A tie counts as a loss for both sides
// (neither Update has Won set).
func Adjust(p1Name, p2Name string, p1Rating, p2Rating, p1Score, p2Score int) (Update, Update) {
	mov := marginOfVictory(p1Score, p2Score)
	eloDiff := float64(p1Rating - p2Rating)

	u1 := adjustOne(p1Name, p1Rating, eloDiff, mov, p1Score > p2Score)
	u2 := adjustOne(p2Name, p2Rating, -eloDiff, mov, p2Score > p1Score)
	return u1, u2
}

// marginOfVictory normalizes the score gap to the fixed 51-point scale.
// Both scores zero would make the normalization undefined; mov is 0 then.
func marginOfVictory(s1, s2 int) float64 {
	longest := s1
	if s2 > longest {
		longest = s2
	}
	if longest == 0 {
		return 0
	}
	gap := s1 - s2
	if gap < 0 {
		gap = -gap
	}
	return math.Round(float64(gap) * movScale / float64(longest))
}

func adjustOne(name string, rating int, eloDiff, mov float64, won bool) Update {
	divisor := movDivisorBase + movDivisorSlope*eloDiff
	if math.Abs(divisor) < minDivisor {
		divisor = math.Copysign(minDivisor, divisor)
	}
	movFactor := math.Pow(mov, movExponent) / divisor

	expected := 1 / (1 + math.Pow(10, -eloDiff/logisticSpan))

	actual := 0.0
	if won {
		actual = 1
	}

	delta := int(math.Round(KFactor * movFactor * (actual - expected)))

	newRating := rating + delta
	if newRating < Floor {
		newRating = Floor
	}

	return Update{
		Name:      name,
		NewRating: newRating,
		Won:       won,
		Delta:     delta,
	}
}
