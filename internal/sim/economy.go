package sim

import "math"

// Economy and promotion constants.
const (
	incomeStepSeconds = 10.0 // income rate steps up every 10s of match time
	promotionStride   = 10.0 // meters of credit per promotion
	promotionFactor   = 1.1  // compounding damage multiplier per promotion
	queuedMoveBonus   = 0.10 // extra credit per pending move node behind the head
)

// accrueIncome advances each player's photon pool. Income is applied
// continuously (rate × dt), not in discrete one-second jumps.
func (s *State) accrueIncome(dt float64) {
	rate := math.Floor(s.Elapsed/incomeStepSeconds) + 1
	for _, p := range s.Players {
		p.IncomeRate = rate
		p.Photons += rate * dt
	}
}

// creditDistance accumulates promotion credit for d meters of commanded
// movement. Pending move nodes behind the head each add 10% bonus credit.
// Every full stride compounds the damage multiplier; excess carries over.
// Returns the number of promotions earned this call.
func (u *Unit) creditDistance(d float64) int {
	if d <= 0 {
		return 0
	}
	u.DistanceTraveled += d
	u.distanceCredit += d * (1 + queuedMoveBonus*float64(u.Queue.PendingMoves()))
	promos := 0
	for u.distanceCredit >= promotionStride {
		u.distanceCredit -= promotionStride
		u.DamageMultiplier *= promotionFactor
		promos++
	}
	return promos
}
