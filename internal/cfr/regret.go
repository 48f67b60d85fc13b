package cfr

// RegretMatcher turns accumulated counterfactual regrets into a probability
// distribution over actions. Positive regrets are matched proportionally;
// with no positive regret the strategy is uniform. Accumulated strategy sums
// give the average strategy, which is what converges toward equilibrium.
type RegretMatcher struct {
	regretSum   []float64
	strategySum []float64
	normalizing float64
}

// NewRegretMatcher creates a matcher for the given action count.
func NewRegretMatcher(arity int) *RegretMatcher {
	if arity <= 0 {
		panic("cfr: regret matcher needs at least one action")
	}
	return &RegretMatcher{
		regretSum:   make([]float64, arity),
		strategySum: make([]float64, arity),
	}
}

// Arity is the number of actions the matcher covers.
func (m *RegretMatcher) Arity() int {
	return len(m.regretSum)
}

// Strategy returns the current regret-matching distribution.
func (m *RegretMatcher) Strategy() []float64 {
	strat := make([]float64, len(m.regretSum))
	total := 0.0
	for i, r := range m.regretSum {
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	if total <= 0 {
		uniform := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = uniform
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// Update accumulates a regret vector and the strategy that produced it.
// Accumulated regret sums are clamped at zero.
func (m *RegretMatcher) Update(regrets, strategy []float64, reachWeight float64) {
	for i := range m.regretSum {
		m.regretSum[i] += regrets[i]
		if m.regretSum[i] < 0 {
			m.regretSum[i] = 0
		}
		m.strategySum[i] += reachWeight * strategy[i]
	}
	m.normalizing += reachWeight
}

// AverageStrategy returns the normalized average of all strategies played,
// uniform before any update.
func (m *RegretMatcher) AverageStrategy() []float64 {
	strat := make([]float64, len(m.strategySum))
	if m.normalizing <= 0 {
		uniform := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = uniform
		}
		return strat
	}
	for i := range strat {
		strat[i] = m.strategySum[i] / m.normalizing
	}
	return strat
}
