package configuration

// Unlimited disables the price check.
const Unlimited float64 = -1

// PriceStatus summarizes the running total against the ceiling.
type PriceStatus struct {
	// Allowed indicates the total is within the ceiling.
	Allowed bool `json:"allowed"`

	// Limit is the configured ceiling, Unlimited when none is set.
	Limit float64 `json:"limit"`

	// Used is the running total.
	Used float64 `json:"used"`

	// Remaining is the amount left before the ceiling.
	Remaining float64 `json:"remaining"`

	// Overage is the amount above the ceiling.
	Overage float64 `json:"overage"`

	// Percentage is Used/Limit (0.0-1.0+).
	Percentage float64 `json:"percentage"`

	// AlertTriggered indicates the alert threshold was reached.
	AlertTriggered bool `json:"alert_triggered"`
}

// PriceStatus returns the price status of the state. alertThreshold is a
// fraction (0.0-1.0) of the ceiling; 0 disables alerting.
func (s *State) PriceStatus(alertThreshold float64) *PriceStatus {
	used := s.Total()
	if s.limit == Unlimited {
		return &PriceStatus{Allowed: true, Limit: Unlimited, Used: used}
	}

	percentage := used / s.limit
	return &PriceStatus{
		Allowed:        used <= s.limit,
		Limit:          s.limit,
		Used:           used,
		Remaining:      max(0, s.limit-used),
		Overage:        max(0, used-s.limit),
		Percentage:     percentage,
		AlertTriggered: alertThreshold > 0 && percentage >= alertThreshold,
	}
}

// normalizeLimit maps every value <= -1 to Unlimited and rejects values
// that are neither positive nor Unlimited.
func normalizeLimit(limit float64) (float64, error) {
	switch {
	case limit > 0:
		return limit, nil
	case limit <= Unlimited:
		return Unlimited, nil
	default:
		return 0, ErrInvalidPriceLimit
	}
}
