package model

// Berth is a physical dock resource. Capacities are in tonnes and costs in yen.
type Berth struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	PortName              string `json:"port_name"`
	MaxCapacity           int64  `json:"max_capacity"`
	DailyHandlingCapacity int64  `json:"daily_handling_capacity"`
	DailyCost             int64  `json:"daily_cost"`
}

// NewBerth builds a Berth and rejects reference data the scheduler cannot use.
func NewBerth(id, name, port string, maxCapacity, dailyHandling, dailyCost int64) (Berth, error) {
	b := Berth{
		ID:                    id,
		Name:                  name,
		PortName:              port,
		MaxCapacity:           maxCapacity,
		DailyHandlingCapacity: dailyHandling,
		DailyCost:             dailyCost,
	}
	if err := b.Validate(); err != nil {
		return Berth{}, err
	}
	return b, nil
}

// Validate returns a *ConfigurationError when the berth cannot be planned against.
func (b Berth) Validate() error {
	switch {
	case b.ID == "":
		return &ConfigurationError{Field: "berth.id", Reason: "must not be empty"}
	case b.DailyHandlingCapacity <= 0:
		return &ConfigurationError{Field: "berth[" + b.ID + "].daily_handling_capacity", Reason: "must be positive"}
	case b.MaxCapacity <= 0:
		return &ConfigurationError{Field: "berth[" + b.ID + "].max_capacity", Reason: "must be positive"}
	case b.DailyCost < 0:
		return &ConfigurationError{Field: "berth[" + b.ID + "].daily_cost", Reason: "must not be negative"}
	}
	return nil
}

// HandlingDays returns the whole days needed to handle qty tonnes, never less than one.
func (b Berth) HandlingDays(qty int64) int {
	days := (qty + b.DailyHandlingCapacity - 1) / b.DailyHandlingCapacity
	if days < 1 {
		days = 1
	}
	return int(days)
}
