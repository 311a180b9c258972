package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Vessel is an arriving ship. Its cargo list is fixed at construction so the
// total quantity always equals the sum of the line items.
type Vessel struct {
	ID          string
	Name        string
	Capacity    int64
	ArrivalDate time.Time
	OriginPort  string

	cargos []Cargo
	total  int64
}

// NewVessel validates the cargo list and derives the total quantity.
// The arrival date is truncated to its UTC calendar day.
func NewVessel(id, name string, capacity int64, arrival time.Time, origin string, cargos []Cargo) (Vessel, error) {
	if id == "" {
		return Vessel{}, &ValidationError{Field: "vessel.id", Reason: "must not be empty"}
	}
	if len(cargos) == 0 {
		return Vessel{}, &ValidationError{Field: "vessel[" + id + "].cargos", Reason: "must not be empty"}
	}
	var total int64
	for i, c := range cargos {
		if c.Quantity <= 0 {
			return Vessel{}, &ValidationError{
				Field:  fmt.Sprintf("vessel[%s].cargos[%d].quantity", id, i),
				Reason: "must be positive",
			}
		}
		total += c.Quantity
	}
	return Vessel{
		ID:          id,
		Name:        name,
		Capacity:    capacity,
		ArrivalDate: Day(arrival),
		OriginPort:  origin,
		cargos:      append([]Cargo(nil), cargos...),
		total:       total,
	}, nil
}

// Cargos returns a copy of the cargo line items.
func (v Vessel) Cargos() []Cargo { return append([]Cargo(nil), v.cargos...) }

// TotalQuantity is the sum of all cargo quantities.
func (v Vessel) TotalQuantity() int64 { return v.total }

// Validate reports vessels that were not built through NewVessel.
func (v Vessel) Validate() error {
	if v.ID == "" {
		return &ValidationError{Field: "vessel.id", Reason: "must not be empty"}
	}
	if len(v.cargos) == 0 || v.total <= 0 {
		return &ValidationError{Field: "vessel[" + v.ID + "].cargos", Reason: "vessel carries no cargo"}
	}
	return nil
}

type vesselJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Capacity      int64   `json:"capacity"`
	ArrivalDate   string  `json:"arrival_date"`
	OriginPort    string  `json:"origin_port"`
	Cargos        []Cargo `json:"cargos"`
	TotalQuantity int64   `json:"total_quantity"`
}

func (v Vessel) MarshalJSON() ([]byte, error) {
	return json.Marshal(vesselJSON{
		ID:            v.ID,
		Name:          v.Name,
		Capacity:      v.Capacity,
		ArrivalDate:   v.ArrivalDate.Format(DateLayout),
		OriginPort:    v.OriginPort,
		Cargos:        v.Cargos(),
		TotalQuantity: v.total,
	})
}

// UnmarshalJSON goes through NewVessel so the total is recomputed; a
// serialized total_quantity is ignored.
func (v *Vessel) UnmarshalJSON(b []byte) error {
	var raw vesselJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	arrival, err := ParseDate(raw.ArrivalDate)
	if err != nil {
		return err
	}
	out, err := NewVessel(raw.ID, raw.Name, raw.Capacity, arrival, raw.OriginPort, raw.Cargos)
	if err != nil {
		return err
	}
	*v = out
	return nil
}
