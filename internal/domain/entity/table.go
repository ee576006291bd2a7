package entity

import "time"

// Estados de mesa (valores persistidos en mesas.status).
const (
	TableStatusAvailable = "disponivel"
	TableStatusOccupied  = "ocupada"
	TableStatusReserved  = "reservada"
)

// Table representa una mesa del salón.
type Table struct {
	ID        int64
	Number    int
	Capacity  int
	Location  string
	Status    string
	CreatedAt time.Time
}
