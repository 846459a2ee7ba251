package domain

import "time"

// Location is a location tag shared by tables, zones and reservation preferences
type Location string

const (
	LocationInterior Location = "interior"
	LocationTerraza  Location = "terraza"
	LocationExterior Location = "exterior"
	LocationPrivado  Location = "privado"
	// LocationAny is only meaningful as a reservation preference
	LocationAny Location = "any"
)

// IsValid reports whether l is a concrete location (LocationAny excluded)
func (l Location) IsValid() bool {
	switch l {
	case LocationInterior, LocationTerraza, LocationExterior, LocationPrivado:
		return true
	}
	return false
}

// TableShape is presentation-only
type TableShape string

const (
	ShapeSquare    TableShape = "square"
	ShapeRectangle TableShape = "rectangle"
	ShapeCircle    TableShape = "circle"
)

func (s TableShape) IsValid() bool {
	return s == ShapeSquare || s == ShapeRectangle || s == ShapeCircle
}

// TableStatus is the floor state driven by reservation lifecycle effects
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableReserved  TableStatus = "reserved"
	TableOccupied  TableStatus = "occupied"
)

// Position on the floor plan
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size on the floor plan
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Table represents a physical table
type Table struct {
	ID          int64
	Number      int
	Capacity    int
	Location    Location
	IsAvailable bool // manual flag, independent of bookings
	Status      TableStatus
	Position    Position
	Size        Size
	Shape       TableShape
	ZoneID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits returns true if the table seats the party and matches the preferred location
func (t *Table) Fits(partySize int, preferred Location) bool {
	if t.Capacity < partySize {
		return false
	}
	return preferred == "" || preferred == LocationAny || t.Location == preferred
}

// TableFilter фильтр для выборки столов
type TableFilter struct {
	Location      *Location
	MinCapacity   *int
	AvailableOnly bool
	ZoneID        *int64
}

// TablePatch частичное обновление стола
type TablePatch struct {
	Number      *int
	Capacity    *int
	IsAvailable *bool
	Position    *Position
	Size        *Size
	Shape       *TableShape
	Location    *Location
	ZoneID      *int64
	ClearZone   bool // явный null для zoneId
}

// IsEmpty returns true if the patch changes nothing
func (p *TablePatch) IsEmpty() bool {
	return p.Number == nil && p.Capacity == nil && p.IsAvailable == nil && p.Position == nil &&
		p.Size == nil && p.Shape == nil && p.Location == nil && p.ZoneID == nil && !p.ClearZone
}
