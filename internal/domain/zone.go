package domain

import "time"

// Zone is a named spatial grouping of tables
// Tables reference zones; a zone never owns them by containment
type Zone struct {
	ID        int64
	Name      string
	Type      Location
	Position  Position
	Size      Size
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Tables is the derived back-reference, filled by read paths only
	Tables []*Table
}

// ZonePatch частичное обновление зоны
type ZonePatch struct {
	Name     *string
	Type     *Location
	Position *Position
	Size     *Size
	Color    *string
}
