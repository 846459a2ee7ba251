package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// ListTablesRequest фильтры списка столов
type ListTablesRequest struct {
	Location    *string
	MinCapacity *int
	Available   *bool
}

// CreateTableRequest запрос на создание стола
type CreateTableRequest struct {
	Number      int              `json:"number" validate:"required,gte=1"`
	Capacity    int              `json:"capacity" validate:"required,gte=1,lte=50"`
	Location    string           `json:"location" validate:"required,oneof=interior terraza exterior privado"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
	Position    *domain.Position `json:"position,omitempty"`
	Size        *Size            `json:"size,omitempty"`
	Shape       string           `json:"shape,omitempty" validate:"omitempty,oneof=square rectangle circle"`
	ZoneID      *int64           `json:"zoneId,omitempty" validate:"omitempty,gte=1"`
}

// UpdateTableRequest частичное обновление стола, передаются только изменяемые поля.
// zoneId: null отвязывает стол от зоны
type UpdateTableRequest struct {
	Number      *int             `json:"number,omitempty" validate:"omitempty,gte=1"`
	Capacity    *int             `json:"capacity,omitempty" validate:"omitempty,gte=1,lte=50"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
	Position    *domain.Position `json:"position,omitempty"`
	Size        *Size            `json:"size,omitempty"`
	Shape       *string          `json:"shape,omitempty" validate:"omitempty,oneof=square rectangle circle"`
	Location    *string          `json:"location,omitempty" validate:"omitempty,oneof=interior terraza exterior privado"`
	ZoneID      NullableInt64    `json:"zoneId"`
}

// Size размеры на схеме зала
type Size struct {
	Width  int `json:"width" validate:"gte=1"`
	Height int `json:"height" validate:"gte=1"`
}

// NullableInt64 различает отсутствующее поле и явный null
type NullableInt64 struct {
	Set   bool
	Value *int64
}

func (n *NullableInt64) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// ToDomainPatch конвертирует запрос в domain.TablePatch
func (r *UpdateTableRequest) ToDomainPatch() domain.TablePatch {
	patch := domain.TablePatch{
		Number:      r.Number,
		Capacity:    r.Capacity,
		IsAvailable: r.IsAvailable,
		Position:    r.Position,
	}
	if r.Size != nil {
		patch.Size = &domain.Size{Width: r.Size.Width, Height: r.Size.Height}
	}
	if r.Shape != nil {
		shape := domain.TableShape(*r.Shape)
		patch.Shape = &shape
	}
	if r.Location != nil {
		location := domain.Location(*r.Location)
		patch.Location = &location
	}
	if r.ZoneID.Set {
		if r.ZoneID.Value == nil {
			patch.ClearZone = true
		} else {
			patch.ZoneID = r.ZoneID.Value
		}
	}
	return patch
}

// Response модели

// TableResponse ответ с данными стола
type TableResponse struct {
	ID          int64           `json:"id"`
	Number      int             `json:"number"`
	Capacity    int             `json:"capacity"`
	Location    string          `json:"location"`
	IsAvailable bool            `json:"isAvailable"`
	Status      string          `json:"status"`
	Position    domain.Position `json:"position"`
	Size        domain.Size     `json:"size"`
	Shape       string          `json:"shape"`
	ZoneID      *int64          `json:"zoneId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FromDomainTable конвертирует domain.Table в TableResponse
func FromDomainTable(t *domain.Table) *TableResponse {
	return &TableResponse{
		ID:          t.ID,
		Number:      t.Number,
		Capacity:    t.Capacity,
		Location:    string(t.Location),
		IsAvailable: t.IsAvailable,
		Status:      string(t.Status),
		Position:    t.Position,
		Size:        t.Size,
		Shape:       string(t.Shape),
		ZoneID:      t.ZoneID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список столов
func FromDomainTableList(tables []*domain.Table) []*TableResponse {
	out := make([]*TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, FromDomainTable(t))
	}
	return out
}
