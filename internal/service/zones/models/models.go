package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableModels "github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
)

// Request модели

// CreateZoneRequest запрос на создание зоны
type CreateZoneRequest struct {
	Name     string           `json:"name" validate:"required,max=100"`
	Type     string           `json:"type" validate:"required,oneof=interior terraza exterior privado"`
	Position *domain.Position `json:"position,omitempty"`
	Size     Size             `json:"size" validate:"required"`
	Color    string           `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateZoneRequest частичное обновление зоны
type UpdateZoneRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type     *string          `json:"type,omitempty" validate:"omitempty,oneof=interior terraza exterior privado"`
	Position *domain.Position `json:"position,omitempty"`
	Size     *Size            `json:"size,omitempty"`
	Color    *string          `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Size размеры зоны на схеме зала
type Size struct {
	Width  int `json:"width" validate:"gte=1"`
	Height int `json:"height" validate:"gte=1"`
}

// ToDomainPatch конвертирует запрос в domain.ZonePatch
func (r *UpdateZoneRequest) ToDomainPatch() domain.ZonePatch {
	patch := domain.ZonePatch{
		Name:     r.Name,
		Position: r.Position,
		Color:    r.Color,
	}
	if r.Type != nil {
		t := domain.Location(*r.Type)
		patch.Type = &t
	}
	if r.Size != nil {
		patch.Size = &domain.Size{Width: r.Size.Width, Height: r.Size.Height}
	}
	return patch
}

// Response модели

// ZoneResponse ответ с данными зоны
type ZoneResponse struct {
	ID        int64                        `json:"id"`
	Name      string                       `json:"name"`
	Type      string                       `json:"type"`
	Position  domain.Position              `json:"position"`
	Size      domain.Size                  `json:"size"`
	Color     string                       `json:"color"`
	Tables    []*tableModels.TableResponse `json:"tables"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

// FromDomainZone конвертирует domain.Zone в ZoneResponse
func FromDomainZone(z *domain.Zone) *ZoneResponse {
	return &ZoneResponse{
		ID:        z.ID,
		Name:      z.Name,
		Type:      string(z.Type),
		Position:  z.Position,
		Size:      z.Size,
		Color:     z.Color,
		Tables:    tableModels.FromDomainTableList(z.Tables),
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}
