package migrations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

// Имена ограничений, на которые опираются репозитории при разборе ошибок
const (
	ConstraintActiveTableSlot = "uq_reservations_active_table_slot"
	ConstraintTableNumber     = "restaurant_tables_number_key"
	ConstraintZoneName        = "zones_name_key"
)

// schemaSQL идемпотентная схема БД.
// Частичный уникальный индекс по (стол, дата, время) для активных статусов
// не дает двум активным бронированиям занять один стол независимо от уровня изоляции
const schemaSQL = `
CREATE TABLE IF NOT EXISTS zones (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(100) NOT NULL,
    type        VARCHAR(20)  NOT NULL,
    position_x  INTEGER      NOT NULL DEFAULT 0,
    position_y  INTEGER      NOT NULL DEFAULT 0,
    width       INTEGER      NOT NULL,
    height      INTEGER      NOT NULL,
    color       VARCHAR(20)  NOT NULL DEFAULT '#f3f4f6',
    created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    CONSTRAINT zones_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS restaurant_tables (
    id            BIGSERIAL PRIMARY KEY,
    number        INTEGER     NOT NULL,
    capacity      INTEGER     NOT NULL CHECK (capacity >= 1),
    location      VARCHAR(20) NOT NULL,
    is_available  BOOLEAN     NOT NULL DEFAULT TRUE,
    status        VARCHAR(20) NOT NULL DEFAULT 'available',
    position_x    INTEGER     NOT NULL DEFAULT 0,
    position_y    INTEGER     NOT NULL DEFAULT 0,
    width         INTEGER     NOT NULL DEFAULT 60,
    height        INTEGER     NOT NULL DEFAULT 60,
    shape         VARCHAR(20) NOT NULL DEFAULT 'square',
    zone_id       BIGINT      REFERENCES zones (id) ON DELETE SET NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT restaurant_tables_number_key UNIQUE (number)
);

CREATE INDEX IF NOT EXISTS idx_restaurant_tables_zone_id ON restaurant_tables (zone_id);

CREATE TABLE IF NOT EXISTS reservations (
    id                BIGSERIAL PRIMARY KEY,
    customer_name     VARCHAR(200) NOT NULL,
    customer_email    VARCHAR(200) NOT NULL,
    customer_phone    VARCHAR(50)  NOT NULL,
    reservation_at    TIMESTAMPTZ  NOT NULL,
    reservation_date  DATE         NOT NULL,
    reservation_time  VARCHAR(5)   NOT NULL,
    party_size        INTEGER      NOT NULL CHECK (party_size BETWEEN 1 AND 20),
    table_id          BIGINT       REFERENCES restaurant_tables (id) ON DELETE SET NULL,
    status            VARCHAR(20)  NOT NULL DEFAULT 'pending',
    special_requests  TEXT,
    created_at        TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reservations_reservation_at ON reservations (reservation_at);
CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations (created_at DESC);

CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_table_slot
    ON reservations (table_id, reservation_date, reservation_time)
    WHERE table_id IS NOT NULL AND status IN ('pending', 'confirmed');

CREATE TABLE IF NOT EXISTS restaurant_settings (
    id          SMALLINT    PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    data        JSONB       NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate применяет схему
func Migrate(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrations: apply schema: %w", err)
	}
	return nil
}

// Schema возвращает SQL схемы (для вывода командой migrate --print)
func Schema() string {
	return schemaSQL
}
