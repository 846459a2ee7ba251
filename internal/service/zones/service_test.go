package zones

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	zoneRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/zone"
	"github.com/m04kA/SMC-ReservationService/internal/service/zones/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type txKey struct{}

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

type recordingTx struct {
	calls int
}

func (r *recordingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

type fakeZones struct {
	zones    map[int64]*domain.Zone
	deleted  []int64
	lockedTx []bool
}

func (f *fakeZones) Create(_ context.Context, z *domain.Zone) (*domain.Zone, error) {
	for _, existing := range f.zones {
		if existing.Name == z.Name {
			return nil, zoneRepo.ErrDuplicateName
		}
	}
	z.ID = int64(len(f.zones) + 1)
	f.zones[z.ID] = z
	return z, nil
}

func (f *fakeZones) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	f.lockedTx = append(f.lockedTx, inTx(ctx))
	z, ok := f.zones[id]
	if !ok {
		return nil, zoneRepo.ErrZoneNotFound
	}
	return z, nil
}

func (f *fakeZones) List(context.Context) ([]*domain.Zone, error) {
	out := make([]*domain.Zone, 0, len(f.zones))
	for id := int64(1); id <= int64(len(f.zones)); id++ {
		if z, ok := f.zones[id]; ok {
			out = append(out, z)
		}
	}
	return out, nil
}

func (f *fakeZones) Update(_ context.Context, id int64, patch domain.ZonePatch) (*domain.Zone, error) {
	z, ok := f.zones[id]
	if !ok {
		return nil, zoneRepo.ErrZoneNotFound
	}
	if patch.Name != nil {
		z.Name = *patch.Name
	}
	if patch.Color != nil {
		z.Color = *patch.Color
	}
	return z, nil
}

func (f *fakeZones) Delete(_ context.Context, id int64) error {
	if _, ok := f.zones[id]; !ok {
		return zoneRepo.ErrZoneNotFound
	}
	delete(f.zones, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTables struct {
	tables    []*domain.Table
	err       error
	countedTx []bool
}

func (f *fakeTables) List(_ context.Context, filter domain.TableFilter) ([]*domain.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Table, 0)
	for _, t := range f.tables {
		if filter.ZoneID != nil && (t.ZoneID == nil || *t.ZoneID != *filter.ZoneID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTables) CountByZone(ctx context.Context, zoneID int64) (int, error) {
	f.countedTx = append(f.countedTx, inTx(ctx))
	tables, err := f.List(ctx, domain.TableFilter{ZoneID: &zoneID})
	return len(tables), err
}

func TestService_Create(t *testing.T) {
	svc := NewService(&fakeZones{zones: map[int64]*domain.Zone{}}, &fakeTables{}, &recordingTx{}, nopLogger{})

	created, err := svc.Create(context.Background(), &models.CreateZoneRequest{
		Name: " Terraza ",
		Type: "terraza",
		Size: models.Size{Width: 400, Height: 300},
	})
	require.NoError(t, err)
	assert.Equal(t, "Terraza", created.Name)
	assert.Equal(t, domain.DefaultZoneColor, created.Color)
	assert.Empty(t, created.Tables)

	_, err = svc.Create(context.Background(), &models.CreateZoneRequest{Name: "Terraza", Type: "terraza", Size: models.Size{Width: 1, Height: 1}})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = svc.Create(context.Background(), &models.CreateZoneRequest{Name: "Roof", Type: "any", Size: models.Size{Width: 1, Height: 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAndGet_BackReference(t *testing.T) {
	zones := &fakeZones{zones: map[int64]*domain.Zone{
		1: {ID: 1, Name: "Salon", Type: domain.LocationInterior},
		2: {ID: 2, Name: "Terraza", Type: domain.LocationTerraza},
	}}
	tables := &fakeTables{tables: []*domain.Table{
		{ID: 10, Number: 1, ZoneID: ptr.Ptr(int64(1))},
		{ID: 11, Number: 2, ZoneID: ptr.Ptr(int64(1))},
		{ID: 12, Number: 3},
	}}
	svc := NewService(zones, tables, &recordingTx{}, nopLogger{})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Tables, 2)
	assert.Empty(t, list[1].Tables)

	zone, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, zone.Tables, 2)

	_, err = svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestService_Delete(t *testing.T) {
	zones := &fakeZones{zones: map[int64]*domain.Zone{
		1: {ID: 1, Name: "Salon"},
		2: {ID: 2, Name: "Terraza"},
	}}
	tables := &fakeTables{tables: []*domain.Table{
		{ID: 10, ZoneID: ptr.Ptr(int64(1))},
		{ID: 11, ZoneID: ptr.Ptr(int64(1))},
	}}
	svc := NewService(zones, tables, &recordingTx{}, nopLogger{})

	err := svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ErrZoneNotEmpty)
	var notEmpty *NotEmptyError
	require.True(t, errors.As(err, &notEmpty))
	assert.Equal(t, 2, notEmpty.TablesCount)
	assert.Empty(t, zones.deleted)

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), ErrZoneNotFound)
}

func TestService_Delete_CountsTablesUnderZoneLock(t *testing.T) {
	zones := &fakeZones{zones: map[int64]*domain.Zone{3: {ID: 3, Name: "Barra"}}}
	tables := &fakeTables{}
	tx := &recordingTx{}
	svc := NewService(zones, tables, tx, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 3))

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []bool{true}, zones.lockedTx, "zone row is read inside the transaction")
	assert.Equal(t, []bool{true}, tables.countedTx)
	assert.Equal(t, []int64{3}, zones.deleted)
}

func TestService_Delete_CountFailure(t *testing.T) {
	zones := &fakeZones{zones: map[int64]*domain.Zone{3: {ID: 3, Name: "Barra"}}}
	svc := NewService(zones, &fakeTables{err: errors.New("connection reset")}, &recordingTx{}, nopLogger{})

	assert.ErrorIs(t, svc.Delete(context.Background(), 3), ErrInternal)
	assert.Empty(t, zones.deleted)
}

func TestService_Update(t *testing.T) {
	zones := &fakeZones{zones: map[int64]*domain.Zone{1: {ID: 1, Name: "Salon"}}}
	svc := NewService(zones, &fakeTables{}, &recordingTx{}, nopLogger{})

	updated, err := svc.Update(context.Background(), 1, &models.UpdateZoneRequest{Color: ptr.Ptr("#ffffff")})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", updated.Color)

	_, err = svc.Update(context.Background(), 1, &models.UpdateZoneRequest{Name: ptr.Ptr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 7, &models.UpdateZoneRequest{Color: ptr.Ptr("#ffffff")})
	assert.ErrorIs(t, err, ErrZoneNotFound)
}
