package table

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table.repository: table not found")

	// ErrDuplicateNumber возвращается при попытке создать второй стол с тем же номером
	ErrDuplicateNumber = errors.New("table.repository: table number already exists")

	// ErrZoneReference возвращается, когда zone_id ссылается на несуществующую зону
	ErrZoneReference = errors.New("table.repository: zone does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("table.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("table.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("table.repository: failed to scan row")
)
