package zone

import "errors"

var (
	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("zone.repository: zone not found")

	// ErrDuplicateName возвращается, когда зона с таким именем уже существует
	ErrDuplicateName = errors.New("zone.repository: zone name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("zone.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("zone.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("zone.repository: failed to scan row")
)
