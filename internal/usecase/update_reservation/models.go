package update_reservation

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на редактирование бронирования
type Request struct {
	ID      int64
	Changes domain.ReservationChanges
}

// Response модель ответа с обновленным бронированием
type Response struct {
	Reservation *domain.Reservation
	Table       *domain.Table // nil, если у бронирования нет стола
}
