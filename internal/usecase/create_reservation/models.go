package create_reservation

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Channel           domain.SourceChannel      // Канал, из которого пришла заявка
	CustomerName      string                    // Имя гостя
	CustomerEmail     string                    // Email гостя
	CustomerPhone     string                    // Телефон гостя
	PartySize         int                       // Количество гостей
	Date              string                    // Дата (YYYY-MM-DD)
	Time              string                    // Время (HH:MM)
	TableID           *int64                    // Явно выбранный стол (опционально)
	PreferredLocation domain.Location           // Предпочтительная зона (опционально)
	SpecialRequests   *string                   // Пожелания гостя (опционально)
	Status            *domain.ReservationStatus // Начальный статус, учитывается только для dashboard
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Table       *domain.Table
}
