package send_notification

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных запроса
	ErrInvalidInput = errors.New("send_notification: invalid input")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("send_notification: reservation not found")

	// ErrNotificationsDisabled возвращается, когда email-уведомления выключены в настройках
	ErrNotificationsDisabled = errors.New("send_notification: email notifications are disabled")

	// ErrDeliveryFailed возвращается, когда канал доставки не принял сообщение
	ErrDeliveryFailed = errors.New("send_notification: delivery failed")

	// ErrRulesUnavailable возвращается, когда настройки ресторана не загружаются
	ErrRulesUnavailable = errors.New("send_notification: settings unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("send_notification: internal error")
)
