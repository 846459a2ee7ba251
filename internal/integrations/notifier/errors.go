package notifier

import "errors"

var (
	// ErrRender возвращается при ошибке подготовки текста уведомления
	ErrRender = errors.New("notifier: failed to render message")

	// ErrNoRecipient возвращается, когда у бронирования нет email
	ErrNoRecipient = errors.New("notifier: reservation has no email")

	// ErrPublish возвращается при ошибке доставки сообщения в канал
	ErrPublish = errors.New("notifier: failed to publish message")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза уведомлений
	ErrInvalidResponse = errors.New("notifier: invalid gateway response")
)
