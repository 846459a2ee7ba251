package admission

import "fmt"

const (
	msgMissingFields       = "не заполнены обязательные поля"
	msgInvalidPartySize    = "количество гостей должно быть от %d до %d"
	msgInvalidEmail        = "некорректный email"
	msgInvalidDateOrTime   = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgPastDate            = "нельзя создать бронирование на прошедшее время"
	msgNoCapacityRule      = "для этого дня не заданы правила вместимости"
	msgClosedOnThisDay     = "ресторан не работает в этот день"
	msgOutsideHours        = "бронирование вне часов работы ресторана (с %s до %s)"
	msgReservationLimit    = "на этот день больше нет мест: достигнут лимит бронирований"
	msgGuestLimit          = "на этот день больше нет мест: достигнут лимит гостей"
	msgAdvanceNoticeFormat = "бронирование возможно не менее чем за %d %s"
	msgTooFarFormat        = "нельзя бронировать более чем за %d %s"
)

func advanceNoticeMessage(hours int) string {
	return fmt.Sprintf(msgAdvanceNoticeFormat, hours, pluralRu(hours, "час", "часа", "часов"))
}

func tooFarInAdvanceMessage(days int) string {
	return fmt.Sprintf(msgTooFarFormat, days, pluralRu(days, "день", "дня", "дней"))
}

// pluralRu выбирает форму слова для числа: 1 час, 2 часа, 5 часов, 11 часов, 21 час
func pluralRu(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	n %= 100
	if n >= 11 && n <= 19 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}
