package lifecycle

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidTransition возвращается при переходе, которого нет в таблице переходов
	ErrInvalidTransition = errors.New("lifecycle: invalid status transition")

	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = errors.New("lifecycle: invalid status")
)

// transitions допустимые переходы. Из seated и completed отмена невозможна,
// время само по себе статусы не продвигает
var transitions = map[domain.ReservationStatus][]domain.ReservationStatus{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusSeated, domain.StatusCancelled},
	domain.StatusSeated:    {domain.StatusCompleted},
}

// NotificationType тип уведомления гостю
type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationReminder     NotificationType = "reminder"
	NotificationCustom       NotificationType = "custom"
)

func (t NotificationType) IsValid() bool {
	return t == NotificationConfirmation || t == NotificationReminder || t == NotificationCustom
}

// FloorStatuses статусы бронирований, которые занимают стол в зале.
// pending стол не резервирует
var FloorStatuses = []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusSeated}

// Effects работа для внешних участников после смены статуса.
// Состояние стола в зале сюда не входит: оно выводится из всех бронирований стола (FloorStatus)
type Effects struct {
	// Notify уведомление, которое нужно отправить (пусто - не нужно)
	Notify NotificationType
}

// InitialStatus начальный статус нового бронирования.
// Явный статус учитывается только для доверенного канала dashboard;
// внешний канал всегда создает pending, что бы ни пришло в теле запроса
func InitialStatus(channel domain.SourceChannel, explicit *domain.ReservationStatus) (domain.ReservationStatus, error) {
	if channel != domain.ChannelDashboard {
		return domain.StatusPending, nil
	}
	if explicit == nil || *explicit == "" {
		return domain.StatusConfirmed, nil
	}
	if !explicit.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, *explicit)
	}
	return *explicit, nil
}

// CreationEffects эффекты создания: гостю всегда уходит подтверждение получения заявки
func CreationEffects(domain.ReservationStatus) Effects {
	return Effects{Notify: NotificationConfirmation}
}

// Transition проверяет переход и возвращает его эффекты
func Transition(from, to domain.ReservationStatus) (Effects, error) {
	if !from.IsValid() || !to.IsValid() {
		return Effects{}, fmt.Errorf("%w: %q -> %q", ErrInvalidStatus, from, to)
	}
	if !CanTransition(from, to) {
		return Effects{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	var effects Effects
	if to == domain.StatusConfirmed {
		effects.Notify = NotificationConfirmation
	}
	return effects, nil
}

// CanTransition сообщает, разрешен ли переход
func CanTransition(from, to domain.ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets статусы, в которые можно перейти из from
func AllowedTargets(from domain.ReservationStatus) []domain.ReservationStatus {
	targets := transitions[from]
	out := make([]domain.ReservationStatus, len(targets))
	copy(out, targets)
	return out
}

// FloorStatus состояние стола по его бронированиям на текущий день:
// гости за столом - occupied, есть подтвержденное бронирование - reserved, иначе available.
// Бронирования в других статусах не учитываются
func FloorStatus(today []*domain.Reservation) domain.TableStatus {
	status := domain.TableAvailable
	for _, res := range today {
		switch res.Status {
		case domain.StatusSeated:
			return domain.TableOccupied
		case domain.StatusConfirmed:
			status = domain.TableReserved
		}
	}
	return status
}
