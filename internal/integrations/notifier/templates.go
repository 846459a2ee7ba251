package notifier

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
)

const confirmationBody = `Здравствуйте, {{.Name}}!

{{if eq .Status "confirmed"}}Ваше бронирование подтверждено.{{else}}Мы получили вашу заявку на бронирование и скоро подтвердим её.{{end}}

Дата: {{.Date}}
Время: {{.Time}}
Гостей: {{.PartySize}}{{if .TableNumber}}
Стол: №{{.TableNumber}}{{end}}{{if .SpecialRequests}}
Пожелания: {{.SpecialRequests}}{{end}}

{{.Restaurant.Name}}{{if .Restaurant.Phone}}, тел. {{.Restaurant.Phone}}{{end}}{{if .Restaurant.Address}}
{{.Restaurant.Address}}{{end}}
`

const reminderBody = `Здравствуйте, {{.Name}}!

Напоминаем о вашем бронировании {{.Date}} в {{.Time}} на {{.PartySize}} чел.

Если планы изменились, пожалуйста, сообщите нам{{if .Restaurant.Phone}} по телефону {{.Restaurant.Phone}}{{end}}.

{{.Restaurant.Name}}
`

var (
	subjects = map[lifecycle.NotificationType]*template.Template{
		lifecycle.NotificationConfirmation: template.Must(template.New("confirmation_subject").Parse("Бронирование в {{.Restaurant.Name}}")),
		lifecycle.NotificationReminder:     template.Must(template.New("reminder_subject").Parse("Напоминание о бронировании в {{.Restaurant.Name}}")),
	}

	bodies = map[lifecycle.NotificationType]*template.Template{
		lifecycle.NotificationConfirmation: template.Must(template.New("confirmation").Parse(confirmationBody)),
		lifecycle.NotificationReminder:     template.Must(template.New("reminder").Parse(reminderBody)),
	}
)

type templateData struct {
	Name            string
	Date            string
	Time            string
	PartySize       int
	Status          string
	TableNumber     int
	SpecialRequests string
	Restaurant      struct{ Name, Email, Phone, Address string }
}

// Render готовит сообщение по типу уведомления
func Render(req Request, now time.Time) (*Message, error) {
	if req.Reservation == nil {
		return nil, fmt.Errorf("%w: no reservation", ErrRender)
	}
	res := req.Reservation
	if strings.TrimSpace(res.CustomerEmail) == "" {
		return nil, ErrNoRecipient
	}

	msg := &Message{
		ID:              uuid.NewString(),
		Type:            string(req.Type),
		ReservationID:   res.ID,
		To:              res.CustomerEmail,
		CustomerName:    res.CustomerName,
		RestaurantEmail: req.Restaurant.Email,
		CreatedAt:       now.UTC(),
	}

	if req.Type == lifecycle.NotificationCustom {
		if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
			return nil, fmt.Errorf("%w: custom message requires subject and body", ErrRender)
		}
		msg.Subject = req.Subject
		msg.Body = req.Body
		return msg, nil
	}

	body, ok := bodies[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrRender, req.Type)
	}

	data := templateData{
		Name:      res.CustomerName,
		Date:      res.ReservationDate,
		Time:      res.ReservationTime.String(),
		PartySize: res.PartySize,
		Status:    string(res.Status),
	}
	// номер стола известен только вызывающему коду
	data.TableNumber = req.TableNumber
	if res.SpecialRequests != nil {
		data.SpecialRequests = *res.SpecialRequests
	}
	data.Restaurant.Name = req.Restaurant.Name
	data.Restaurant.Email = req.Restaurant.Email
	data.Restaurant.Phone = req.Restaurant.Phone
	data.Restaurant.Address = req.Restaurant.Address
	if data.Restaurant.Name == "" {
		data.Restaurant.Name = "ресторан"
	}

	subject, err := execute(subjects[req.Type], data)
	if err != nil {
		return nil, err
	}
	text, err := execute(body, data)
	if err != nil {
		return nil, err
	}

	msg.Subject = subject
	msg.Body = text
	return msg, nil
}

func execute(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}
