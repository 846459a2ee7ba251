package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RejectionResponse тело ответа с отказом по бизнес-правилу
type RejectionResponse struct {
	Error   string         `json:"error"`
	Reason  string         `json:"reason"`
	Details map[string]any `json:"details,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondInternalError скрывает детали внутренней ошибки от клиента
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondNoContent отправляет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondRejection отправляет отказ с кодом причины и деталями
func RespondRejection(w http.ResponseWriter, rej *domain.Rejection) {
	message := rej.Message
	if message == "" {
		message = rej.Kind.Error()
	}
	RespondJSON(w, RejectionStatus(rej), RejectionResponse{
		Error:   message,
		Reason:  rej.Reason,
		Details: rej.Details,
	})
}

// RejectionStatus HTTP статус отказа: ошибки ввода и ссылка на несуществующий стол - 400,
// конфликты правил - 409
func RejectionStatus(rej *domain.Rejection) int {
	if admission.IsClientError(rej) || errors.Is(rej, assignment.ErrTableNotFound) {
		return http.StatusBadRequest
	}
	return http.StatusConflict
}

// DecodeJSON декодирует тело запроса, неизвестные поля игнорируются
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// PathID извлекает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}
