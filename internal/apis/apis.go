package apis

import "fmt"

// APIError ошибка уровня приложения. Обработчик запроса превращает ее
// в ответ {error, data, message} вместо 500
type APIError struct {
	Err     string `json:"error"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

func NewAPIError(err, data, message string) *APIError {
	return &APIError{Err: err, Data: data, Message: message}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Message)
	}
	return e.Err
}

// ValueError неверное или отсутствующее значение поля; data - имя поля
func ValueError(field, message string) *APIError {
	return NewAPIError("value:invalid", field, message)
}

// ResourceNotFoundError ресурс не найден; data - имя ресурса
func ResourceNotFoundError(field, message string) *APIError {
	return NewAPIError("value:notfound", field, message)
}

func PermissionError(message string) *APIError {
	return NewAPIError("permission:forbidden", "permission", message)
}
