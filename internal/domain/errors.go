package domain

import "errors"

var (
	// ErrPersistence оборачивает любую ошибку хранилища (соединение, ограничения, синтаксис).
	ErrPersistence = errors.New("persistence failure")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrder: у заказа не заполнены поля, обязательные для записи.
	ErrInvalidOrder = errors.New("invalid order")
)

// IsPersistence проверяет, пришла ли ошибка из слоя хранения.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
