package domain

// Result — единый конверт исхода бизнес-операции. Ожидаемые нарушения
// бизнес-правил (валидация, отсутствующие сущности) выражаются как
// Fail с сообщением; исключения для них не используются. Инфраструктурные
// сбои идут отдельным error-каналом и в Result не заворачиваются.
type Result[T any] struct {
	value T
	err   string
	ok    bool
}

// Ok создаёт успешный результат со значением.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail создаёт отказ с человекочитаемым сообщением.
func Fail[T any](message string) Result[T] {
	return Result[T]{err: message}
}

// IsSuccess сообщает, завершилась ли операция успешно.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value возвращает полезную нагрузку успешного результата.
// Для отказа возвращается нулевое значение типа.
func (r Result[T]) Value() T {
	return r.value
}

// ErrorMessage возвращает сообщение отказа; пустая строка для успеха.
func (r Result[T]) ErrorMessage() string {
	return r.err
}
