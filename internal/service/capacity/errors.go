package capacity

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("capacity: activity not found")

	// ErrCapacityExceeded возвращается, когда резервирование превысило бы max_capacity
	ErrCapacityExceeded = errors.New("capacity: not enough spots available")

	// ErrInternal возвращается при внутренних ошибках ledger-а
	ErrInternal = errors.New("capacity: internal error")
)
