package favorites

import "errors"

var (
	// ErrFavoriteNotFound возвращается, когда запись избранного не найдена
	ErrFavoriteNotFound = errors.New("favorites: favorite not found")

	// ErrItemNotFound возвращается, когда товар или активность не найдены или неактивны
	ErrItemNotFound = errors.New("favorites: item not found or inactive")

	// ErrAlreadyFavorited возвращается при повторном добавлении того же элемента
	ErrAlreadyFavorited = errors.New("favorites: item already favorited")

	// ErrAccessDenied возвращается при попытке удалить чужую запись
	ErrAccessDenied = errors.New("favorites: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("favorites: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("favorites: internal error")
)
