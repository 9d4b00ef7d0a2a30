package domain

import "fmt"

// FavoriteType discriminates what kind of item was favorited
type FavoriteType string

const (
	FavoriteProduct  FavoriteType = "product"
	FavoriteActivity FavoriteType = "activity"
)

// ParseFavoriteType validates and converts a raw item type string
func ParseFavoriteType(s string) (FavoriteType, error) {
	switch FavoriteType(s) {
	case FavoriteProduct, FavoriteActivity:
		return FavoriteType(s), nil
	default:
		return "", fmt.Errorf("unknown favorite item type %q", s)
	}
}

// Favorite represents a user's bookmark of a product or activity
// Пара (user_id, item_id, item_type) уникальна
type Favorite struct {
	ID       int64
	UserID   int64
	ItemID   int64
	ItemType FavoriteType

	// Ровно одно из полей заполняется при гидрации списка избранного
	Product  *Product
	Activity *Activity
}
