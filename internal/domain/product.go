package domain

// Product represents a farm goods listing in the catalog
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    *string
	IsActive    bool
	UserID      int64 // Администратор, опубликовавший товар

	User *User
}

// ProductsFilter фильтр для публичного списка товаров
type ProductsFilter struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Search   *string // Поиск по name/description
	Limit    int
	Offset   int
}
