package models

// All returns the models of every back-office table in dependency order
func All() []any {
	return []any{
		&UserModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderProductModel{},
	}
}
