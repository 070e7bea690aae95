// Package models contains the GORM persistence models for the back-office tables.
// Domain entities stay free of ORM tags; each model carries a ToDomain method and a
// XModelFromDomain constructor, and repositories only talk to the database through
// these types.
//
// Tables:
//   - users: UserModel
//   - products: ProductModel
//   - orders / order_products: OrderModel, OrderProductModel
package models
