package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para líneas de orden.
type OrderRepository interface {
	Create(item *entity.OrderItem) error
	GetByID(id string) (*entity.OrderItem, error)
	// ListByOrderID devuelve todas las líneas de una misma orden.
	ListByOrderID(orderID string) ([]*entity.OrderItem, error)
	List(limit, offset int) ([]*entity.OrderItem, error)
	// UpdateStockStatus actualiza el estado del paso de inventario de la saga.
	UpdateStockStatus(id, status string) error
	// UpdateStatus actualiza el estado de entrega de todas las líneas de la orden.
	UpdateStatus(orderID, status string) error
}
