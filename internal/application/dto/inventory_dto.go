package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// UpsertStockRequest body para cargar o reemplazar un lote de stock.
type UpsertStockRequest struct {
	IngredientID string          `json:"ingrediente_id"`
	Quantity     decimal.Decimal `json:"cantidad_disponible"`
	MinThreshold decimal.Decimal `json:"umbral_minimo"`
	Lot          string          `json:"lote"`
	ExpiryDate   time.Time       `json:"fecha_vencimiento"`
}

// StockItemResponse lote de stock con los datos del ingrediente.
type StockItemResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingrediente_id"`
	Name         string          `json:"nombre"`
	Unit         string          `json:"unidad_medida"`
	Supplier     string          `json:"proveedor,omitempty"`
	Quantity     decimal.Decimal `json:"cantidad_disponible"`
	MinThreshold decimal.Decimal `json:"umbral_minimo"`
	Lot          string          `json:"lote"`
	ExpiryDate   time.Time       `json:"fecha_vencimiento"`
}

// ToStockItemResponse mapea el lote a su representación pública.
func ToStockItemResponse(it *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           it.ID,
		IngredientID: it.IngredientID,
		Name:         it.IngredientName,
		Unit:         it.Unit,
		Supplier:     it.Supplier,
		Quantity:     it.Quantity,
		MinThreshold: it.MinThreshold,
		Lot:          it.Lot,
		ExpiryDate:   it.ExpiryDate,
	}
}

// ToStockItemResponses mapea la lista completa.
func ToStockItemResponses(list []*entity.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToStockItemResponse(it))
	}
	return out
}

// EntryRequest body para registrar una entrada de stock.
type EntryRequest struct {
	IngredientID string          `json:"ingrediente_id"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Reason       string          `json:"motivo"`
	Reference    string          `json:"referencia"`
	Lot          string          `json:"lote"`
}

// ExitRequest body para registrar una salida de stock.
type ExitRequest struct {
	IngredientID string          `json:"ingrediente_id"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Reason       string          `json:"motivo"`
	Reference    string          `json:"referencia"`
}

// MovementResponse asiento del libro de movimientos.
type MovementResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingrediente_id"`
	Name         string          `json:"nombre,omitempty"`
	Unit         string          `json:"unidad_medida,omitempty"`
	Type         string          `json:"tipo"`
	Reason       string          `json:"motivo,omitempty"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Reference    string          `json:"referencia,omitempty"`
	Actor        string          `json:"usuario,omitempty"`
	Lot          string          `json:"lote,omitempty"`
	CreatedAt    time.Time       `json:"fecha"`
}

// ToMovementResponse mapea el movimiento a su representación pública.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		Name:         m.IngredientName,
		Unit:         m.Unit,
		Type:         m.Type,
		Reason:       m.Reason,
		Quantity:     m.Quantity,
		Reference:    m.Reference,
		Actor:        m.Actor,
		Lot:          m.Lot,
		CreatedAt:    m.CreatedAt,
	}
}

// ToMovementResponses mapea la lista completa.
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ExitResponse salida registrada con el detalle de lotes consumidos.
type ExitResponse struct {
	Movement MovementResponse        `json:"movimiento"`
	Lots     []entity.LotConsumption `json:"lotes_consumidos"`
}
