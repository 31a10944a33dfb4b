package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"       // venta: delta negativo
	MovementTypeReturn     = "return"     // devolución: delta positivo
	MovementTypeAdjustment = "adjustment" // ajuste manual: delta con cualquier signo
	MovementTypePurchase   = "purchase"   // compra / reposición: delta positivo
	MovementTypeInitial    = "initial"    // alta del item: delta positivo
)

// ValidMovementType indica si t es uno de los cinco tipos permitidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypeReturn, MovementTypeAdjustment,
		MovementTypePurchase, MovementTypeInitial:
		return true
	}
	return false
}

// StockMovement es una fila inmutable del ledger: registra un cambio de
// cantidad ya confirmado sobre un Item. No tiene UpdatedAt: los movimientos
// nunca se editan, solo se borran por compensación o por cascada del item.
type StockMovement struct {
	ID           string
	OwnerID      string
	ItemID       string
	Type         string
	Delta        int64 // firmado; igual al cambio de cantidad que ocurrió
	CustomerName string
	Reason       string
	CreatedAt    time.Time
}
