package ledger

import "github.com/invorya/stockledger-api/internal/domain/entity"

// ProjectedMovement es un movimiento anotado con la cantidad que tenía el item
// inmediatamente después de aplicarse ese movimiento.
type ProjectedMovement struct {
	Movement      *entity.StockMovement
	QuantityAfter int64
}

// Project reconstruye el saldo corrido de una página de movimientos ordenada
// de más nuevo a más viejo. anchor es la cantidad del item inmediatamente
// después del movimiento más nuevo de la página: la cantidad viva del item
// para la página 1, o la continuación devuelta por la página anterior.
//
// Recorre la página deshaciendo cada delta: la fila i reporta el anchor actual
// como "cantidad después de este movimiento" y luego el anchor retrocede
// restando el delta. Devuelve la página anotada y la continuación (el anchor
// para la página siguiente; tras la última página, la cantidad previa al
// movimiento más antiguo del item).
//
// Función pura. Precondición no verificable: las páginas deben pedirse en
// orden estrictamente newest-first y sin reordenar; de lo contrario los
// saldos históricos salen mal en silencio.
func Project(movements []*entity.StockMovement, anchor int64) ([]ProjectedMovement, int64) {
	out := make([]ProjectedMovement, 0, len(movements))
	running := anchor
	for _, m := range movements {
		out = append(out, ProjectedMovement{Movement: m, QuantityAfter: running})
		running -= m.Delta
	}
	return out, running
}
