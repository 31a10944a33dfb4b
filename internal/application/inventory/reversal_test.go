package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
)

func TestReverseSaleMovement_RestauraStockConDeltaInverso(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 20, 0)

	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		CustomerName: "Luis Pérez",
		Lines:        []dto.SaleLine{{SKU: "SKU-A", Quantity: 5}},
	}))
	sale := movs.byItem("owner-1", "item-a")[0]

	a, _ := items.GetByID("owner-1", "item-a")
	require.Equal(t, int64(15), a.Quantity)

	rev, err := uc.ReverseSaleMovement(context.Background(), "owner-1", sale.ID, "")
	require.NoError(t, err)

	a, _ = items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(20), a.Quantity)

	assert.Equal(t, entity.MovementTypeReturn, rev.Type)
	assert.Equal(t, int64(5), rev.Delta)
	assert.Equal(t, "Luis Pérez", rev.CustomerName)

	// El ledger conserva ambos asientos: la venta no se borra al revertirse.
	assert.Len(t, movs.byItem("owner-1", "item-a"), 2)
}

func TestReverseSaleMovement_RazonPorDefectoReferenciaLaFechaOriginal(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 10, 0)

	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		Lines: []dto.SaleLine{{SKU: "SKU-A", Quantity: 2}},
	}))
	sale := movs.byItem("owner-1", "item-a")[0]

	rev, err := uc.ReverseSaleMovement(context.Background(), "owner-1", sale.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Devolución de venta del "+time.Now().Format("2006-01-02"), rev.Reason)

	rev2Item := seedItem(items, "owner-1", "item-b", "SKU-B", 10, 0)
	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		Lines: []dto.SaleLine{{SKU: "SKU-B", Quantity: 1}},
	}))
	sale2 := movs.byItem("owner-1", rev2Item.ID)[0]

	rev2, err := uc.ReverseSaleMovement(context.Background(), "owner-1", sale2.ID, "Cliente arrepentido")
	require.NoError(t, err)
	assert.Equal(t, "Cliente arrepentido", rev2.Reason)
}

func TestReverseSaleMovement_SoloVentasSonReversibles(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 10, 0)

	adj, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  -2,
		Reason: "Merma",
	})
	require.NoError(t, err)

	_, err = uc.ReverseSaleMovement(context.Background(), "owner-1", adj.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotReversible)

	// Nada tocado: ni cantidad ni ledger.
	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(8), a.Quantity)
	assert.Len(t, movs.byItem("owner-1", "item-a"), 1)
}

func TestReverseSaleMovement_MovimientoInexistenteEsNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	_, err := uc.ReverseSaleMovement(context.Background(), "owner-1", "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseSaleMovement_MovimientoDeOtroDuenoEsNotFound(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 10, 0)
	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		Lines: []dto.SaleLine{{SKU: "SKU-A", Quantity: 1}},
	}))
	sale := movs.byItem("owner-1", "item-a")[0]

	_, err := uc.ReverseSaleMovement(context.Background(), "owner-2", sale.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseSaleMovement_ItemBorradoDespuesDeLaVenta(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 10, 0)
	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		Lines: []dto.SaleLine{{SKU: "SKU-A", Quantity: 1}},
	}))
	sale := movs.byItem("owner-1", "item-a")[0]

	// El movimiento sobrevive fuera de la cascada para simular la carrera
	// borrado-vs-reversa sobre el asiento todavía visible.
	require.NoError(t, items.Delete("owner-1", "item-a"))

	_, err := uc.ReverseSaleMovement(context.Background(), "owner-1", sale.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
