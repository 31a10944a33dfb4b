package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
)

func TestCreateItem_ConCantidadInicialRegistraMovimientoInitial(t *testing.T) {
	uc, _, movs, _ := newTestUseCase()

	item, err := uc.CreateItem(context.Background(), "owner-1", dto.CreateItemRequest{
		SKU: "SKU-A", Name: "Tornillos", Quantity: 12, LowStockThreshold: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), item.Quantity)
	assert.Equal(t, entity.ItemStatusActive, item.Status)

	ledger := movs.byItem("owner-1", item.ID)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.MovementTypeInitial, ledger[0].Type)
	assert.Equal(t, int64(12), ledger[0].Delta)
}

func TestCreateItem_ConCantidadCeroNoRegistraMovimiento(t *testing.T) {
	uc, _, movs, _ := newTestUseCase()

	item, err := uc.CreateItem(context.Background(), "owner-1", dto.CreateItemRequest{
		SKU: "SKU-A", Name: "Tornillos",
	})
	require.NoError(t, err)
	assert.Empty(t, movs.byItem("owner-1", item.ID))
}

func TestCreateItem_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.CreateItem(context.Background(), "owner-1", dto.CreateItemRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(context.Background(), "owner-1", dto.CreateItemRequest{
		SKU: "SKU-A", Name: "Negativo", Quantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_NuncaTocaLaCantidad(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 9, 2)

	name := "Tornillos galvanizados"
	threshold := int64(5)
	updated, err := uc.UpdateItem(context.Background(), "owner-1", "item-a", dto.UpdateItemRequest{
		Name:              &name,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillos galvanizados", updated.Name)
	assert.Equal(t, int64(5), updated.LowStockThreshold)
	assert.Equal(t, int64(9), updated.Quantity)

	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(9), a.Quantity)
}

func TestGetItem_DeOtroDuenoEsNotFound(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 9, 2)

	_, err := uc.GetItem(context.Background(), "owner-2", "item-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteItem_BorraEnCascadaSusMovimientos(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	item, err := uc.CreateItem(context.Background(), "owner-1", dto.CreateItemRequest{
		SKU: "SKU-A", Name: "Tornillos", Quantity: 10,
	})
	require.NoError(t, err)
	require.NoError(t, uc.RecordSale(context.Background(), "owner-1", dto.RecordSaleRequest{
		Lines: []dto.SaleLine{{SKU: "SKU-A", Quantity: 2}},
	}))
	require.Len(t, movs.byItem("owner-1", item.ID), 2)

	require.NoError(t, uc.DeleteItem(context.Background(), "owner-1", item.ID))

	got, _ := items.GetByID("owner-1", item.ID)
	assert.Nil(t, got)
	assert.Empty(t, movs.byItem("owner-1", item.ID))
}

func TestDeleteItem_InexistenteEsNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	err := uc.DeleteItem(context.Background(), "owner-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
