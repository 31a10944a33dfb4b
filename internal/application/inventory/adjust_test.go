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

func TestAdjustQuantity_DeltaPositivoSinTipoSeInfierePurchase(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)

	mov, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  10,
		Reason: "Reposición de proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.Equal(t, int64(10), mov.Delta)

	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(15), a.Quantity)
}

func TestAdjustQuantity_DeltaNegativoSinTipoSeInfiereAdjustment(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)

	mov, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  -3,
		Reason: "Rotura en depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)

	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(2), a.Quantity)
}

func TestAdjustQuantity_TipoExplicitoValidoGana(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)

	mov, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  4,
		Reason: "Devolución manual",
		Type:   entity.MovementTypeReturn,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeReturn, mov.Type)
}

func TestAdjustQuantity_TipoInvalidoCaeEnInferencia(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)

	mov, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  2,
		Reason: "Conteo físico",
		Type:   "lo-que-sea",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
}

func TestAdjustQuantity_NegativoInsuficienteNoAplica(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 2, 0)

	_, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  -5,
		Reason: "Merma",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(2), a.Quantity)
	assert.Empty(t, movs.byItem("owner-1", "item-a"))
}

func TestAdjustQuantity_ItemInexistenteEsNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	_, err := uc.AdjustQuantity(context.Background(), "owner-1", "no-existe", dto.AdjustItemRequest{
		Delta:  -1,
		Reason: "Merma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustQuantity_DeltaCeroEsInvalido(t *testing.T) {
	uc, items, _, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)

	_, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Reason: "Nada",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustQuantity_FalloDeMovimientoRevierteLaCantidad(t *testing.T) {
	uc, items, movs, _ := newTestUseCase()
	seedItem(items, "owner-1", "item-a", "SKU-A", 5, 0)
	movs.failCreateAt = 0

	_, err := uc.AdjustQuantity(context.Background(), "owner-1", "item-a", dto.AdjustItemRequest{
		Delta:  3,
		Reason: "Reposición",
	})
	require.Error(t, err)

	a, _ := items.GetByID("owner-1", "item-a")
	assert.Equal(t, int64(5), a.Quantity)
	assert.Empty(t, movs.byItem("owner-1", "item-a"))
}
