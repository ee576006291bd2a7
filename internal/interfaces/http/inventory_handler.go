package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
)

// InventoryHandler entradas de stock, ledger de movimientos y lista de reposición.
type InventoryHandler struct {
	stock    *inventory.StockUseCase
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, lowStock: lowStock}
}

// Restock godoc
// @Summary      Registrar entrada de insumo
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID do insumo"
// @Param        body  body  dto.RestockRequest  true  "quantidade > 0, referencia"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/entradas [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stock.Restock(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Movimentos de estoque do insumo
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID do insumo"
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/movimentos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.stock.ListMovements(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Lista de reposição
// @Description  Insumos abaixo do estoque mínimo com a quantidade sugerida de compra,
//
//	ordenados pelo déficit relativo.
//
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/insumos/estoque-baixo [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.lowStock.GenerateList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
