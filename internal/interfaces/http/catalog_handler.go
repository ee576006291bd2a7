package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/catalog"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// CatalogHandler alta de insumos, productos, fichas técnicas y mesas.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListIngredients godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.IngredientResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/insumos [get]
func (h *CatalogHandler) ListIngredients(c *fiber.Ctx) error {
	out, err := h.uc.ListIngredients(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetIngredient godoc
// @Summary      Obter insumo
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do insumo"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [get]
func (h *CatalogHandler) GetIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetIngredient(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateIngredient godoc
// @Summary      Cadastrar insumo
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngredientRequest  true  "nome, unidade_medida, estoque_atual, estoque_minimo"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/insumos [post]
func (h *CatalogHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateIngredient(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateIngredient godoc
// @Summary      Atualizar insumo
// @Description  Altera nome, unidade e estoque mínimo. O saldo só muda por entradas e vendas.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID do insumo"
// @Param        body  body  dto.UpdateIngredientRequest  true  "campos a alterar"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [put]
func (h *CatalogHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateIngredient(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteIngredient godoc
// @Summary      Excluir insumo
// @Tags         insumos
// @Security     Bearer
// @Param        id   path  int  true  "ID do insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [delete]
func (h *CatalogHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteIngredient(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListProducts godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Router       /api/produtos [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obter produto
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "nome, preco_venda > 0"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRecipe godoc
// @Summary      Ficha técnica do produto
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do produto"
// @Success      200  {array}   dto.RecipeEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/ficha-tecnica [get]
func (h *CatalogHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetRecipe(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddRecipeEntry godoc
// @Summary      Adicionar insumo à ficha técnica
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecipeEntryRequest  true  "produto_id, insumo_id, quantidade_necessaria > 0"
// @Success      201   {object}  dto.RecipeEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fichas-tecnicas [post]
func (h *CatalogHandler) AddRecipeEntry(c *fiber.Ctx) error {
	var in dto.RecipeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddRecipeEntry(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveRecipeEntry godoc
// @Summary      Remover item da ficha técnica
// @Tags         produtos
// @Security     Bearer
// @Param        id   path  int  true  "ID do item da ficha"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fichas-tecnicas/{id} [delete]
func (h *CatalogHandler) RemoveRecipeEntry(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.RemoveRecipeEntry(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTables godoc
// @Summary      Listar mesas
// @Tags         mesas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.TableResponse
// @Router       /api/mesas [get]
func (h *CatalogHandler) ListTables(c *fiber.Ctx) error {
	out, err := h.uc.ListTables(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTable godoc
// @Summary      Cadastrar mesa
// @Tags         mesas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "numero, capacidade, localizacao"
// @Success      201   {object}  dto.TableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mesas [post]
func (h *CatalogHandler) CreateTable(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateTable(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReserveTable godoc
// @Summary      Reservar mesa
// @Tags         mesas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID da mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mesas/{id}/reserva [post]
func (h *CatalogHandler) ReserveTable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Reserve(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReleaseTable godoc
// @Summary      Liberar reserva da mesa
// @Tags         mesas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID da mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mesas/{id}/reserva [delete]
func (h *CatalogHandler) ReleaseTable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ReleaseReservation(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
