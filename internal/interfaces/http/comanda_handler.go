package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// ComandaHandler ciclo de vida de la comanda: apertura, ítems, pago, cancelación y recibo.
type ComandaHandler struct {
	uc *comanda.UseCase
}

// NewComandaHandler construye el handler.
func NewComandaHandler(uc *comanda.UseCase) *ComandaHandler {
	return &ComandaHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir comanda na mesa
// @Tags         comandas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID da mesa"
// @Success      201  {object}  dto.ComandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mesas/{id}/comandas [post]
func (h *ComandaHandler) Open(c *fiber.Ctx) error {
	tableID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.OpenComanda(c.UserContext(), tableID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar comandas
// @Tags         comandas
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "aberta | paga | cancelada"
// @Success      200  {array}   dto.ComandaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/comandas [get]
func (h *ComandaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter comanda com itens
// @Tags         comandas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID da comanda"
// @Success      200  {object}  dto.ComandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comandas/{id} [get]
func (h *ComandaHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar item à comanda
// @Description  Com política merge, produto e observação iguais somam na mesma linha.
// @Tags         comandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID da comanda"
// @Param        body  body  dto.AddItemRequest  true  "produto_id, quantidade, observacoes"
// @Success      200   {object}  dto.ComandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comandas/{id}/itens [post]
func (h *ComandaHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddLineItem(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remover item da comanda
// @Tags         comandas
// @Security     Bearer
// @Produce      json
// @Param        id       path  int  true  "ID da comanda"
// @Param        item_id  path  int  true  "ID do item"
// @Success      200  {object}  dto.ComandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/comandas/{id}/itens/{item_id} [delete]
func (h *ComandaHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RemoveLineItem(c.UserContext(), id, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Fechar e pagar comanda
// @Description  Baixa o estoque de todos os itens, grava as vendas e libera a mesa numa única transação.
// @Tags         comandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID da comanda"
// @Param        body  body  dto.PaymentRequest  true  "valor_pago, forma_pagamento"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/comandas/{id}/pagamento [post]
func (h *ComandaHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CloseAndPay(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar comanda
// @Tags         comandas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID da comanda"
// @Success      200  {object}  dto.ComandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/comandas/{id}/cancelamento [post]
func (h *ComandaHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo da comanda em PDF
// @Tags         comandas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID da comanda"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comandas/{id}/recibo.pdf [get]
func (h *ComandaHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="comanda-%d.pdf"`, id))
	return c.Send(pdf)
}
