package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un error de dominio; la capa HTTP lo traduce a un status.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindStorage     Kind = "storage"
	KindConsistency Kind = "consistency"
)

// Error es un error de dominio con código estable para los clientes.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput         = newError(KindValidation, "INVALID_INPUT", "entrada inválida")
	ErrEmptyCart            = newError(KindValidation, "EMPTY_CART", "carrinho de compras vazio")
	ErrInvalidQuantity      = newError(KindValidation, "INVALID_QUANTITY", "quantidade deve ser maior que zero")
	ErrInvalidPaymentMethod = newError(KindValidation, "INVALID_PAYMENT_METHOD", "forma de pagamento inválida")

	ErrProductNotFound     = newError(KindNotFound, "PRODUCT_NOT_FOUND", "produto não encontrado")
	ErrIngredientNotFound  = newError(KindNotFound, "INGREDIENT_NOT_FOUND", "insumo não encontrado")
	ErrTableNotFound       = newError(KindNotFound, "TABLE_NOT_FOUND", "mesa não encontrada")
	ErrComandaNotFound     = newError(KindNotFound, "COMANDA_NOT_FOUND", "comanda não encontrada")
	ErrItemNotFound        = newError(KindNotFound, "ITEM_NOT_FOUND", "item não encontrado na comanda")
	ErrRecipeEntryNotFound = newError(KindNotFound, "RECIPE_ENTRY_NOT_FOUND", "item de ficha técnica não encontrado")

	ErrMissingRecipe        = newError(KindConflict, "MISSING_RECIPE", "produto sem ficha técnica cadastrada")
	ErrInsufficientStock    = newError(KindConflict, "INSUFFICIENT_STOCK", "estoque insuficiente")
	ErrTableAlreadyOccupied = newError(KindConflict, "TABLE_ALREADY_OCCUPIED", "mesa já possui comanda aberta")
	ErrTableNotAvailable    = newError(KindConflict, "TABLE_NOT_AVAILABLE", "mesa não está disponível")
	ErrComandaNotOpen       = newError(KindConflict, "COMANDA_NOT_OPEN", "comanda não está aberta")
	ErrComandaEmpty         = newError(KindConflict, "COMANDA_EMPTY", "comanda sem itens")
	ErrInsufficientPayment  = newError(KindConflict, "INSUFFICIENT_PAYMENT", "valor pago menor que o total")
	ErrIngredientInUse      = newError(KindConflict, "INGREDIENT_IN_USE", "insumo utilizado em ficha técnica")
	ErrDuplicate            = newError(KindConflict, "DUPLICATE", "recurso duplicado")

	ErrStorage              = newError(KindStorage, "STORAGE_FAILURE", "falha de armazenamento")
	ErrConsistencyViolation = newError(KindConsistency, "CONSISTENCY_VIOLATION", "violação de consistência")
)

// DetailError agrega detalle legible y campos estructurados a un error de dominio.
// errors.Is(err, domain.ErrX) sigue funcionando contra el sentinel.
type DetailError struct {
	Err    *Error
	Detail string
	Fields map[string]any
	Cause  error
}

func (e *DetailError) Error() string {
	msg := e.Err.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DetailError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Detailed construye un DetailError sobre un sentinel.
func Detailed(base *Error, fields map[string]any, format string, args ...any) *DetailError {
	return &DetailError{Err: base, Detail: fmt.Sprintf(format, args...), Fields: fields}
}

// MissingRecipe: el producto vendido no tiene entradas en ficha_tecnica.
func MissingRecipe(productID int64) error {
	return Detailed(ErrMissingRecipe, map[string]any{"product_id": productID},
		"produto ID %d sem ficha técnica cadastrada", productID)
}

// IngredientNotFound: la ficha técnica referencia un insumo inexistente.
func IngredientNotFound(ingredientID int64) error {
	return Detailed(ErrIngredientNotFound, map[string]any{"ingredient_id": ingredientID},
		"insumo ID %d não encontrado", ingredientID)
}

// ProductNotFound producto inexistente.
func ProductNotFound(productID int64) error {
	return Detailed(ErrProductNotFound, map[string]any{"product_id": productID},
		"produto ID %d não encontrado", productID)
}

// InsufficientStock lleva nombre del insumo, requerido y disponible para diagnóstico.
func InsufficientStock(ingredientID int64, name, required, available string) error {
	return Detailed(ErrInsufficientStock, map[string]any{
		"ingredient_id":   ingredientID,
		"ingredient_name": name,
		"required":        required,
		"available":       available,
	}, "insumo %q. Necessário: %s, Disponível: %s", name, required, available)
}

// InsufficientPayment monto entregado menor que el total de la comanda.
func InsufficientPayment(total, tendered string) error {
	return Detailed(ErrInsufficientPayment, map[string]any{"total": total, "amount_tendered": tendered},
		"total %s, valor pago %s", total, tendered)
}

// Consistency marca una invariante rota detectada después de escribir.
func Consistency(fields map[string]any, format string, args ...any) error {
	return Detailed(ErrConsistencyViolation, fields, format, args...)
}

// Storage envuelve una falla de infraestructura. Si err ya es un error de dominio se devuelve tal cual.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &DetailError{Err: ErrStorage, Cause: err}
}

// KindOf devuelve la categoría de err; errores desconocidos cuentan como storage.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

// CodeOf devuelve el código estable de err.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrStorage.Code
}

// FieldsOf devuelve los campos estructurados si err es un DetailError.
func FieldsOf(err error) map[string]any {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}
