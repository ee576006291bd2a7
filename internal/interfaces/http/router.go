package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/catalog"
	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/sale"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC     *sale.UseCase
	ComandaUC  *comanda.UseCase
	CatalogUC  *catalog.UseCase
	StockUC    *inventory.StockUseCase
	LowStockUC *inventory.LowStockUseCase
	// JWTSecret vacío deja la API sin autenticación (desarrollo y pruebas).
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}
	role := func(roles ...string) fiber.Handler {
		if deps.JWTSecret == "" {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
		return RequireRole(roles...)
	}
	manage := role(jwt.RoleAdmin, jwt.RoleManager)
	cashier := role(jwt.RoleAdmin, jwt.RoleManager, jwt.RoleCashier)

	saleHandler := NewSaleHandler(deps.SaleUC)
	comandaHandler := NewComandaHandler(deps.ComandaUC)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.LowStockUC)

	// Ventas de mostrador
	vendas := api.Group("/vendas")
	vendas.Post("/", saleHandler.Register)
	vendas.Get("/", saleHandler.List)

	// Insumos y stock (estoque-baixo antes de /:id)
	insumos := api.Group("/insumos")
	insumos.Get("/estoque-baixo", inventoryHandler.LowStock)
	insumos.Get("/", catalogHandler.ListIngredients)
	insumos.Post("/", manage, catalogHandler.CreateIngredient)
	insumos.Get("/:id", catalogHandler.GetIngredient)
	insumos.Put("/:id", manage, catalogHandler.UpdateIngredient)
	insumos.Delete("/:id", manage, catalogHandler.DeleteIngredient)
	insumos.Post("/:id/entradas", manage, inventoryHandler.Restock)
	insumos.Get("/:id/movimentos", inventoryHandler.Movements)

	// Produtos y fichas técnicas
	produtos := api.Group("/produtos")
	produtos.Get("/", catalogHandler.ListProducts)
	produtos.Post("/", manage, catalogHandler.CreateProduct)
	produtos.Get("/:id", catalogHandler.GetProduct)
	produtos.Get("/:id/ficha-tecnica", catalogHandler.GetRecipe)

	fichas := api.Group("/fichas-tecnicas")
	fichas.Post("/", manage, catalogHandler.AddRecipeEntry)
	fichas.Delete("/:id", manage, catalogHandler.RemoveRecipeEntry)

	// Mesas
	mesas := api.Group("/mesas")
	mesas.Get("/", catalogHandler.ListTables)
	mesas.Post("/", manage, catalogHandler.CreateTable)
	mesas.Post("/:id/reserva", catalogHandler.ReserveTable)
	mesas.Delete("/:id/reserva", catalogHandler.ReleaseTable)
	mesas.Post("/:id/comandas", comandaHandler.Open)

	// Comandas
	comandas := api.Group("/comandas")
	comandas.Get("/", comandaHandler.List)
	comandas.Get("/:id", comandaHandler.Get)
	comandas.Get("/:id/recibo.pdf", comandaHandler.Receipt)
	comandas.Post("/:id/itens", comandaHandler.AddItem)
	comandas.Delete("/:id/itens/:item_id", comandaHandler.RemoveItem)
	comandas.Post("/:id/pagamento", cashier, comandaHandler.Pay)
	comandas.Post("/:id/cancelamento", cashier, comandaHandler.Cancel)
}
