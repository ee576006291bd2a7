package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Ingredients IngredientRepository
	Products    ProductRepository
	Recipes     RecipeRepository
	Sales       SaleRepository
	Movements   StockMovementRepository
	Tables      TableRepository
	Comandas    ComandaRepository
}
