// issue_token emite un JWT firmado con JWT_SECRET para operar la API (caixa, garçom, etc.).
//
// Uso: go run ./cmd/issue_token <user_id> <role>
// Roles: admin, gerente, caixa, garcom. Usa JWT_ISSUER y JWT_EXPIRATION_MINUTES de la configuración.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

var roles = map[string]bool{
	jwt.RoleAdmin:   true,
	jwt.RoleManager: true,
	jwt.RoleCashier: true,
	jwt.RoleWaiter:  true,
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: issue_token <user_id> <role>")
		os.Exit(2)
	}
	userID, role := os.Args[1], os.Args[2]
	if !roles[role] {
		fmt.Fprintf(os.Stderr, "role desconocido %q (admin, gerente, caixa, garcom)\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	token, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
