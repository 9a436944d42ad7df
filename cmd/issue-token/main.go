// issue-token emite un JWT firmado con JWT_SECRET para un usuario y rol.
//
// Uso: go run ./cmd/issue-token -user <id> -role admin|bodeguero|produccion [-minutes 60]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-bins/pkg/config"
	"github.com/jhoicas/Inventario-bins/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "ID del usuario (sub del token)")
	role := flag.String("role", jwt.RoleBodeguero, "rol: admin, bodeguero o produccion")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user es requerido")
		os.Exit(2)
	}
	if !jwt.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol inválido %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
