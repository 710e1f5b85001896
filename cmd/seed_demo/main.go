// seed_demo genera un script SQL con datos de demostración: dos ubicaciones
// (punto de recogida y bodega), un admin, un operador, un bodeguero y un
// receptor, todos con password "demo1234" hasheado con bcrypt.
//
// Uso: go run ./cmd/seed_demo [ruta de salida]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "demo1234"

type demoUser struct {
	email, name, role string
	locationKey       string // "" = sin ancla (admin)
}

func main() {
	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bcrypt: %v\n", err)
		os.Exit(1)
	}

	locations := map[string]struct {
		name        string
		isWarehouse bool
	}{
		"pickup":    {"Sede Centro", false},
		"warehouse": {"Bodega Norte", true},
	}
	locIDs := map[string]string{}

	var b strings.Builder
	b.WriteString("-- 002_seed_demo.sql — datos de demostración (generado por cmd/seed_demo).\n")
	b.WriteString(fmt.Sprintf("-- Password de todos los usuarios: %q\n\n", demoPassword))

	for _, key := range []string{"pickup", "warehouse"} {
		loc := locations[key]
		id := uuid.New().String()
		locIDs[key] = id
		b.WriteString(fmt.Sprintf(
			"INSERT INTO locations (id, name, is_warehouse) VALUES ('%s', %s, %t);\n",
			id, quote(loc.name), loc.isWarehouse,
		))
	}
	b.WriteString("\n")

	users := []demoUser{
		{"admin@demo.local", "Admin Demo", "admin", ""},
		{"operador@demo.local", "Operador Demo", "operador", "pickup"},
		{"bodeguero@demo.local", "Bodeguero Demo", "bodeguero", "warehouse"},
		{"receptor@demo.local", "Receptor Demo", "operador", "pickup"},
	}
	for _, u := range users {
		locSQL := "NULL"
		if u.locationKey != "" {
			locSQL = "'" + locIDs[u.locationKey] + "'"
		}
		b.WriteString(fmt.Sprintf(
			"INSERT INTO users (id, email, password_hash, name, role, location_id) VALUES ('%s', %s, %s, %s, %s, %s);\n",
			uuid.New().String(), quote(u.email), quote(string(hash)), quote(u.name), quote(u.role), locSQL,
		))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d usuarios, %d ubicaciones)\n", outPath, len(users), len(locations))
}

// quote escapa comillas simples para un literal SQL.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
