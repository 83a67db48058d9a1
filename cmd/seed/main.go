package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/farmstack/farm-api/config"
	"github.com/farmstack/farm-api/pkg/bankcrypt"
	"github.com/farmstack/farm-api/pkg/helpers"
)

// seed provisions a demo admin and a demo farmer for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.MustValidate()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminID := upsertAccount(db, "admin@farm.local", "password123", "Demo Admin", "", "{user,admin}")
	fmt.Printf("seeded admin: id=%s email=admin@farm.local password=password123\n", adminID)

	farmerID := upsertAccount(db, "farmer@farm.local", "password123", "Demo Farmer", "100200300400", "{user,farmer}")
	fmt.Printf("seeded farmer: id=%s email=farmer@farm.local password=password123\n", farmerID)

	cipher, err := bankcrypt.New(cfg.BankEncryptionSecret)
	if err != nil {
		log.Fatalf("failed to init bank cipher: %v", err)
	}
	acctNo, err := cipher.Encrypt("000123456789")
	if err != nil {
		log.Fatalf("failed to encrypt bank account: %v", err)
	}
	routing, err := cipher.Encrypt("DEMO0001")
	if err != nil {
		log.Fatalf("failed to encrypt routing code: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO farmer_profiles (account_id, farm_name, location, farm_size_acres, livestock_count, bank_account_number, bank_routing_code)
		VALUES ($1, 'Demo Dairy', 'Greenfield', 12.5, 40, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET farm_name = EXCLUDED.farm_name
	`, farmerID, acctNo, routing); err != nil {
		log.Fatalf("failed to seed farmer profile: %v", err)
	}
	fmt.Println("seeded farmer profile with encrypted bank details")
}

func upsertAccount(db *sql.DB, email, password, name, nationalID, roles string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (email, password_hash, name, national_id, roles)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5::text[])
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, nationalID, roles).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account %s: %v", email, err)
	}
	return id
}
