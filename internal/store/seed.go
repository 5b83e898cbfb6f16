package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZTormDev/pos/internal/model"
)

type seedEntry struct {
	name     string
	category string
	price    string
	stock    int
	barcode  string
}

var seedCatalog = []seedEntry{
	{"Coca Cola 600ml", "Bebidas", "2.50", 150, "7501234567890"},
	{"Pan Integral", "Panaderia", "3.20", 80, "7501234567891"},
	{"Leche Entera 1L", "Lacteos", "4.50", 100, "7501234567892"},
	{"Arroz 1kg", "Abarrotes", "5.80", 200, "7501234567893"},
	{"Aceite Vegetal 1L", "Abarrotes", "8.90", 75, "7501234567894"},
	{"Huevos x12", "Lacteos", "4.20", 120, "7501234567895"},
	{"Agua 2L", "Bebidas", "1.50", 300, "7501234567896"},
	{"Galletas Maria", "Snacks", "2.80", 90, "7501234567897"},
	{"Yogurt Natural", "Lacteos", "3.50", 60, "7501234567898"},
	{"Jamon 500g", "Carnes", "12.50", 45, "7501234567899"},
	{"Queso 500g", "Lacteos", "15.00", 35, "7501234567800"},
	{"Cerveza 355ml", "Bebidas", "3.00", 200, "7501234567801"},
}

// SeedProducts builds the demo catalog used when the durable store holds no
// catalog blob (fresh install).
func SeedProducts() []model.Product {
	out := make([]model.Product, 0, len(seedCatalog))
	for _, e := range seedCatalog {
		out = append(out, model.Product{
			ID:       uuid.New(),
			Name:     e.name,
			Category: e.category,
			Price:    decimal.RequireFromString(e.price),
			Stock:    e.stock,
			Barcode:  e.barcode,
		})
	}
	return out
}
