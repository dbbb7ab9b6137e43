package seed

import "go-retail-analytics/internal/model"

type demoProduct struct {
	sku      string
	name     string
	category model.Category
	gender   model.Gender
	size     model.Size
	season   model.Season
	color    string
	price    int64
	cost     int64
	stock    int
}

type demoUser struct {
	name     string
	email    string
	password string
	role     model.Role
	branch   model.UserBranch
}

var demoUsers = []demoUser{
	{"Administrador", "admin@retail.com", "admin123", model.RoleAdmin, model.UserBranch(model.BranchAll)},
	{"Gerente Bogotá", "gerente@retail.com", "gerente123", model.RoleManager, model.UserBranch(model.BranchBogotaCentro)},
	{"Vendedor Medellín", "vendedor@retail.com", "vendedor123", model.RoleSalesperson, model.UserBranch(model.BranchMedellinNorte)},
}

var demoCatalog = []demoProduct{
	// Mujer
	{"MUJ-ABR-001", "Abrigo Elegante Negro", model.CategoryAbrigo, model.GenderMujer, "M", model.SeasonInvierno, "Negro", 189900, 95000, 25},
	{"MUJ-ABR-002", "Abrigo Elegante Negro", model.CategoryAbrigo, model.GenderMujer, "L", model.SeasonInvierno, "Negro", 189900, 95000, 18},
	{"MUJ-BER-001", "Bermuda Casual Beige", model.CategoryBermuda, model.GenderMujer, "S", model.SeasonVerano, "Beige", 69900, 35000, 42},
	{"MUJ-BUZ-001", "Buzo Deportivo Rosa", model.CategoryBuzos, model.GenderMujer, "M", model.SeasonAllYear, "Rosa", 89900, 45000, 35},
	{"MUJ-CAM-001", "Camisa Blanca Formal", model.CategoryCamisas, model.GenderMujer, "M", model.SeasonAllYear, "Blanco", 79900, 40000, 48},
	{"MUJ-CAM-002", "Camisa Blanca Formal", model.CategoryCamisas, model.GenderMujer, "S", model.SeasonAllYear, "Blanco", 79900, 40000, 52},
	{"MUJ-FAL-001", "Falda Plisada Azul", model.CategoryFalda, model.GenderMujer, "M", model.SeasonPrimavera, "Azul", 64900, 32000, 30},
	{"MUJ-JEA-001", "Jeans Skinny Azul", model.CategoryJeansTerminados, model.GenderMujer, "M", model.SeasonAllYear, "Azul", 129900, 65000, 45},
	{"MUJ-JEA-002", "Jeans Skinny Azul", model.CategoryJeansTerminados, model.GenderMujer, "S", model.SeasonAllYear, "Azul", 129900, 65000, 38},
	{"MUJ-PAN-001", "Pantalón Formal Negro", model.CategoryPantalones, model.GenderMujer, "M", model.SeasonAllYear, "Negro", 99900, 50000, 40},
	{"MUJ-PIJ-001", "Pijama Conjunto Floral", model.CategoryPijamas, model.GenderMujer, "M", model.SeasonAllYear, "Multicolor", 74900, 37000, 28},
	{"MUJ-RIN-001", "Ropa Interior Pack 3", model.CategoryRopaInterior, model.GenderMujer, "M", model.SeasonAllYear, "Variado", 54900, 27000, 65},
	{"MUJ-TER-001", "Cárdigan Gris", model.CategoryTercerasPiezas, model.GenderMujer, "M", model.SeasonOtono, "Gris", 84900, 42000, 32},
	{"MUJ-TSH-001", "T-Shirt Básica Blanca", model.CategoryTshirt, model.GenderMujer, "M", model.SeasonAllYear, "Blanco", 39900, 20000, 75},
	{"MUJ-TSH-002", "T-Shirt Básica Negra", model.CategoryTshirt, model.GenderMujer, "S", model.SeasonAllYear, "Negro", 39900, 20000, 82},
	{"MUJ-VES-001", "Vestido Casual Flores", model.CategoryVestidos, model.GenderMujer, "M", model.SeasonPrimavera, "Floral", 119900, 60000, 22},
	{"MUJ-VES-002", "Vestido Elegante Negro", model.CategoryVestidos, model.GenderMujer, "S", model.SeasonAllYear, "Negro", 149900, 75000, 18},

	// Hombre
	{"HOM-ABR-001", "Abrigo Lana Gris", model.CategoryAbrigo, model.GenderHombre, "L", model.SeasonInvierno, "Gris", 199900, 100000, 20},
	{"HOM-BER-001", "Bermuda Cargo Verde", model.CategoryBermuda, model.GenderHombre, "M", model.SeasonVerano, "Verde", 74900, 37000, 38},
	{"HOM-BUZ-001", "Buzo Deportivo Negro", model.CategoryBuzo, model.GenderHombre, "L", model.SeasonAllYear, "Negro", 94900, 47000, 42},
	{"HOM-BUZ-002", "Buzo Deportivo Negro", model.CategoryBuzo, model.GenderHombre, "M", model.SeasonAllYear, "Negro", 94900, 47000, 45},
	{"HOM-CAM-001", "Camisa Manga Larga Azul", model.CategoryCamisas, model.GenderHombre, "L", model.SeasonAllYear, "Azul", 84900, 42000, 50},
	{"HOM-CAM-002", "Camisa Manga Larga Azul", model.CategoryCamisas, model.GenderHombre, "M", model.SeasonAllYear, "Azul", 84900, 42000, 55},
	{"HOM-JEA-001", "Jeans Regular Fit", model.CategoryJeansTerminados, model.GenderHombre, "L", model.SeasonAllYear, "Azul", 134900, 67000, 48},
	{"HOM-JEA-002", "Jeans Regular Fit", model.CategoryJeansTerminados, model.GenderHombre, "M", model.SeasonAllYear, "Azul", 134900, 67000, 52},
	{"HOM-PAN-001", "Pantalón Chino Beige", model.CategoryPantalones, model.GenderHombre, "L", model.SeasonAllYear, "Beige", 104900, 52000, 35},
	{"HOM-POL-001", "Polo Clásico Blanco", model.CategoryPolos, model.GenderHombre, "L", model.SeasonAllYear, "Blanco", 49900, 25000, 68},
	{"HOM-POL-002", "Polo Clásico Negro", model.CategoryPolos, model.GenderHombre, "M", model.SeasonAllYear, "Negro", 49900, 25000, 72},
	{"HOM-RBA-001", "Pantaloneta Playa", model.CategoryRopaDeBano, model.GenderHombre, "M", model.SeasonVerano, "Azul", 59900, 30000, 45},
	{"HOM-RIN-001", "Ropa Interior Pack 3", model.CategoryRopaInterior, model.GenderHombre, "M", model.SeasonAllYear, "Variado", 49900, 25000, 88},
	{"HOM-TSH-001", "T-Shirt Básica Gris", model.CategoryTshirtTerminada, model.GenderHombre, "L", model.SeasonAllYear, "Gris", 44900, 22000, 95},
	{"HOM-TSH-002", "T-Shirt Básica Negra", model.CategoryTshirtTerminada, model.GenderHombre, "M", model.SeasonAllYear, "Negro", 44900, 22000, 102},

	// Niño
	{"NIN-BER-001", "Bermuda Denim Niño", model.CategoryBermuda, model.GenderNino, "10", model.SeasonVerano, "Azul", 49900, 25000, 35},
	{"NIN-BER-002", "Bermuda Denim Niño", model.CategoryBermuda, model.GenderNino, "12", model.SeasonVerano, "Azul", 49900, 25000, 32},
	{"NIN-BUZ-001", "Buzo Capucha Niño", model.CategoryBuzo, model.GenderNino, "10", model.SeasonInvierno, "Azul", 64900, 32000, 40},
	{"NIN-CAM-001", "Camisa Cuadros Niño", model.CategoryCamisas, model.GenderNino, "10", model.SeasonAllYear, "Cuadros", 54900, 27000, 28},
	{"NIN-JEA-001", "Jeans Niño Classic", model.CategoryJeansTerminados, model.GenderNino, "10", model.SeasonAllYear, "Azul", 79900, 40000, 38},
	{"NIN-JEA-002", "Jeans Niño Classic", model.CategoryJeansTerminados, model.GenderNino, "12", model.SeasonAllYear, "Azul", 79900, 40000, 35},
	{"NIN-PAN-001", "Pantalón Deportivo Niño", model.CategoryPantalones, model.GenderNino, "10", model.SeasonAllYear, "Negro", 59900, 30000, 42},
	{"NIN-POL-001", "Polo Estampado Niño", model.CategoryPolos, model.GenderNino, "10", model.SeasonAllYear, "Azul", 34900, 17000, 55},
	{"NIN-RBA-001", "Pantaloneta Baño Niño", model.CategoryRopaDeBano, model.GenderNino, "10", model.SeasonVerano, "Rojo", 39900, 20000, 45},
	{"NIN-TSH-001", "T-Shirt Niño Dinosaurio", model.CategoryTshirtTerminada, model.GenderNino, "10", model.SeasonAllYear, "Verde", 29900, 15000, 68},
	{"NIN-TSH-002", "T-Shirt Niño Superhéroe", model.CategoryTshirtTerminada, model.GenderNino, "8", model.SeasonAllYear, "Azul", 29900, 15000, 72},

	// Niña
	{"NIA-ABR-001", "Abrigo Niña Rosa", model.CategoryAbrigo, model.GenderNina, "10", model.SeasonInvierno, "Rosa", 89900, 45000, 25},
	{"NIA-BER-001", "Bermuda Niña Denim", model.CategoryBermuda, model.GenderNina, "10", model.SeasonVerano, "Azul", 44900, 22000, 38},
	{"NIA-BUZ-001", "Buzo Niña Unicornio", model.CategoryBuzo, model.GenderNina, "10", model.SeasonInvierno, "Rosa", 69900, 35000, 32},
	{"NIA-CAM-001", "Camisa Niña Flores", model.CategoryCamisas, model.GenderNina, "10", model.SeasonPrimavera, "Floral", 49900, 25000, 30},
	{"NIA-FAL-001", "Falda Plisada Niña", model.CategoryFalda, model.GenderNina, "10", model.SeasonAllYear, "Azul", 44900, 22000, 35},
	{"NIA-JEA-001", "Jeans Niña Skinny", model.CategoryJeansTerminados, model.GenderNina, "10", model.SeasonAllYear, "Azul", 74900, 37000, 40},
	{"NIA-JEA-002", "Jeans Niña Skinny", model.CategoryJeansTerminados, model.GenderNina, "12", model.SeasonAllYear, "Azul", 74900, 37000, 38},
	{"NIA-PAN-001", "Pantalón Niña Rosa", model.CategoryPantalones, model.GenderNina, "10", model.SeasonAllYear, "Rosa", 54900, 27000, 35},
	{"NIA-TER-001", "Cárdigan Niña Lila", model.CategoryTercerasPiezas, model.GenderNina, "10", model.SeasonOtono, "Lila", 59900, 30000, 28},
	{"NIA-TSH-001", "T-Shirt Niña Mariposa", model.CategoryTshirtTerminada, model.GenderNina, "10", model.SeasonAllYear, "Rosa", 29900, 15000, 65},
	{"NIA-TSH-002", "T-Shirt Niña Gato", model.CategoryTshirtTerminada, model.GenderNina, "8", model.SeasonAllYear, "Blanco", 29900, 15000, 70},
	{"NIA-VES-001", "Vestido Niña Princesa", model.CategoryVestidos, model.GenderNina, "10", model.SeasonPrimavera, "Rosa", 79900, 40000, 25},
	{"NIA-VES-002", "Vestido Niña Casual", model.CategoryVestidos, model.GenderNina, "12", model.SeasonVerano, "Azul", 69900, 35000, 28},
}
