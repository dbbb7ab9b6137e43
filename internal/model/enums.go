package model

import (
	"fmt"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryAbrigo          Category = "ABRIGO"
	CategoryBermuda         Category = "BERMUDA"
	CategoryBuzos           Category = "BUZOS"
	CategoryBuzo            Category = "BUZO"
	CategoryCamisas         Category = "CAMISAS"
	CategoryFalda           Category = "FALDA"
	CategoryHogar           Category = "HOGAR"
	CategoryJeansTerminados Category = "JEANS TERMINADOS"
	CategoryPantalones      Category = "PANTALONES"
	CategoryPijamas         Category = "PIJAMAS"
	CategoryRopaInterior    Category = "ROPA INTERIOR"
	CategoryTercerasPiezas  Category = "TERCERAS PIEZAS"
	CategoryTshirt          Category = "TSHIRT"
	CategoryTerminadas      Category = "TERMINADAS"
	CategoryVestidos        Category = "VESTIDOS"
	CategoryPolos           Category = "POLOS"
	CategoryRopaDeBano      Category = "ROPA DE BAÑO"
	CategoryTshirtTerminada Category = "TSHIRT TERMINADA"
)

var categories = []Category{
	CategoryAbrigo, CategoryBermuda, CategoryBuzos, CategoryBuzo, CategoryCamisas,
	CategoryFalda, CategoryHogar, CategoryJeansTerminados, CategoryPantalones,
	CategoryPijamas, CategoryRopaInterior, CategoryTercerasPiezas, CategoryTshirt,
	CategoryTerminadas, CategoryVestidos, CategoryPolos, CategoryRopaDeBano,
	CategoryTshirtTerminada,
}

func (c Category) Valid() bool { return contains(categories, c) }

type Gender string

const (
	GenderMujer  Gender = "Mujer"
	GenderHombre Gender = "Hombre"
	GenderNino   Gender = "Niño"
	GenderNina   Gender = "Niña"
	GenderUnisex Gender = "Unisex"
)

var genders = []Gender{GenderMujer, GenderHombre, GenderNino, GenderNina, GenderUnisex}

func (g Gender) Valid() bool { return contains(genders, g) }

type Size string

var sizes = []Size{"XXS", "XS", "S", "M", "L", "XL", "4", "6", "8", "10", "12", "14", "16"}

func (s Size) Valid() bool { return contains(sizes, s) }

type Season string

const (
	SeasonPrimavera Season = "Primavera"
	SeasonVerano    Season = "Verano"
	SeasonOtono     Season = "Otoño"
	SeasonInvierno  Season = "Invierno"
	SeasonAllYear   Season = "Todo el año"
)

var seasons = []Season{SeasonPrimavera, SeasonVerano, SeasonOtono, SeasonInvierno, SeasonAllYear}

func (s Season) Valid() bool { return contains(seasons, s) }

// Branch is a physical store location. BranchAll is only meaningful for
// users (access to every branch) and as the "no filter" value in queries.
type Branch string

const (
	BranchBogotaCentro  Branch = "Bogotá Centro"
	BranchMedellinNorte Branch = "Medellín Norte"
	BranchCaliSur       Branch = "Cali Sur"
	BranchBarranquilla  Branch = "Barranquilla"
	BranchCartagena     Branch = "Cartagena"
	BranchBucaramanga   Branch = "Bucaramanga"
	BranchAll           Branch = "All"
)

var branches = []Branch{
	BranchBogotaCentro, BranchMedellinNorte, BranchCaliSur,
	BranchBarranquilla, BranchCartagena, BranchBucaramanga,
}

// Branches lists every concrete store.
func Branches() []Branch { return append([]Branch(nil), branches...) }

// Valid reports whether b is a concrete store. BranchAll is not.
func (b Branch) Valid() bool { return contains(branches, b) }

// UserBranch accepts the concrete stores plus BranchAll.
type UserBranch Branch

func (b UserBranch) Valid() bool { return Branch(b) == BranchAll || Branch(b).Valid() }

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentMixed    PaymentMethod = "Mixed"
)

func (p PaymentMethod) Valid() bool {
	return contains([]PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentMixed}, p)
}

type SaleStatus string

const (
	StatusCompleted SaleStatus = "Completed"
	StatusCancelled SaleStatus = "Cancelled"
	StatusPending   SaleStatus = "Pending"
	StatusRefunded  SaleStatus = "Refunded"
)

func (s SaleStatus) Valid() bool {
	return contains([]SaleStatus{StatusCompleted, StatusCancelled, StatusPending, StatusRefunded}, s)
}

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleSalesperson Role = "salesperson"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSalesperson
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

const saleNumberPrefix = "VT-"

// FormatSaleNumber renders n as VT-0001. Wider numbers are not truncated.
func FormatSaleNumber(n int64) string {
	return fmt.Sprintf("%s%04d", saleNumberPrefix, n)
}

// ParseSaleNumber extracts the numeric suffix of a sale number.
func ParseSaleNumber(s string) (int64, error) {
	if !strings.HasPrefix(s, saleNumberPrefix) {
		return 0, fmt.Errorf("sale number %q: missing %s prefix", s, saleNumberPrefix)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(s, saleNumberPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sale number %q: %w", s, err)
	}
	return n, nil
}
