package geo

import "context"

// Store reads the geography reference. The reference is seed data; nothing
// in this service writes it.
type Store interface {
	ListProvinces(ctx context.Context) ([]Province, error)
	ListLGUs(ctx context.Context, provinceCode string) ([]LGU, error)
	ListBarangays(ctx context.Context, lguCode string) ([]Barangay, error)
}
