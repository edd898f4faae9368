package domain

// Service represents a static catalog entry. The catalog is process-wide
// immutable configuration; appointments keep a denormalized copy of the
// name and price at booking time.
type Service struct {
	ID              string
	Name            string
	Price           int64 // whole currency units
	DurationMinutes int
	LoyaltyEligible bool // earns a loyalty stamp when completed
}

// ServiceCatalog ordered set of services offered by the carwash
type ServiceCatalog []Service

// ByID returns the catalog entry with the given id
func (c ServiceCatalog) ByID(id string) (Service, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
