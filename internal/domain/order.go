package domain

import "time"

type (
	// OrderStatus represents the lifecycle status of an order.
	OrderStatus string
	// ServiceType represents the kind of transport an order asks for.
	ServiceType string
	// OffererPolicy restricts which courier categories may place offers.
	OffererPolicy string
	// OfferCapPolicy bounds how many distinct couriers may offer on an order.
	OfferCapPolicy string
)

// List of possible service types
const (
	ServiceParcel    ServiceType = "parcel"
	ServiceDocument  ServiceType = "document"
	ServicePassenger ServiceType = "passenger"
	ServiceVehicle   ServiceType = "vehicle"
	ServicePet       ServiceType = "pet"
	ServiceFurniture ServiceType = "furniture"
	ServicePallet    ServiceType = "pallet"
)

// List of possible offerer policies
const (
	// OfferersVerifiedOnly admits offers from verified companies only.
	OfferersVerifiedOnly OffererPolicy = "verified_only"
	// OfferersAny also admits unverified individual offerers.
	OfferersAny OffererPolicy = "any"
)

// List of possible offer cap policies
const (
	CapUnlimited OfferCapPolicy = "unlimited"
	CapSmall     OfferCapPolicy = "capped_small"
	CapMedium    OfferCapPolicy = "capped_medium"
)

var allowedServiceTypes = [...]ServiceType{
	ServiceParcel, ServiceDocument, ServicePassenger,
	ServiceVehicle, ServicePet, ServiceFurniture, ServicePallet,
}

// capCeilings translates a cap policy into a numeric ceiling of distinct
// offerers. Unlimited is intentionally absent.
var capCeilings = map[OfferCapPolicy]int{
	CapSmall:  3,
	CapMedium: 5,
}

// Valid checks if the ServiceType is valid
func (t ServiceType) Valid() bool {
	for _, v := range allowedServiceTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the OffererPolicy is valid
func (p OffererPolicy) Valid() bool {
	return p == OfferersVerifiedOnly || p == OfferersAny
}

// AllowsUnverified reports whether unverified individual offerers may offer.
func (p OffererPolicy) AllowsUnverified() bool {
	return p == OfferersAny
}

// Valid checks if the OfferCapPolicy is valid
func (p OfferCapPolicy) Valid() bool {
	switch p {
	case CapUnlimited, CapSmall, CapMedium:
		return true
	default:
		return false
	}
}

// Ceiling returns the numeric offer ceiling for the policy. The second
// return is false for the unlimited policy, which has no ceiling.
func (p OfferCapPolicy) Ceiling() (int, bool) {
	n, ok := capCeilings[p]
	return n, ok
}

// Location is a country/region/city routing point. Region and city are
// optional; broader entries imply wider matching.
type Location struct {
	Country string
	Region  string
	City    string
}

// Order represents a client's transport request.
type Order struct {
	ID            string
	Number        string
	ClientID      string
	ServiceType   ServiceType
	Pickup        Location
	Delivery      Location
	Status        OrderStatus
	CourierID     *string
	OffererPolicy OffererPolicy
	CapPolicy     OfferCapPolicy
	Details       OrderDetails
	Archived      bool
	ArchivedAt    *time.Time
	CreatedAt     time.Time
}
