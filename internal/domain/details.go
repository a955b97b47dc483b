package domain

// OrderDetails is the per-service-type payload of an order. Exactly one
// variant may be set and it must match the order's service type; the shared
// required fields live on Order itself.
type OrderDetails struct {
	Parcel    *ParcelDetails    `json:"parcel,omitempty"`
	Passenger *PassengerDetails `json:"passenger,omitempty"`
	Vehicle   *VehicleDetails   `json:"vehicle,omitempty"`
	Pet       *PetDetails       `json:"pet,omitempty"`
	Freight   *FreightDetails   `json:"freight,omitempty"`
}

// ParcelDetails describes parcel and document shipments.
type ParcelDetails struct {
	WeightKg    float64 `json:"weight_kg,omitempty"`
	LengthCm    int     `json:"length_cm,omitempty"`
	WidthCm     int     `json:"width_cm,omitempty"`
	HeightCm    int     `json:"height_cm,omitempty"`
	Description string  `json:"description,omitempty"`
}

// PassengerDetails describes passenger transport.
type PassengerDetails struct {
	Seats   int    `json:"seats"`
	Luggage string `json:"luggage,omitempty"`
}

// VehicleDetails describes vehicle transport.
type VehicleDetails struct {
	Make    string `json:"make,omitempty"`
	Model   string `json:"model,omitempty"`
	Running bool   `json:"running"`
}

// PetDetails describes pet transport.
type PetDetails struct {
	Species string `json:"species"`
	Crated  bool   `json:"crated"`
}

// FreightDetails describes furniture and pallet transport.
type FreightDetails struct {
	Pieces int    `json:"pieces,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// variantFor maps a service type to a check that the matching variant is set.
func (d OrderDetails) variantFor(t ServiceType) (set, others bool) {
	variants := []struct {
		types []ServiceType
		set   bool
	}{
		{[]ServiceType{ServiceParcel, ServiceDocument}, d.Parcel != nil},
		{[]ServiceType{ServicePassenger}, d.Passenger != nil},
		{[]ServiceType{ServiceVehicle}, d.Vehicle != nil},
		{[]ServiceType{ServicePet}, d.Pet != nil},
		{[]ServiceType{ServiceFurniture, ServicePallet}, d.Freight != nil},
	}
	for _, v := range variants {
		match := false
		for _, vt := range v.types {
			if vt == t {
				match = true
				break
			}
		}
		if match {
			set = v.set
		} else if v.set {
			others = true
		}
	}
	return set, others
}

// MatchesServiceType reports whether the populated variant (if any) belongs
// to the given service type. An empty details payload is always acceptable.
func (d OrderDetails) MatchesServiceType(t ServiceType) bool {
	_, others := d.variantFor(t)
	return !others
}
