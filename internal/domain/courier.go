package domain

// CourierProfile is the verification subset of a courier account consulted
// by the offer gate. The administrative verification workflow is the sole
// writer of these flags; this core only reads them.
type CourierProfile struct {
	ID        string
	Name      string
	Verified  bool
	Suspended bool
}

// CoverageZone is a courier's declared operating area. Region and city may
// be empty; a broader entry qualifies the courier for a wider match. A
// courier may hold any number of zone entries.
type CoverageZone struct {
	ID        int64
	CourierID string
	Country   string
	Region    string
	City      string
}
