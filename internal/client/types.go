package client

// Server-provided records are displayed as-is; the client owns no
// invariants on them. Timestamps stay strings because the API emits local
// date-times without a zone offset.

// JwtResponse is the credential bundle returned by a successful login.
type JwtResponse struct {
	Token  string `json:"token"`
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Mobile string `json:"mobile"`
}

// RegisterRequest creates a new account. Role is ADMIN, DRIVER, or PASSENGER.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

// OTPVerifyRequest confirms a registration with the emailed one-time code.
type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// PasswordChangeRequest rotates the account password.
type PasswordChangeRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UserProfile is the account record behind /api/auth/profile.
type UserProfile struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Mobile             string   `json:"mobile"`
	Role               string   `json:"role"`
	VerificationStatus string   `json:"verificationStatus"`
	AvgRating          *float64 `json:"avgRating"`
	TotalRides         *int     `json:"totalRides"`
	IsActive           *bool    `json:"isActive"`
}

// Trip is a published ride offer.
type Trip struct {
	ID                  int64    `json:"id"`
	FromLocation        string   `json:"fromLocation"`
	ToLocation          string   `json:"toLocation"`
	DepartureTime       string   `json:"departureTime"`
	ExpectedArrivalTime string   `json:"expectedArrivalTime"`
	PricePerSeat        float64  `json:"pricePerSeat"`
	TotalSeats          int      `json:"totalSeats"`
	AvailableSeats      int      `json:"availableSeats"`
	Status              string   `json:"status"`
	DistanceKm          *float64 `json:"distanceKm"`
	DriverName          string   `json:"driverName"`
	DriverID            int64    `json:"driverId"`
	VehicleModel        string   `json:"vehicleModel"`
	VehicleNumber       string   `json:"vehicleNumber"`
	SoberDeclaration    *bool    `json:"soberDeclaration"`
	IsActive            *bool    `json:"isActive"`
	Notes               string   `json:"notes"`
	CreatedAt           string   `json:"createdAt"`
}

// TripRequest publishes a new trip.
type TripRequest struct {
	FromLocation        string   `json:"fromLocation"`
	ToLocation          string   `json:"toLocation"`
	DepartureTime       string   `json:"departureTime"`
	ExpectedArrivalTime string   `json:"expectedArrivalTime,omitempty"`
	PricePerSeat        float64  `json:"pricePerSeat"`
	TotalSeats          int      `json:"totalSeats"`
	RoutePolyline       string   `json:"routePolyline,omitempty"`
	DistanceKm          *float64 `json:"distanceKm,omitempty"`
	IsFlexible          bool     `json:"isFlexible"`
	Notes               string   `json:"notes,omitempty"`
	VehicleID           int64    `json:"vehicleId"`
}

// TripSearchRequest filters published trips.
type TripSearchRequest struct {
	FromLocation  string   `json:"fromLocation,omitempty"`
	ToLocation    string   `json:"toLocation,omitempty"`
	DepartureDate string   `json:"departureDate,omitempty"`
	RequiredSeats int      `json:"requiredSeats,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
}

// Booking is a passenger's claim on seats in a trip.
type Booking struct {
	ID              int64   `json:"id"`
	SeatsBooked     int     `json:"seatsBooked"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	PassengerName   string  `json:"passengerName"`
	PassengerID     int64   `json:"passengerId"`
	TripFrom        string  `json:"tripFrom"`
	TripTo          string  `json:"tripTo"`
	DepartureTime   string  `json:"departureTime"`
	PaymentStatus   string  `json:"paymentStatus"`
	SpecialRequests string  `json:"specialRequests"`
	TripNotes       string  `json:"tripNotes"`
	PickupOTP       string  `json:"pickupOtp"`
	DriverName      string  `json:"driverName"`
	DriverPhone     string  `json:"driverPhone"`
	VehicleModel    string  `json:"vehicleModel"`
	VehicleNumber   string  `json:"vehicleNumber"`
	BookedAt        string  `json:"bookedAt"`
}

// BookingRequest reserves seats on a trip.
type BookingRequest struct {
	TripID          int64  `json:"tripId"`
	Seats           int    `json:"seats"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Payment is a settlement record for a booking.
type Payment struct {
	ID            int64   `json:"id"`
	BookingID     string  `json:"bookingId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	PaidAt        string  `json:"paidAt"`
}

// Notification is an in-app message for the current user.
type Notification struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	Type              string `json:"type"`
	IsRead            bool   `json:"isRead"`
	RelatedEntityType string `json:"relatedEntityType"`
	RelatedEntityID   int64  `json:"relatedEntityId"`
	CreatedAt         string `json:"createdAt"`
}

// SOSRequest raises an emergency alert for an in-progress trip.
type SOSRequest struct {
	TripID    int64    `json:"tripId"`
	Message   string   `json:"message"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// EmergencyAlert acknowledges a raised SOS.
type EmergencyAlert struct {
	AlertID             int64  `json:"alertId"`
	Status              string `json:"status"`
	Message             string `json:"message"`
	SentAt              string `json:"sentAt"`
	AuthoritiesNotified bool   `json:"authoritiesNotified"`
}

// LiveLocationRequest reports the rider's current position during a trip.
type LiveLocationRequest struct {
	TripID    int64   `json:"tripId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Vehicle is a driver's registered vehicle.
type Vehicle struct {
	ID              int64  `json:"id"`
	VehicleNumber   string `json:"vehicleNumber"`
	Model           string `json:"model"`
	Color           string `json:"color"`
	TotalSeats      int    `json:"totalSeats"`
	InsuranceNumber string `json:"insuranceNumber"`
	InsuranceExpiry string `json:"insuranceExpiry"`
	VehicleType     string `json:"vehicleType"`
	IsActive        *bool  `json:"isActive"`
	UserID          int64  `json:"userId"`
	OwnerName       string `json:"ownerName"`
}

// VehicleRequest registers or updates a vehicle.
type VehicleRequest struct {
	VehicleNumber   string `json:"vehicleNumber"`
	Model           string `json:"model"`
	Color           string `json:"color"`
	TotalSeats      int    `json:"totalSeats"`
	InsuranceNumber string `json:"insuranceNumber"`
	InsuranceExpiry string `json:"insuranceExpiry,omitempty"`
	VehicleType     string `json:"vehicleType"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalTrips      int64   `json:"totalTrips"`
	TotalRevenue    float64 `json:"totalRevenue"`
	ActiveDrivers   int64   `json:"activeDrivers"`
	TotalBookings   int64   `json:"totalBookings"`
	PendingBookings int64   `json:"pendingBookings"`
	TotalMessages   int64   `json:"totalMessages"`
}

// ManagedUser is a user row in the admin user list.
type ManagedUser struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Mobile             string   `json:"mobile"`
	Role               string   `json:"role"`
	VerificationStatus string   `json:"verificationStatus"`
	IsActive           *bool    `json:"isActive"`
	AvgRating          *float64 `json:"avgRating"`
	TotalRides         *int     `json:"totalRides"`
	CreatedAt          string   `json:"createdAt"`
}
