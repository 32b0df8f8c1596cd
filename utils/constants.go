package utils

// Application constants
const (
	// Application name
	AppName = "MarketSphere"

	// API version
	APIVersion = "v1"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Longest order or product id accepted from clients
	MaxIdentifierLength = 64
)

// Roles carried in the "role" token claim
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// Error messages
const (
	// Authentication errors
	ErrInvalidToken = "Invalid or expired token"
	ErrUnauthorized = "Please login for access"
	ErrForbidden    = "Admin access required"

	// Validation errors
	ErrInvalidOrderID = "Invalid order id"
	ErrInvalidMethod  = "Invalid payment method"

	// Checkout errors
	ErrNoPaymentSession = "No payment session for this checkout"
	ErrPaymentNotReady  = "Payment details are not ready yet"

	// Server errors
	ErrInternalServer     = "Internal server error"
	ErrServiceUnavailable = "Service unavailable"
)

// Success messages
const (
	MsgPaymentSelected  = "Payment target selected"
	MsgPaymentSession   = "Payment session retrieved"
	MsgPaymentDiscarded = "Payment session discarded"
	MsgAttemptsFetched  = "Payment attempts retrieved"
)
