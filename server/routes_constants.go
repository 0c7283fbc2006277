package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login, Callback & Logout
	RouteAuthLogin    = "/auth/login"
	RouteAuthCallback = "/auth/callback"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthError    = "/auth/error"
	RouteRegister     = "/register"

	// Customer API Routes
	RouteCustomerMe             = "/api/customer/me"
	RouteCustomerOrders         = "/api/customer/orders"
	RouteCustomerAddresses      = "/api/customer/addresses"
	RouteCustomerAddress        = "/api/customer/addresses/{id}"
	RouteCustomerDefaultAddress = "/api/customer/addresses/{id}/default"

	RouteHealthz = "/healthz"

	// Where the browser lands after a successful login
	RouteLoginSuccess = "/?auth=success"
)
