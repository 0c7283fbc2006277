package server

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleWare(s.AuthRateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare(s.AuthRateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare(s.AuthRateLimitMiddleware)...)) // For form_post response mode
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthError, ChainMiddleware(s.ErrorPageHandler(), s.HTMLMiddleWare()...))

	// Account creation happens on the provider's login page
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.HTMLMiddleWare()...))

	// Customer API routes
	s.RegisterRouteHandler("GET "+RouteCustomerMe, ChainMiddleware(s.CustomerMeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCustomerOrders, ChainMiddleware(s.CustomerOrdersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCustomerAddresses, ChainMiddleware(s.ListAddressesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCustomerAddresses, ChainMiddleware(s.CreateAddressHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteCustomerAddress, ChainMiddleware(s.UpdateAddressHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteCustomerAddress, ChainMiddleware(s.DeleteAddressHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteCustomerDefaultAddress, ChainMiddleware(s.SetDefaultAddressHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS /api/customer/", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}
