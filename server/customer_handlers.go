package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-storefront-auth/customerapi"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxRequestBodyBytes = 64 << 10

// CustomerMeHandler returns the signed-in customer or null (GET /api/customer/me).
func (s *Server) CustomerMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, err := s.customers.CurrentCustomer(r.Context(), w, r)
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("Error fetching customer")
			writeJSONError(w, r, http.StatusInternalServerError, "Failed to fetch customer data")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]*customerapi.Customer{"customer": customer})
	}
}

// CustomerOrdersHandler returns a page of orders (GET /api/customer/orders?first=&after=).
func (s *Server) CustomerOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		first, err := strconv.Atoi(r.URL.Query().Get("first"))
		if err != nil || first <= 0 {
			first = customerapi.DefaultOrdersPageSize
		}
		after := r.URL.Query().Get("after")

		var page customerapi.OrdersPage
		ok := s.withCustomer(w, r, "fetch orders", func(ctx context.Context, accessToken string) error {
			page, err = s.api.GetOrders(ctx, accessToken, first, after)
			return err
		})
		if ok {
			writeJSON(w, r, http.StatusOK, page)
		}
	}
}

// ListAddressesHandler returns the address book (GET /api/customer/addresses).
func (s *Server) ListAddressesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var book customerapi.AddressBook
		ok := s.withCustomer(w, r, "fetch addresses", func(ctx context.Context, accessToken string) error {
			var err error
			book, err = s.api.GetAddresses(ctx, accessToken)
			return err
		})
		if ok {
			writeJSON(w, r, http.StatusOK, book)
		}
	}
}

// CreateAddressHandler saves a new address (POST /api/customer/addresses).
func (s *Server) CreateAddressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeAddress(w, r)
		if !ok {
			return
		}
		var id string
		ok = s.withCustomer(w, r, "create address", func(ctx context.Context, accessToken string) error {
			var err error
			id, err = s.api.CreateAddress(ctx, accessToken, input)
			return err
		})
		if ok {
			writeJSON(w, r, http.StatusCreated, map[string]any{"success": true, "id": id})
		}
	}
}

// UpdateAddressHandler replaces an address (PUT /api/customer/addresses/{id}).
func (s *Server) UpdateAddressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeAddress(w, r)
		if !ok {
			return
		}
		id := r.PathValue("id")
		ok = s.withCustomer(w, r, "update address", func(ctx context.Context, accessToken string) error {
			return s.api.UpdateAddress(ctx, accessToken, id, input)
		})
		if ok {
			writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
		}
	}
}

// DeleteAddressHandler removes an address (DELETE /api/customer/addresses/{id}).
func (s *Server) DeleteAddressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		ok := s.withCustomer(w, r, "delete address", func(ctx context.Context, accessToken string) error {
			return s.api.DeleteAddress(ctx, accessToken, id)
		})
		if ok {
			writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
		}
	}
}

// SetDefaultAddressHandler marks an address as default (PUT /api/customer/addresses/{id}/default).
func (s *Server) SetDefaultAddressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		ok := s.withCustomer(w, r, "set default address", func(ctx context.Context, accessToken string) error {
			return s.api.SetDefaultAddress(ctx, accessToken, id)
		})
		if ok {
			writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
		}
	}
}

// PreflightHandler answers CORS preflights; the headers come from CorsMiddleware.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// withCustomer runs fn through the session resolver and writes the error
// response when it fails. It reports whether the caller should write the
// success response.
func (s *Server) withCustomer(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, accessToken string) error) bool {
	err := s.customers.WithSession(r.Context(), w, r, fn)
	if err == nil {
		return true
	}

	var userErrs *customerapi.UserErrors
	switch {
	case errors.Is(err, errors.ErrNoSession):
		writeJSONError(w, r, http.StatusUnauthorized, "Not authenticated")
	case errors.As(err, &userErrs):
		writeJSON(w, r, http.StatusBadRequest, map[string]any{
			"error":  "Failed to " + action,
			"errors": userErrs.Messages,
		})
	default:
		log.Ctx(r.Context()).Err(err).Str("action", action).Msg("Customer API call failed")
		writeJSONError(w, r, http.StatusInternalServerError, "Failed to "+action)
	}
	return false
}

func decodeAddress(w http.ResponseWriter, r *http.Request) (customerapi.AddressInput, bool) {
	var input customerapi.AddressInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&input); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "Invalid request body")
		return input, false
	}
	return input, true
}
