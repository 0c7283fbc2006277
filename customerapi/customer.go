package customerapi

import (
	"context"
	"fmt"
)

const getCustomerQuery = `
  query getCustomer {
    customer {
      id
      emailAddress {
        emailAddress
      }
      firstName
      lastName
      phoneNumber {
        phoneNumber
      }
    }
  }
`

// Customer is the signed-in customer's profile. It is fetched on every
// request and never cached.
type Customer struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type customerPayload struct {
	Customer *struct {
		ID           string `json:"id"`
		EmailAddress *struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"emailAddress"`
		FirstName   *string `json:"firstName"`
		LastName    *string `json:"lastName"`
		PhoneNumber *struct {
			PhoneNumber string `json:"phoneNumber"`
		} `json:"phoneNumber"`
	} `json:"customer"`
}

// GetCustomer fetches the profile behind accessToken. An empty customer
// payload means the token no longer identifies anyone and is reported as
// ErrUnauthenticated.
func (c *Client) GetCustomer(ctx context.Context, accessToken string) (*Customer, error) {
	var payload customerPayload
	if err := c.Do(ctx, getCustomerQuery, nil, accessToken, &payload); err != nil {
		return nil, err
	}
	if payload.Customer == nil {
		return nil, fmt.Errorf("[customerapi GetCustomer] empty customer payload: %w", ErrUnauthenticated)
	}

	src := payload.Customer
	customer := &Customer{
		ID:        src.ID,
		FirstName: src.FirstName,
		LastName:  src.LastName,
	}
	if src.EmailAddress != nil {
		customer.Email = src.EmailAddress.EmailAddress
	}
	if src.PhoneNumber != nil && src.PhoneNumber.PhoneNumber != "" {
		phone := src.PhoneNumber.PhoneNumber
		customer.Phone = &phone
	}
	return customer, nil
}
