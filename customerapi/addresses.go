package customerapi

import (
	"context"
	"fmt"
)

const getCustomerAddressesQuery = `
  query getCustomerAddresses {
    customer {
      addresses(first: 50) {
        nodes {
          id
          formatted
          firstName
          lastName
          company
          address1
          address2
          city
          province: zoneCode
          country: territoryCode
          zip
          phoneNumber
        }
      }
      defaultAddress {
        id
      }
    }
  }
`

const createAddressMutation = `
  mutation customerAddressCreate($address: CustomerAddressInput!) {
    customerAddressCreate(address: $address) {
      customerAddress {
        id
      }
      userErrors {
        field
        message
      }
    }
  }
`

const updateAddressMutation = `
  mutation customerAddressUpdate($addressId: ID!, $address: CustomerAddressInput!) {
    customerAddressUpdate(addressId: $addressId, address: $address) {
      customerAddress {
        id
      }
      userErrors {
        field
        message
      }
    }
  }
`

const deleteAddressMutation = `
  mutation customerAddressDelete($addressId: ID!) {
    customerAddressDelete(addressId: $addressId) {
      deletedAddressId
      userErrors {
        field
        message
      }
    }
  }
`

const setDefaultAddressMutation = `
  mutation customerDefaultAddressUpdate($addressId: ID!) {
    customerAddressUpdate(addressId: $addressId, defaultAddress: true) {
      customerAddress {
        id
      }
      userErrors {
        field
        message
      }
    }
  }
`

// Address is a saved customer address as returned to the storefront.
type Address struct {
	ID        string   `json:"id"`
	Formatted []string `json:"formatted"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Company   string   `json:"company,omitempty"`
	Address1  string   `json:"address1,omitempty"`
	Address2  string   `json:"address2,omitempty"`
	City      string   `json:"city,omitempty"`
	Province  string   `json:"province,omitempty"`
	Country   string   `json:"country,omitempty"`
	Zip       string   `json:"zip,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	IsDefault bool     `json:"isDefault"`
}

// AddressInput is the writable part of an address.
type AddressInput struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Company       string `json:"company,omitempty"`
	Address1      string `json:"address1,omitempty"`
	Address2      string `json:"address2,omitempty"`
	City          string `json:"city,omitempty"`
	ZoneCode      string `json:"zoneCode,omitempty"`
	TerritoryCode string `json:"territoryCode,omitempty"`
	Zip           string `json:"zip,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}

// AddressBook is the customer's saved addresses.
type AddressBook struct {
	Addresses        []Address `json:"addresses"`
	DefaultAddressID *string   `json:"defaultAddressId"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type addressesPayload struct {
	Customer *struct {
		Addresses struct {
			Nodes []struct {
				Address
				PhoneNumber string `json:"phoneNumber"`
			} `json:"nodes"`
		} `json:"addresses"`
		DefaultAddress *struct {
			ID string `json:"id"`
		} `json:"defaultAddress"`
	} `json:"customer"`
}

// GetAddresses lists the customer's addresses and marks the default one.
func (c *Client) GetAddresses(ctx context.Context, accessToken string) (AddressBook, error) {
	var payload addressesPayload
	if err := c.Do(ctx, getCustomerAddressesQuery, nil, accessToken, &payload); err != nil {
		return AddressBook{}, err
	}

	if payload.Customer == nil {
		return AddressBook{}, fmt.Errorf("[customerapi GetAddresses] empty customer payload: %w", ErrUnauthenticated)
	}
	book := AddressBook{Addresses: []Address{}}
	if d := payload.Customer.DefaultAddress; d != nil {
		id := d.ID
		book.DefaultAddressID = &id
	}
	for _, node := range payload.Customer.Addresses.Nodes {
		addr := node.Address
		addr.Phone = node.PhoneNumber
		addr.IsDefault = book.DefaultAddressID != nil && addr.ID == *book.DefaultAddressID
		book.Addresses = append(book.Addresses, addr)
	}
	return book, nil
}

// CreateAddress saves a new address and returns its id.
func (c *Client) CreateAddress(ctx context.Context, accessToken string, address AddressInput) (string, error) {
	var payload struct {
		Result struct {
			CustomerAddress *struct {
				ID string `json:"id"`
			} `json:"customerAddress"`
			UserErrors []userError `json:"userErrors"`
		} `json:"customerAddressCreate"`
	}
	if err := c.Do(ctx, createAddressMutation, map[string]any{"address": address}, accessToken, &payload); err != nil {
		return "", err
	}
	if err := userErrorsOf(payload.Result.UserErrors); err != nil {
		return "", err
	}
	if payload.Result.CustomerAddress == nil {
		return "", fmt.Errorf("[customerapi CreateAddress] no address returned")
	}
	return payload.Result.CustomerAddress.ID, nil
}

// UpdateAddress replaces the writable fields of an address.
func (c *Client) UpdateAddress(ctx context.Context, accessToken, addressID string, address AddressInput) error {
	var payload struct {
		Result struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"customerAddressUpdate"`
	}
	variables := map[string]any{"addressId": addressID, "address": address}
	if err := c.Do(ctx, updateAddressMutation, variables, accessToken, &payload); err != nil {
		return err
	}
	return userErrorsOf(payload.Result.UserErrors)
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, accessToken, addressID string) error {
	var payload struct {
		Result struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"customerAddressDelete"`
	}
	if err := c.Do(ctx, deleteAddressMutation, map[string]any{"addressId": addressID}, accessToken, &payload); err != nil {
		return err
	}
	return userErrorsOf(payload.Result.UserErrors)
}

// SetDefaultAddress makes addressID the customer's default address.
func (c *Client) SetDefaultAddress(ctx context.Context, accessToken, addressID string) error {
	var payload struct {
		Result struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"customerAddressUpdate"`
	}
	if err := c.Do(ctx, setDefaultAddressMutation, map[string]any{"addressId": addressID}, accessToken, &payload); err != nil {
		return err
	}
	return userErrorsOf(payload.Result.UserErrors)
}

func userErrorsOf(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return &UserErrors{Messages: messages}
}
