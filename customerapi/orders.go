package customerapi

import (
	"context"
	"fmt"
)

// DefaultOrdersPageSize applies when the caller does not ask for a page size.
const DefaultOrdersPageSize = 10

const getCustomerOrdersQuery = `
  query getCustomerOrders($first: Int = 10, $after: String) {
    customer {
      orders(first: $first, after: $after, reverse: true) {
        edges {
          cursor
          node {
            id
            name
            processedAt
            fulfillmentStatus
            financialStatus
            totalPrice {
              amount
              currencyCode
            }
            lineItems(first: 5) {
              edges {
                node {
                  title
                  quantity
                  image {
                    url
                    altText
                  }
                  variant {
                    price {
                      amount
                      currencyCode
                    }
                  }
                }
              }
            }
          }
        }
        pageInfo {
          hasNextPage
          hasPreviousPage
        }
      }
    }
  }
`

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Image    *Image `json:"image,omitempty"`
	Variant  *struct {
		Price Money `json:"price"`
	} `json:"variant,omitempty"`
}

// Order is one entry of the customer's order history. Name is the
// customer-facing order number, e.g. "#1001".
type Order struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ProcessedAt       string `json:"processedAt"`
	FulfillmentStatus string `json:"fulfillmentStatus"`
	FinancialStatus   string `json:"financialStatus"`
	TotalPrice        Money  `json:"totalPrice"`
	LineItems         struct {
		Edges []struct {
			Node LineItem `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// OrdersPage is a page of orders, newest first.
type OrdersPage struct {
	Orders      []Order `json:"orders"`
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   string  `json:"endCursor,omitempty"`
}

type ordersPayload struct {
	Customer *struct {
		Orders struct {
			Edges []struct {
				Cursor string `json:"cursor"`
				Node   Order  `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"orders"`
	} `json:"customer"`
}

// GetOrders returns up to first orders after the given cursor.
func (c *Client) GetOrders(ctx context.Context, accessToken string, first int, after string) (OrdersPage, error) {
	if first <= 0 {
		first = DefaultOrdersPageSize
	}
	variables := map[string]any{"first": first}
	if after != "" {
		variables["after"] = after
	}

	var payload ordersPayload
	if err := c.Do(ctx, getCustomerOrdersQuery, variables, accessToken, &payload); err != nil {
		return OrdersPage{}, err
	}

	if payload.Customer == nil {
		return OrdersPage{}, fmt.Errorf("[customerapi GetOrders] empty customer payload: %w", ErrUnauthenticated)
	}
	page := OrdersPage{Orders: []Order{}}
	for _, edge := range payload.Customer.Orders.Edges {
		page.Orders = append(page.Orders, edge.Node)
		page.EndCursor = edge.Cursor
	}
	page.HasNextPage = payload.Customer.Orders.PageInfo.HasNextPage
	return page, nil
}
