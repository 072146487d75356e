package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Restaurants lists every location in the chain.
func (c *Client) Restaurants(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := c.do(ctx, "restaurants_list", http.MethodGet, "/restaurants/", nil, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Restaurant fetches a single location by id.
func (c *Client) Restaurant(ctx context.Context, id int64) (*Restaurant, error) {
	var restaurant Restaurant
	path := fmt.Sprintf("/restaurants/%d", id)
	if err := c.do(ctx, "restaurants_get", http.MethodGet, path, nil, nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// NearbyRestaurants lists locations within radiusMiles of the given point.
func (c *Client) NearbyRestaurants(ctx context.Context, latitude, longitude, radiusMiles float64) ([]Restaurant, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("radius", strconv.FormatFloat(radiusMiles, 'f', -1, 64))

	var restaurants []Restaurant
	if err := c.do(ctx, "restaurants_nearby", http.MethodGet, "/restaurants/nearby", query, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// CreateRestaurant adds a location.
func (c *Client) CreateRestaurant(ctx context.Context, input RestaurantInput) (*Restaurant, error) {
	var restaurant Restaurant
	if err := c.do(ctx, "restaurants_create", http.MethodPost, "/restaurants/", nil, input, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// UpdateRestaurant applies a partial update to a location.
func (c *Client) UpdateRestaurant(ctx context.Context, id int64, input RestaurantInput) (*Restaurant, error) {
	var restaurant Restaurant
	path := fmt.Sprintf("/restaurants/%d", id)
	if err := c.do(ctx, "restaurants_update", http.MethodPut, path, nil, input, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// DeleteRestaurant removes a location.
func (c *Client) DeleteRestaurant(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/restaurants/%d", id)
	return c.do(ctx, "restaurants_delete", http.MethodDelete, path, nil, nil, nil)
}
