package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// RestaurantMenus lists every menu for a location.
func (c *Client) RestaurantMenus(ctx context.Context, restaurantID int64) ([]Menu, error) {
	var menus []Menu
	path := fmt.Sprintf("/menus/restaurant/%d", restaurantID)
	if err := c.do(ctx, "menus_by_restaurant", http.MethodGet, path, nil, nil, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// Menu fetches a single menu with its categories and items.
func (c *Client) Menu(ctx context.Context, id int64) (*Menu, error) {
	var menu Menu
	path := fmt.Sprintf("/menus/%d", id)
	if err := c.do(ctx, "menus_get", http.MethodGet, path, nil, nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// FeaturedItems lists a location's featured menu items.
func (c *Client) FeaturedItems(ctx context.Context, restaurantID int64) ([]MenuItem, error) {
	var items []MenuItem
	path := fmt.Sprintf("/menus/restaurant/%d/featured", restaurantID)
	if err := c.do(ctx, "menus_featured", http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SearchMenuItems runs the upstream item search for a location.
func (c *Client) SearchMenuItems(ctx context.Context, restaurantID int64, search string) ([]MenuItem, error) {
	query := url.Values{}
	query.Set("q", search)

	var items []MenuItem
	path := fmt.Sprintf("/menus/restaurant/%d/search", restaurantID)
	if err := c.do(ctx, "menus_search", http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMenu adds a menu.
func (c *Client) CreateMenu(ctx context.Context, input MenuInput) (*Menu, error) {
	var menu Menu
	if err := c.do(ctx, "menus_create", http.MethodPost, "/menus/", nil, input, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu applies a partial update to a menu.
func (c *Client) UpdateMenu(ctx context.Context, id int64, input MenuInput) (*Menu, error) {
	var menu Menu
	path := fmt.Sprintf("/menus/%d", id)
	if err := c.do(ctx, "menus_update", http.MethodPut, path, nil, input, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// DeleteMenu removes a menu.
func (c *Client) DeleteMenu(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/menus/%d", id)
	return c.do(ctx, "menus_delete", http.MethodDelete, path, nil, nil, nil)
}
