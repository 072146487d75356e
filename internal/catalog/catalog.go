// Package catalog holds the pure filtering and selection rules shared by the
// storefront and admin surfaces. Everything here is synchronous and cannot
// fail; an empty result is a valid "no matches" state.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// MenuItemFilter narrows a menu's items. Category matches the item's category
// id rendered as a string, or CategoryAll for everything. Search is a
// case-insensitive substring over name and description.
type MenuItemFilter struct {
	Category string
	Search   string
}

// FilterMenuItems applies the filter and returns the survivors sorted by
// display order ascending. The sort is stable so ties keep fetch order.
func FilterMenuItems(items []upstream.MenuItem, filter MenuItemFilter) []upstream.MenuItem {
	out := make([]upstream.MenuItem, 0, len(items))

	category := strings.TrimSpace(filter.Category)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, item := range items {
		if category != "" && category != CategoryAll {
			if strconv.FormatInt(item.CategoryID, 10) != category {
				continue
			}
		}
		if search != "" {
			name := strings.ToLower(item.Name)
			description := strings.ToLower(item.Description)
			if !strings.Contains(name, search) && !strings.Contains(description, search) {
				continue
			}
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// SortCategories orders menu categories by display order ascending, stable.
func SortCategories(categories []upstream.MenuCategory) []upstream.MenuCategory {
	out := make([]upstream.MenuCategory, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// CountItemsInCategory reports how many menu items belong to the category.
func CountItemsInCategory(items []upstream.MenuItem, categoryID int64) int {
	count := 0
	for _, item := range items {
		if item.CategoryID == categoryID {
			count++
		}
	}
	return count
}

// FilterRestaurants keeps locations whose name, city or address contains the
// search text, case-insensitive. Blank search keeps everything.
func FilterRestaurants(restaurants []upstream.Restaurant, search string) []upstream.Restaurant {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		out := make([]upstream.Restaurant, len(restaurants))
		copy(out, restaurants)
		return out
	}

	out := make([]upstream.Restaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		if strings.Contains(strings.ToLower(restaurant.Name), needle) ||
			strings.Contains(strings.ToLower(restaurant.City), needle) ||
			strings.Contains(strings.ToLower(restaurant.Address), needle) {
			out = append(out, restaurant)
		}
	}
	return out
}

// DefaultMenu picks the menu flagged as default, falling back to the first
// fetched. Returns false when no menus exist.
func DefaultMenu(menus []upstream.Menu) (upstream.Menu, bool) {
	for _, menu := range menus {
		if menu.IsDefault {
			return menu, true
		}
	}
	if len(menus) > 0 {
		return menus[0], true
	}
	return upstream.Menu{}, false
}

// OrderFilter narrows the admin order list. Search hits order number and
// customer name case-insensitively and customer phone as a plain substring.
// StatusAll disables the status filter.
type OrderFilter struct {
	Search string
	Status string
}

// StatusAll disables order status filtering.
const StatusAll = "all"

// FilterOrders applies the admin search and status filter, preserving fetch
// order.
func FilterOrders(orders []upstream.Order, filter OrderFilter) []upstream.Order {
	search := strings.TrimSpace(filter.Search)
	lowered := strings.ToLower(search)
	status := strings.TrimSpace(filter.Status)

	out := make([]upstream.Order, 0, len(orders))
	for _, order := range orders {
		if search != "" {
			matched := strings.Contains(strings.ToLower(order.OrderNumber), lowered) ||
				strings.Contains(strings.ToLower(order.CustomerName), lowered) ||
				strings.Contains(order.CustomerPhone, search)
			if !matched {
				continue
			}
		}
		if status != "" && status != StatusAll {
			if order.Status != enums.OrderStatus(status) {
				continue
			}
		}
		out = append(out, order)
	}
	return out
}

// HoursToday renders a location's opening window for the given short weekday
// name ("mon" through "sun").
func HoursToday(restaurant upstream.Restaurant, weekday string) string {
	if len(restaurant.OpeningHours) == 0 {
		return "Hours not available"
	}
	hours, ok := restaurant.OpeningHours[strings.ToLower(weekday)]
	if !ok {
		return "Closed today"
	}
	return hours.Open + " - " + hours.Close
}
