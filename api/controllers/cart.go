package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/cart"
	"github.com/darshak-ai/restaurant-platform/internal/catalog"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type cartLineView struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	ImageURL            string  `json:"image_url,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	LineTotal           float64 `json:"line_total"`
}

type cartView struct {
	Items     []cartLineView `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  float64        `json:"subtotal"`
	Tax       float64        `json:"tax"`
	Total     float64        `json:"total"`
}

type addCartItemInput struct {
	MenuItemID          int64  `json:"menu_item_id" validate:"required,min=1"`
	Quantity            int    `json:"quantity" validate:"min=1,max=99"`
	SpecialInstructions string `json:"special_instructions" validate:"max=500"`
}

type updateCartItemInput struct {
	Quantity            *int    `json:"quantity" validate:"omitempty,min=0,max=99"`
	SpecialInstructions *string `json:"special_instructions" validate:"omitempty,max=500"`
}

func renderCart(c *cart.Cart, taxRate decimal.Decimal) cartView {
	items := c.Items()
	lines := make([]cartLineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, cartLineView{
			ID:                  item.ID,
			Name:                item.Name,
			Price:               money(item.Price),
			Quantity:            item.Quantity,
			ImageURL:            item.ImageURL,
			SpecialInstructions: item.SpecialInstructions,
			LineTotal:           money(item.LineTotal()),
		})
	}
	return cartView{
		Items:     lines,
		ItemCount: c.ItemCount(),
		Subtotal:  money(c.Subtotal()),
		Tax:       money(c.Tax(taxRate)),
		Total:     money(c.Total(taxRate)),
	}
}

// ViewCart serves the session cart with derived totals.
func ViewCart(states *state.Store, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view cartView
		err = states.View(ctx, sessionID, func(st *state.State) error {
			view = renderCart(st.Cart, taxRate)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AddCartItem adds a menu item to the session cart. The line price is read
// from the selected restaurant's menu, never from the request.
func AddCartItem(api *upstream.Client, states *state.Store, observer *session.Observer, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input addCartItemInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var selected *upstream.Restaurant
		err = states.View(ctx, sessionID, func(st *state.State) error {
			selected = st.SelectedRestaurant
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if selected == nil {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeStateConflict, "no restaurant selected"))
			return
		}

		menus, err := api.RestaurantMenus(ctx, selected.ID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		menu, ok := catalog.DefaultMenu(menus)
		if !ok {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeNotFound, "no menu available for this location"))
			return
		}
		var found *upstream.MenuItem
		for i := range menu.Items {
			if menu.Items[i].ID == input.MenuItemID {
				found = &menu.Items[i]
				break
			}
		}
		if found == nil || !found.IsAvailable {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeNotFound, "menu item not available"))
			return
		}

		var view cartView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			st.Cart.Add(cart.Item{
				ID:                  found.ID,
				Name:                found.Name,
				Price:               decimal.NewFromFloat(found.Price),
				Quantity:            input.Quantity,
				ImageURL:            found.ImageURL,
				SpecialInstructions: input.SpecialInstructions,
			})
			view = renderCart(st.Cart, taxRate)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// UpdateCartItem changes a line's quantity or instructions. Quantity zero
// removes the line.
func UpdateCartItem(states *state.Store, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := validators.ParsePathID(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input updateCartItemInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view cartView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if input.Quantity != nil {
				st.Cart.SetQuantity(itemID, *input.Quantity)
			}
			if input.SpecialInstructions != nil {
				st.Cart.SetInstructions(itemID, *input.SpecialInstructions)
			}
			view = renderCart(st.Cart, taxRate)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(states *state.Store, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := validators.ParsePathID(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view cartView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			st.Cart.Remove(itemID)
			view = renderCart(st.Cart, taxRate)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ClearCart empties the cart in one call.
func ClearCart(states *state.Store, taxRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view cartView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			st.Cart.Clear()
			view = renderCart(st.Cart, taxRate)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
