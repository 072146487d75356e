package controllers

import (
	"net/http"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/internal/catalog"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type menuCategoryView struct {
	upstream.MenuCategory
	ItemCount int `json:"item_count"`
}

type menuResponse struct {
	Menu       upstream.Menu       `json:"menu"`
	Categories []menuCategoryView  `json:"categories"`
	Items      []upstream.MenuItem `json:"items"`
}

// Menu serves the selected restaurant's default menu, filtered by optional
// category and search query parameters. A restaurant must be selected first.
func Menu(api *upstream.Client, states *state.Store, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
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

		filter := catalog.MenuItemFilter{
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}
		items := catalog.FilterMenuItems(menu.Items, filter)

		categories := catalog.SortCategories(menu.Categories)
		views := make([]menuCategoryView, 0, len(categories))
		for _, category := range categories {
			views = append(views, menuCategoryView{
				MenuCategory: category,
				ItemCount:    catalog.CountItemsInCategory(menu.Items, category.ID),
			})
		}

		responses.WriteSuccess(w, menuResponse{
			Menu:       menu,
			Categories: views,
			Items:      items,
		})
	}
}

// SearchMenu runs a full-text item search on the restaurant API for the
// selected location. The plain menu endpoint filters locally; this one is
// for queries that should match ingredients and other indexed fields.
func SearchMenu(api *upstream.Client, states *state.Store, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := r.URL.Query().Get("q")
		if query == "" {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeValidation, "q is required"))
			return
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

		items, err := api.SearchMenuItems(ctx, selected.ID, query)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if items == nil {
			items = []upstream.MenuItem{}
		}
		responses.WriteSuccess(w, items)
	}
}
