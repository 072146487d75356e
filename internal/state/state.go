// Package state owns the per-session application state that the browser used
// to keep locally: the signed-in session, the selected restaurant, the last
// known location, the cart, the current order and the order history. Every
// mutation runs under the session's lock and is persisted immediately, so a
// reload sees exactly what the previous request left behind.
package state

import (
	"github.com/darshak-ai/restaurant-platform/internal/cart"
	"github.com/darshak-ai/restaurant-platform/internal/checkout"
	"github.com/darshak-ai/restaurant-platform/pkg/types"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// StorageKey names the persisted snapshot, carried over from the browser
// storage key the state originally lived under.
const StorageKey = "restaurant-app-storage"

// Session is the authenticated identity attached to a browser session.
type Session struct {
	User          *upstream.User `json:"user"`
	Token         string         `json:"token,omitempty"`
	Authenticated bool           `json:"is_authenticated"`
}

// State is everything one browser session carries between requests.
type State struct {
	Session            Session
	SelectedRestaurant *upstream.Restaurant
	UserLocation       *types.Coordinates
	Cart               *cart.Cart
	CurrentOrder       *upstream.Order
	OrderHistory       []upstream.Order
	Checkout           *checkout.Checkout
}

// NewState returns an empty session state with a ready cart.
func NewState() *State {
	return &State{Cart: cart.New()}
}

// Logout clears the signed-in session, the cart and the current order. The
// selected restaurant, the stored location and the order history survive.
func (s *State) Logout() {
	s.Session = Session{}
	s.Cart = cart.New()
	s.CurrentOrder = nil
	s.Checkout = nil
}

// RecordOrder pushes a completed order onto the history, most recent first,
// and makes it the current order.
func (s *State) RecordOrder(order upstream.Order) {
	s.CurrentOrder = &order
	s.OrderHistory = append([]upstream.Order{order}, s.OrderHistory...)
}

// snapshot is the persisted subset of State. The current order and checkout
// progress are deliberately transient.
type snapshot struct {
	User               *upstream.User       `json:"user"`
	Token              string               `json:"token,omitempty"`
	IsAuthenticated    bool                 `json:"is_authenticated"`
	SelectedRestaurant *upstream.Restaurant `json:"selected_restaurant"`
	UserLocation       *types.Coordinates   `json:"user_location"`
	Cart               *cart.Cart           `json:"cart"`
	OrderHistory       []upstream.Order     `json:"order_history"`
}

func (s *State) toSnapshot() snapshot {
	return snapshot{
		User:               s.Session.User,
		Token:              s.Session.Token,
		IsAuthenticated:    s.Session.Authenticated,
		SelectedRestaurant: s.SelectedRestaurant,
		UserLocation:       s.UserLocation,
		Cart:               s.Cart,
		OrderHistory:       s.OrderHistory,
	}
}

func (s *State) fromSnapshot(snap snapshot) {
	s.Session = Session{
		User:          snap.User,
		Token:         snap.Token,
		Authenticated: snap.IsAuthenticated,
	}
	s.SelectedRestaurant = snap.SelectedRestaurant
	s.UserLocation = snap.UserLocation
	if snap.Cart != nil {
		s.Cart = snap.Cart
	} else {
		s.Cart = cart.New()
	}
	s.OrderHistory = snap.OrderHistory
}
