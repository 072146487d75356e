package upstream

import (
	"github.com/darshak-ai/restaurant-platform/pkg/enums"
)

// OpeningHours maps a short weekday name ("Mon") to that day's open/close pair.
type OpeningHours map[string]DayHours

// DayHours is a single day's opening window.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Restaurant is a single chain location as the restaurant API represents it.
type Restaurant struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zip_code"`
	PhoneNumber  string       `json:"phone_number"`
	Email        string       `json:"email"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Description  string       `json:"description,omitempty"`
	Website      string       `json:"website,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	OpeningHours OpeningHours `json:"opening_hours,omitempty"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// RestaurantInput carries the editable restaurant fields for create/update.
type RestaurantInput struct {
	Name         string        `json:"name,omitempty"`
	Address      string        `json:"address,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	ZipCode      string        `json:"zip_code,omitempty"`
	PhoneNumber  string        `json:"phone_number,omitempty"`
	Email        string        `json:"email,omitempty"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	Description  string        `json:"description,omitempty"`
	Website      string        `json:"website,omitempty"`
	ImageURL     string        `json:"image_url,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
	IsActive     *bool         `json:"is_active,omitempty"`
}

// MenuCategory groups items within a menu.
type MenuCategory struct {
	ID           int64  `json:"id"`
	MenuID       int64  `json:"menu_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// MenuItem is a purchasable line on a menu.
type MenuItem struct {
	ID           int64    `json:"id"`
	MenuID       int64    `json:"menu_id"`
	CategoryID   int64    `json:"category_id"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"image_url,omitempty"`
	Calories     *int     `json:"calories,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Allergens    []string `json:"allergens,omitempty"`
	DietaryInfo  []string `json:"dietary_info,omitempty"`
	IsAvailable  bool     `json:"is_available"`
	IsFeatured   bool     `json:"is_featured"`
	DisplayOrder int      `json:"display_order"`
}

// Menu is a restaurant's full menu with its categories and items.
type Menu struct {
	ID           int64          `json:"id"`
	RestaurantID int64          `json:"restaurant_id"`
	Name         string         `json:"name" validate:"required"`
	Description  string         `json:"description,omitempty"`
	IsDefault    bool           `json:"is_default"`
	IsActive     bool           `json:"is_active"`
	Categories   []MenuCategory `json:"categories"`
	Items        []MenuItem     `json:"items"`
}

// MenuInput carries the editable menu fields for create/update.
type MenuInput struct {
	RestaurantID int64  `json:"restaurant_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	IsDefault    *bool  `json:"is_default,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// OrderItemInput is a single order line as the restaurant API expects it on
// order creation. Modifiers are always sent, null when unused.
type OrderItemInput struct {
	MenuItemID          int64    `json:"menu_item_id"`
	Quantity            int      `json:"quantity"`
	Modifiers           []string `json:"modifiers"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// CreateOrderInput is the order-creation payload.
type CreateOrderInput struct {
	RestaurantID        int64            `json:"restaurant_id" validate:"required"`
	CustomerName        string           `json:"customer_name" validate:"required"`
	CustomerPhone       string           `json:"customer_phone" validate:"required"`
	CustomerEmail       string           `json:"customer_email,omitempty"`
	OrderType           enums.OrderType  `json:"order_type" validate:"required"`
	Items               []OrderItemInput `json:"items" validate:"required,min=1"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
}

// OrderItem is an order line as the restaurant API returns it.
type OrderItem struct {
	ID                  int64   `json:"id,omitempty"`
	MenuItemID          int64   `json:"menu_item_id"`
	Name                string  `json:"name,omitempty"`
	Price               float64 `json:"price,omitempty"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// Order is a submitted order.
type Order struct {
	ID                  int64               `json:"id"`
	OrderNumber         string              `json:"order_number"`
	RestaurantID        int64               `json:"restaurant_id"`
	CustomerName        string              `json:"customer_name"`
	CustomerPhone       string              `json:"customer_phone"`
	CustomerEmail       string              `json:"customer_email,omitempty"`
	OrderType           enums.OrderType     `json:"order_type"`
	Items               []OrderItem         `json:"items"`
	Subtotal            float64             `json:"subtotal"`
	TaxAmount           float64             `json:"tax_amount"`
	TotalAmount         float64             `json:"total_amount"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	EstimatedReadyTime  string              `json:"estimated_ready_time,omitempty"`
	Status              enums.OrderStatus   `json:"status"`
	PaymentStatus       enums.PaymentStatus `json:"payment_status,omitempty"`
	OTPVerified         bool                `json:"otp_verified,omitempty"`
	CreatedAt           string              `json:"created_at,omitempty"`
}

// UpdateOrderInput is a partial order update; zero-valued fields are omitted.
type UpdateOrderInput struct {
	Status              *enums.OrderStatus `json:"status,omitempty"`
	EstimatedReadyTime  string             `json:"estimated_ready_time,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
}

// VerifyOTPInput is the verification payload for a pending order.
type VerifyOTPInput struct {
	PhoneNumber string `json:"phone_number"`
	OTPCode     string `json:"otp_code"`
}

// VerifyOTPResult reports the upstream verification outcome.
type VerifyOTPResult struct {
	Message  string `json:"message,omitempty"`
	Verified bool   `json:"verified"`
}

// Analytics is the restaurant-scoped analytics report.
type Analytics struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      float64         `json:"total_revenue"`
	AverageOrderValue float64         `json:"average_order_value"`
	OrderTypes        map[string]int  `json:"order_types,omitempty"`
	Period            AnalyticsPeriod `json:"period"`
}

// AnalyticsPeriod is the inclusive reporting window.
type AnalyticsPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// User is an authenticated account as /auth/me returns it.
type User struct {
	ID         int64          `json:"id"`
	Email      string         `json:"email"`
	Username   string         `json:"username"`
	FullName   string         `json:"full_name"`
	Role       enums.UserRole `json:"role"`
	IsActive   bool           `json:"is_active"`
	IsVerified bool           `json:"is_verified"`
	CreatedAt  string         `json:"created_at,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the account-creation payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

// Token is the bearer token issued on login.
type Token struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
}

// CMSContent is an editorial item rendered on public pages.
type CMSContent struct {
	ID              int64               `json:"id"`
	Title           string              `json:"title" validate:"required"`
	Slug            string              `json:"slug"`
	ContentType     enums.ContentType   `json:"content_type"`
	Status          enums.ContentStatus `json:"status"`
	Content         string              `json:"content"`
	Excerpt         string              `json:"excerpt,omitempty"`
	FeaturedImage   string              `json:"featured_image,omitempty"`
	MetaTitle       string              `json:"meta_title,omitempty"`
	MetaDescription string              `json:"meta_description,omitempty"`
	DisplayOrder    *int                `json:"display_order,omitempty"`
	ShowInMenu      *bool               `json:"show_in_menu,omitempty"`
	CreatedAt       string              `json:"created_at,omitempty"`
	UpdatedAt       string              `json:"updated_at,omitempty"`
}

// CMSContentInput carries the editable CMS fields for create/update.
type CMSContentInput struct {
	Title           string               `json:"title,omitempty"`
	Slug            string               `json:"slug,omitempty"`
	ContentType     *enums.ContentType   `json:"content_type,omitempty"`
	Status          *enums.ContentStatus `json:"status,omitempty"`
	Content         string               `json:"content,omitempty"`
	Excerpt         string               `json:"excerpt,omitempty"`
	FeaturedImage   string               `json:"featured_image,omitempty"`
	MetaTitle       string               `json:"meta_title,omitempty"`
	MetaDescription string               `json:"meta_description,omitempty"`
	DisplayOrder    *int                 `json:"display_order,omitempty"`
	ShowInMenu      *bool                `json:"show_in_menu,omitempty"`
}
