package models

import "time"

// Roles
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Order statuses
const (
	OrderReceived   = "received"
	OrderInProgress = "in_progress"
	OrderReady      = "ready"
	OrderCompleted  = "completed"
	OrderCanceled   = "canceled"
	OrderPending    = "pending"
)

// Payment statuses
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// Booking statuses
const (
	BookingRequested          = "requested"
	BookingCanceledByCustomer = "canceled_by_customer"
)

type OrderItem struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type PaymentResult struct {
	Status            string   `json:"status"`
	Method            string   `json:"method,omitempty"`
	Tendered          *float64 `json:"tendered,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	ProviderPaymentID string   `json:"providerPaymentId,omitempty"`
	Error             string   `json:"error,omitempty"`
}

type Order struct {
	ID              string         `json:"id"`
	CreatedAt       time.Time      `json:"createdAt"`
	Items           []OrderItem    `json:"items"`
	Customer        Contact        `json:"customer"`
	Notes           string         `json:"notes"`
	Status          string         `json:"status"`
	StatusUpdatedAt *time.Time     `json:"statusUpdatedAt,omitempty"`
	StaffID         string         `json:"staffId,omitempty"`
	Payment         *PaymentResult `json:"payment,omitempty"`
}

// Total returns the order value in whole cents.
func (o *Order) Total() int64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Qty)
	}
	return int64(sum*100 + 0.5)
}

type Booking struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	RoomType      string     `json:"roomType"`
	Attendees     int        `json:"attendees"`
	Purpose       string     `json:"purpose"`
	Contact       Contact    `json:"contact"`
	DepositAmount float64    `json:"depositAmount"`
	DepositStatus string     `json:"depositStatus"`
	Status        string     `json:"status"`
	CanceledAt    *time.Time `json:"canceledAt,omitempty"`
}

// PublicBooking is the sanitized projection exposed on the public
// availability listing. Contact and deposit fields never leave the server.
type PublicBooking struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoomType  string `json:"roomType"`
	Status    string `json:"status"`
}

func (b *Booking) Public() PublicBooking {
	return PublicBooking{
		ID:        b.ID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		RoomType:  b.RoomType,
		Status:    b.Status,
	}
}

type InventoryItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Qty          int    `json:"qty"`
	WarnQty      int    `json:"warnQty"`
	SupplierLink string `json:"supplierLink"`
}

const AlertLowInventory = "low_inventory"

type Alert struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	WarnQty   int       `json:"warnQty"`
	CreatedAt time.Time `json:"createdAt"`
	Type      string    `json:"type"`
}

type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Count       int    `json:"count,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

type User struct {
	ID              string `json:"id"`
	Role            string `json:"role"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	Membership      string `json:"membership,omitempty"`
	DiscountPercent int    `json:"discountPercent,omitempty"`
}

// Public strips the password hash before a user leaves the server.
func (u User) Public() User {
	u.Password = ""
	return u
}

type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Branding struct {
	SiteName     string            `json:"siteName"`
	PrimaryColor string            `json:"primaryColor"`
	LogoURL      string            `json:"logoUrl"`
	MenuImages   map[string]string `json:"menuImages"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Recipient is a configured receiver of operational notifications.
type Recipient struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Channels []string `json:"channels"`
	Types    []string `json:"types"`
}
