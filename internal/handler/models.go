package handler

import (
	"strconv"

	"github.com/srm-logistics/delivery-service/internal/entities"
)

// Order is the wire representation of an order. Field names follow the
// portal/mobile clients, not the storage schema.
type Order struct {
	OrderID                     int     `json:"OrderID"`
	InvoiceNumber               string  `json:"InvoiceNumber"`
	DeliveryHint                string  `json:"DeliveryHint,omitempty"`
	OrderDate                   string  `json:"OrderDate,omitempty"`
	OrderTime                   string  `json:"OrderTime,omitempty"`
	OrderGSTAmount              string  `json:"OrderGSTAmount,omitempty"`
	OrderDeliveryServiceCharges string  `json:"OrderDeliveryServiceCharges,omitempty"`
	OrderNetAmount              string  `json:"OrderNetAmount,omitempty"`
	OrderGSTPercentagePaid      string  `json:"OrderGSTPercentagePaid,omitempty"`
	OrderGSTPaidAmount          string  `json:"OrderGSTPaidAmount,omitempty"`
	OrderPaymentMethod          string  `json:"OrderPaymentMethod,omitempty"`
	PaymentClearedBy            string  `json:"PaymentClearedBy,omitempty"`
	PaymentStatus               string  `json:"PaymentStatus,omitempty"`
	CustomerFullName            string  `json:"CustomerFullName"`
	CustomerContactNumber       string  `json:"CustomerContactNumber,omitempty"`
	OrderDeliveryAddress        string  `json:"OrderDeliveryAddress"`
	AddressType                 string  `json:"AddressType,omitempty"`
	DeliveryDate                string  `json:"DeliveryDate,omitempty"`
	DeliveryTime                string  `json:"DeliveryTime,omitempty"`
	DeliveryCoordinates         string  `json:"DeliveryCoordinates,omitempty"`
	OrderStatus                 string  `json:"OrderStatus"`
	RiderUID                    string  `json:"RiderUID,omitempty"`
	RiderName                   string  `json:"RiderName,omitempty"`
	DeliveryDuration            string  `json:"DeliveryDuration,omitempty"`
	DeliveryDistance            string  `json:"DeliveryDistance,omitempty"`
	FuelConsumption             float64 `json:"FuelConsumption,omitempty"`
	CustomerFeedback            string  `json:"CustomerFeedback,omitempty"`
	OrderCleared                bool    `json:"OrderCleared"`

	OrderItems []OrderItem `json:"OrderItems,omitempty"`
}

// OrderItem is a single line of an order. ItemAmount comes from the caller
// and is stored as sent.
type OrderItem struct {
	ItemDescription string  `json:"ItemDescription"`
	ItemQuantity    int     `json:"ItemQuantity"`
	ItemRate        float64 `json:"ItemRate"`
	ItemAmount      float64 `json:"ItemAmount"`
}

// MissingFields returns the names of required create fields that are absent.
func (o Order) MissingFields() []string {
	var missing []string
	if o.OrderID == 0 {
		missing = append(missing, "OrderID")
	}
	if o.InvoiceNumber == "" {
		missing = append(missing, "InvoiceNumber")
	}
	if o.CustomerFullName == "" {
		missing = append(missing, "CustomerFullName")
	}
	if o.OrderDeliveryAddress == "" {
		missing = append(missing, "OrderDeliveryAddress")
	}
	if len(o.OrderItems) == 0 {
		missing = append(missing, "OrderItems")
	}
	for i, it := range o.OrderItems {
		missing = append(missing, it.missingFields(i)...)
	}
	return missing
}

func (i OrderItem) missingFields(idx int) []string {
	var missing []string
	prefix := "OrderItems[" + strconv.Itoa(idx) + "]."
	if i.ItemDescription == "" {
		missing = append(missing, prefix+"ItemDescription")
	}
	if i.ItemQuantity == 0 {
		missing = append(missing, prefix+"ItemQuantity")
	}
	if i.ItemRate == 0 {
		missing = append(missing, prefix+"ItemRate")
	}
	if i.ItemAmount == 0 {
		missing = append(missing, prefix+"ItemAmount")
	}
	return missing
}

func OrderJSONToEntity(o Order) entities.Order {
	items := make([]entities.OrderItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, entities.OrderItem{
			Description: it.ItemDescription,
			Quantity:    it.ItemQuantity,
			Rate:        it.ItemRate,
			Amount:      it.ItemAmount,
		})
	}

	return entities.Order{
		OrderID:               o.OrderID,
		InvoiceNumber:         o.InvoiceNumber,
		DeliveryHint:          o.DeliveryHint,
		OrderDate:             o.OrderDate,
		OrderTime:             o.OrderTime,
		GSTAmount:             o.OrderGSTAmount,
		DeliveryServiceCharge: o.OrderDeliveryServiceCharges,
		NetAmount:             o.OrderNetAmount,
		GSTPercentagePaid:     o.OrderGSTPercentagePaid,
		GSTPaidAmount:         o.OrderGSTPaidAmount,
		PaymentMethod:         o.OrderPaymentMethod,
		PaymentClearedBy:      o.PaymentClearedBy,
		PaymentStatus:         o.PaymentStatus,
		CustomerName:          o.CustomerFullName,
		CustomerContact:       o.CustomerContactNumber,
		DeliveryAddress:       o.OrderDeliveryAddress,
		AddressType:           o.AddressType,
		DeliveryDate:          o.DeliveryDate,
		DeliveryTime:          o.DeliveryTime,
		DeliveryCoordinates:   o.DeliveryCoordinates,
		Status:                entities.OrderStatus(o.OrderStatus),
		RiderUID:              o.RiderUID,
		RiderName:             o.RiderName,
		DeliveryDuration:      o.DeliveryDuration,
		DeliveryDistance:      o.DeliveryDistance,
		FuelConsumption:       o.FuelConsumption,
		CustomerFeedback:      o.CustomerFeedback,
		Cleared:               o.OrderCleared,
		Items:                 items,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ItemDescription: it.Description,
			ItemQuantity:    it.Quantity,
			ItemRate:        it.Rate,
			ItemAmount:      it.Amount,
		})
	}

	return Order{
		OrderID:                     o.OrderID,
		InvoiceNumber:               o.InvoiceNumber,
		DeliveryHint:                o.DeliveryHint,
		OrderDate:                   o.OrderDate,
		OrderTime:                   o.OrderTime,
		OrderGSTAmount:              o.GSTAmount,
		OrderDeliveryServiceCharges: o.DeliveryServiceCharge,
		OrderNetAmount:              o.NetAmount,
		OrderGSTPercentagePaid:      o.GSTPercentagePaid,
		OrderGSTPaidAmount:          o.GSTPaidAmount,
		OrderPaymentMethod:          o.PaymentMethod,
		PaymentClearedBy:            o.PaymentClearedBy,
		PaymentStatus:               o.PaymentStatus,
		CustomerFullName:            o.CustomerName,
		CustomerContactNumber:       o.CustomerContact,
		OrderDeliveryAddress:        o.DeliveryAddress,
		AddressType:                 o.AddressType,
		DeliveryDate:                o.DeliveryDate,
		DeliveryTime:                o.DeliveryTime,
		DeliveryCoordinates:         o.DeliveryCoordinates,
		OrderStatus:                 o.Status.String(),
		RiderUID:                    o.RiderUID,
		RiderName:                   o.RiderName,
		DeliveryDuration:            o.DeliveryDuration,
		DeliveryDistance:            o.DeliveryDistance,
		FuelConsumption:             o.FuelConsumption,
		CustomerFeedback:            o.CustomerFeedback,
		OrderCleared:                o.Cleared,
		OrderItems:                  items,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}

// Rider is the wire representation of a rider. The password hash never
// leaves the service.
type Rider struct {
	RiderUID        string `json:"RUID,omitempty"`
	FullName        string `json:"RFullName"`
	Email           string `json:"REmail"`
	MobileNumber    string `json:"RMobileNumber"`
	AltMobileNumber string `json:"RAltMobileNumber,omitempty"`
	CNIC            string `json:"RiderCNIC"`
	ProfileImageURL string `json:"RProfileImage,omitempty"`
	BloodGroup      string `json:"RBloodGroup,omitempty"`
	BranchName      string `json:"RBranchName,omitempty"`

	EmploymentStatus string `json:"EmploymentStatus,omitempty"`
	CurrentStatus    string `json:"CurrentStatus,omitempty"`
	JoiningDate      string `json:"JoiningDate,omitempty"`
}

// AdminLoginRequest carries the portal operator credentials. Field names
// follow the admin portal form.
type AdminLoginRequest struct {
	Username string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Admin is the wire representation of a portal operator. The password hash
// never leaves the service.
type Admin struct {
	Username string `json:"userName"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

func AdminEntityToJSON(a entities.Admin) Admin {
	return Admin{
		Username: a.Username,
		FullName: a.FullName,
		Email:    a.Email,
	}
}

// CheckRiderRequest carries the contact details a registering rider wants to
// verify before filling the full form.
type CheckRiderRequest struct {
	Email           string `json:"email"`
	MobileNumber    string `json:"mobileNumber"`
	AltMobileNumber string `json:"altMobileNumber"`
	CNIC            string `json:"cnicNumber"`
}

type LoginRequest struct {
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Rider Rider  `json:"rider"`
}

// HireRiderRequest is the admin decision payload. Field names follow the
// admin portal form.
type HireRiderRequest struct {
	CNIC          string `json:"riderCNIC" validate:"required"`
	RiderUID      string `json:"riderId" validate:"required"`
	JoiningDate   string `json:"JDateRider"`
	RecordUpdated string `json:"updateRecordD"`
	CheckedBy     string `json:"detailsCheckedBy"`
	ActionTakenBy string `json:"actionTakenBy"`
}

func RiderEntityToJSON(r entities.Rider) Rider {
	return Rider{
		RiderUID:         r.RiderUID,
		FullName:         r.FullName,
		Email:            r.Email,
		MobileNumber:     r.MobileNumber,
		AltMobileNumber:  r.AltMobileNumber,
		CNIC:             r.CNIC,
		ProfileImageURL:  r.ProfileImageURL,
		BloodGroup:       r.BloodGroup,
		BranchName:       r.BranchName,
		EmploymentStatus: r.EmploymentStatus,
		CurrentStatus:    r.CurrentStatus,
		JoiningDate:      r.JoiningDate,
	}
}

func RidersEntityToJSON(riders []entities.Rider) []Rider {
	result := make([]Rider, 0, len(riders))
	for _, r := range riders {
		result = append(result, RiderEntityToJSON(r))
	}
	return result
}
