package repo

import (
	"database/sql"

	"github.com/srm-logistics/delivery-service/internal/entities"
)

type Order struct {
	OrderID               int             `db:"order_id"`
	InvoiceNumber         string          `db:"invoice_number"`
	DeliveryHint          sql.NullString  `db:"delivery_hint"`
	OrderDate             sql.NullString  `db:"order_date"`
	OrderTime             sql.NullString  `db:"order_time"`
	GSTAmount             sql.NullString  `db:"gst_amount"`
	DeliveryServiceCharge sql.NullString  `db:"delivery_service_charge"`
	NetAmount             sql.NullString  `db:"net_amount"`
	GSTPercentagePaid     sql.NullString  `db:"gst_percentage_paid"`
	GSTPaidAmount         sql.NullString  `db:"gst_paid_amount"`
	PaymentMethod         sql.NullString  `db:"payment_method"`
	PaymentClearedBy      sql.NullString  `db:"payment_cleared_by"`
	PaymentStatus         sql.NullString  `db:"payment_status"`
	CustomerName          string          `db:"customer_name"`
	CustomerContact       sql.NullString  `db:"customer_contact"`
	DeliveryAddress       string          `db:"delivery_address"`
	AddressType           sql.NullString  `db:"address_type"`
	DeliveryDate          sql.NullString  `db:"delivery_date"`
	DeliveryTime          sql.NullString  `db:"delivery_time"`
	DeliveryCoordinates   sql.NullString  `db:"delivery_coordinates"`
	Status                string          `db:"status"`
	RiderUID              sql.NullString  `db:"rider_uid"`
	RiderName             sql.NullString  `db:"rider_name"`
	DeliveryDuration      sql.NullString  `db:"delivery_duration"`
	DeliveryDistance      sql.NullString  `db:"delivery_distance"`
	FuelConsumption       sql.NullFloat64 `db:"fuel_consumption"`
	CustomerFeedback      sql.NullString  `db:"customer_feedback"`
	Cleared               bool            `db:"cleared"`
}

type OrderItem struct {
	OrderID     int     `db:"order_id"`
	Description string  `db:"description"`
	Quantity    int     `db:"quantity"`
	Rate        float64 `db:"rate"`
	Amount      float64 `db:"amount"`
}

type Rider struct {
	ID              int64          `db:"id"`
	RiderUID        sql.NullString `db:"rider_uid"`
	FullName        string         `db:"full_name"`
	Email           string         `db:"email"`
	MobileNumber    string         `db:"mobile_number"`
	AltMobileNumber sql.NullString `db:"alt_mobile_number"`
	CNIC            string         `db:"cnic"`
	DateOfBirth     sql.NullString `db:"date_of_birth"`
	CNICIssueDate   sql.NullString `db:"cnic_issue_date"`
	CNICAddress     sql.NullString `db:"cnic_address"`
	CurrentAddress  sql.NullString `db:"current_address"`
	PasswordHash    string         `db:"password_hash"`
	ProfileImageURL sql.NullString `db:"profile_image_url"`
	BloodGroup      sql.NullString `db:"blood_group"`
	BranchName      sql.NullString `db:"branch_name"`

	HasLicense     bool           `db:"has_license"`
	LicenseNumber  sql.NullString `db:"license_number"`
	LicenseIssued  sql.NullString `db:"license_issued"`
	LicenseExpires sql.NullString `db:"license_expires"`

	HasBike       bool           `db:"has_bike"`
	BikeName      sql.NullString `db:"bike_name"`
	BikeNumber    sql.NullString `db:"bike_number"`
	BikeModelYear sql.NullString `db:"bike_model_year"`

	EmploymentStatus string         `db:"employment_status"`
	CurrentStatus    sql.NullString `db:"current_status"`
	FCMToken         sql.NullString `db:"fcm_token"`

	JoiningDate      sql.NullString `db:"joining_date"`
	RegistrationDate sql.NullString `db:"registration_date"`
	RecordUpdated    sql.NullString `db:"record_updated"`
	CheckedBy        sql.NullString `db:"checked_by"`
	ActionTaken      sql.NullString `db:"action_taken"`
	ActionTakenBy    sql.NullString `db:"action_taken_by"`
}

type Admin struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	FullName     sql.NullString `db:"full_name"`
	Email        sql.NullString `db:"email"`
	PasswordHash string         `db:"password_hash"`
}

func AdminToEntity(a Admin) entities.Admin {
	return entities.Admin{
		ID:           a.ID,
		Username:     a.Username,
		FullName:     nullStringToString(a.FullName),
		Email:        nullStringToString(a.Email),
		PasswordHash: a.PasswordHash,
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		OrderID:               o.OrderID,
		InvoiceNumber:         o.InvoiceNumber,
		DeliveryHint:          nullStringToString(o.DeliveryHint),
		OrderDate:             nullStringToString(o.OrderDate),
		OrderTime:             nullStringToString(o.OrderTime),
		GSTAmount:             nullStringToString(o.GSTAmount),
		DeliveryServiceCharge: nullStringToString(o.DeliveryServiceCharge),
		NetAmount:             nullStringToString(o.NetAmount),
		GSTPercentagePaid:     nullStringToString(o.GSTPercentagePaid),
		GSTPaidAmount:         nullStringToString(o.GSTPaidAmount),
		PaymentMethod:         nullStringToString(o.PaymentMethod),
		PaymentClearedBy:      nullStringToString(o.PaymentClearedBy),
		PaymentStatus:         nullStringToString(o.PaymentStatus),
		CustomerName:          o.CustomerName,
		CustomerContact:       nullStringToString(o.CustomerContact),
		DeliveryAddress:       o.DeliveryAddress,
		AddressType:           nullStringToString(o.AddressType),
		DeliveryDate:          nullStringToString(o.DeliveryDate),
		DeliveryTime:          nullStringToString(o.DeliveryTime),
		DeliveryCoordinates:   nullStringToString(o.DeliveryCoordinates),
		Status:                entities.OrderStatus(o.Status),
		RiderUID:              nullStringToString(o.RiderUID),
		RiderName:             nullStringToString(o.RiderName),
		DeliveryDuration:      nullStringToString(o.DeliveryDuration),
		DeliveryDistance:      nullStringToString(o.DeliveryDistance),
		CustomerFeedback:      nullStringToString(o.CustomerFeedback),
		Cleared:               o.Cleared,
	}

	if o.FuelConsumption.Valid {
		order.FuelConsumption = o.FuelConsumption.Float64
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}

func ItemToEntity(i OrderItem) entities.OrderItem {
	return entities.OrderItem{
		Description: i.Description,
		Quantity:    i.Quantity,
		Rate:        i.Rate,
		Amount:      i.Amount,
	}
}

func RiderToEntity(r Rider) entities.Rider {
	return entities.Rider{
		ID:              r.ID,
		RiderUID:        nullStringToString(r.RiderUID),
		FullName:        r.FullName,
		Email:           r.Email,
		MobileNumber:    r.MobileNumber,
		AltMobileNumber: nullStringToString(r.AltMobileNumber),
		CNIC:            r.CNIC,
		DateOfBirth:     nullStringToString(r.DateOfBirth),
		CNICIssueDate:   nullStringToString(r.CNICIssueDate),
		CNICAddress:     nullStringToString(r.CNICAddress),
		CurrentAddress:  nullStringToString(r.CurrentAddress),
		PasswordHash:    r.PasswordHash,
		ProfileImageURL: nullStringToString(r.ProfileImageURL),
		BloodGroup:      nullStringToString(r.BloodGroup),
		BranchName:      nullStringToString(r.BranchName),

		HasLicense:     r.HasLicense,
		LicenseNumber:  nullStringToString(r.LicenseNumber),
		LicenseIssued:  nullStringToString(r.LicenseIssued),
		LicenseExpires: nullStringToString(r.LicenseExpires),

		HasBike:       r.HasBike,
		BikeName:      nullStringToString(r.BikeName),
		BikeNumber:    nullStringToString(r.BikeNumber),
		BikeModelYear: nullStringToString(r.BikeModelYear),

		EmploymentStatus: r.EmploymentStatus,
		CurrentStatus:    nullStringToString(r.CurrentStatus),
		FCMToken:         nullStringToString(r.FCMToken),

		JoiningDate:      nullStringToString(r.JoiningDate),
		RegistrationDate: nullStringToString(r.RegistrationDate),
		RecordUpdated:    nullStringToString(r.RecordUpdated),
		CheckedBy:        nullStringToString(r.CheckedBy),
		ActionTaken:      nullStringToString(r.ActionTaken),
		ActionTakenBy:    nullStringToString(r.ActionTakenBy),
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat64(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
