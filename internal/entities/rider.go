package entities

import "errors"

// Employment status of a rider. Registration starts in NewRegistration and
// only Active riders may log in or receive orders.
const (
	EmploymentNewRegistration = "New-Registration"
	EmploymentActive          = "Active"
	EmploymentSuspended       = "Suspended"
)

// Rider is a delivery rider. RiderUID is assigned when the rider is hired,
// not at registration.
type Rider struct {
	ID              int64
	RiderUID        string
	FullName        string
	Email           string
	MobileNumber    string
	AltMobileNumber string
	CNIC            string
	DateOfBirth     string
	CNICIssueDate   string
	CNICAddress     string
	CurrentAddress  string
	PasswordHash    string
	ProfileImageURL string
	BloodGroup      string
	BranchName      string

	HasLicense     bool
	LicenseNumber  string
	LicenseIssued  string
	LicenseExpires string

	HasBike       bool
	BikeName      string
	BikeNumber    string
	BikeModelYear string

	EmploymentStatus string
	CurrentStatus    string
	FCMToken         string

	JoiningDate      string
	RegistrationDate string
	RecordUpdated    string
	CheckedBy        string
	ActionTaken      string
	ActionTakenBy    string
}

// HireRequest carries the admin decision that turns a registered rider into
// an active one with an operational UID.
type HireRequest struct {
	CNIC          string
	RiderUID      string
	JoiningDate   string
	RecordUpdated string
	CheckedBy     string
	ActionTakenBy string
}

var (
	ErrRiderNotFound      = errors.New("rider not found")
	ErrRiderExists        = errors.New("rider already registered")
	ErrRiderUIDTaken      = errors.New("rider uid already assigned")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRiderNotActive     = errors.New("rider account is not active")
	ErrInvalidEmployment  = errors.New("invalid employment status")
)
