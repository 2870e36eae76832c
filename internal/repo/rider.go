package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srm-logistics/delivery-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var riderColumns = []string{
	"id", "rider_uid", "full_name", "email", "mobile_number", "alt_mobile_number",
	"cnic", "date_of_birth", "cnic_issue_date", "cnic_address", "current_address",
	"password_hash", "profile_image_url", "blood_group", "branch_name",
	"has_license", "license_number", "license_issued", "license_expires",
	"has_bike", "bike_name", "bike_number", "bike_model_year",
	"employment_status", "current_status", "fcm_token",
	"joining_date", "registration_date", "record_updated",
	"checked_by", "action_taken", "action_taken_by",
}

type riderRepo struct {
	base
}

func NewRiderRepo(db *sqlx.DB) *riderRepo {
	return &riderRepo{base: newBase(db)}
}

func (r *riderRepo) SaveRider(ctx context.Context, rd entities.Rider) error {
	query, args := r.qb.Insert("riders").
		Columns(
			"rider_uid", "full_name", "email", "mobile_number", "alt_mobile_number",
			"cnic", "date_of_birth", "cnic_issue_date", "cnic_address", "current_address",
			"password_hash", "profile_image_url", "blood_group", "branch_name",
			"has_license", "license_number", "license_issued", "license_expires",
			"has_bike", "bike_name", "bike_number", "bike_model_year",
			"employment_status", "registration_date",
		).
		Values(
			nullString(rd.RiderUID), rd.FullName, rd.Email, rd.MobileNumber, nullString(rd.AltMobileNumber),
			rd.CNIC, nullString(rd.DateOfBirth), nullString(rd.CNICIssueDate), nullString(rd.CNICAddress), nullString(rd.CurrentAddress),
			rd.PasswordHash, nullString(rd.ProfileImageURL), nullString(rd.BloodGroup), nullString(rd.BranchName),
			rd.HasLicense, nullString(rd.LicenseNumber), nullString(rd.LicenseIssued), nullString(rd.LicenseExpires),
			rd.HasBike, nullString(rd.BikeName), nullString(rd.BikeNumber), nullString(rd.BikeModelYear),
			rd.EmploymentStatus, nullString(rd.RegistrationDate),
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save rider: %w", err)
	}
	return nil
}

// ContactConflict reports which contact detail is already registered, or ""
// when the rider is unknown. Checks run in the same order the registration
// form presents the fields.
func (r *riderRepo) ContactConflict(ctx context.Context, email, mobile, altMobile, cnic string) (string, error) {
	checks := []struct {
		field string
		pred  sq.Sqlizer
	}{
		{"email", sq.Eq{"email": email}},
		{"mobileNumber", sq.Or{sq.Eq{"mobile_number": mobile}, sq.Eq{"alt_mobile_number": mobile}}},
		{"altMobileNumber", sq.Or{sq.Eq{"mobile_number": altMobile}, sq.Eq{"alt_mobile_number": altMobile}}},
		{"cnicNumber", sq.Eq{"cnic": cnic}},
	}

	for _, check := range checks {
		query, args := r.qb.Select("count(*)").From("riders").Where(check.pred).MustSql()

		var count int
		if err := r.getContext(ctx, &count, query, args...); err != nil {
			return "", fmt.Errorf("failed to check rider %s: %w", check.field, err)
		}
		if count > 0 {
			return check.field, nil
		}
	}
	return "", nil
}

func (r *riderRepo) GetRiderByMobile(ctx context.Context, mobile string) (entities.Rider, error) {
	return r.getRider(ctx, sq.Eq{"mobile_number": mobile})
}

func (r *riderRepo) GetRiderByCNIC(ctx context.Context, cnic string) (entities.Rider, error) {
	return r.getRider(ctx, sq.Eq{"cnic": cnic})
}

func (r *riderRepo) GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error) {
	return r.getRider(ctx, sq.Eq{"rider_uid": riderUID})
}

func (r *riderRepo) getRider(ctx context.Context, pred sq.Eq) (entities.Rider, error) {
	query, args := r.qb.Select(riderColumns...).From("riders").Where(pred).MustSql()

	var rider Rider
	err := r.getContext(ctx, &rider, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Rider{}, entities.ErrRiderNotFound
	}
	if err != nil {
		return entities.Rider{}, fmt.Errorf("failed to get rider: %w", err)
	}
	return RiderToEntity(rider), nil
}

func (r *riderRepo) ListRiders(ctx context.Context) ([]entities.Rider, error) {
	return r.listRiders(ctx, nil)
}

func (r *riderRepo) ListActiveRiders(ctx context.Context) ([]entities.Rider, error) {
	return r.listRiders(ctx, sq.Eq{"employment_status": entities.EmploymentActive})
}

func (r *riderRepo) listRiders(ctx context.Context, pred any) ([]entities.Rider, error) {
	q := r.qb.Select(riderColumns...).From("riders").OrderBy("id")
	if pred != nil {
		q = q.Where(pred)
	}
	query, args := q.MustSql()

	var riders []Rider
	if err := r.selectContext(ctx, &riders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select riders: %w", err)
	}

	result := make([]entities.Rider, 0, len(riders))
	for _, rd := range riders {
		result = append(result, RiderToEntity(rd))
	}
	return result, nil
}

func (r *riderRepo) RiderUIDExists(ctx context.Context, riderUID string) (bool, error) {
	query, args := r.qb.Select("count(*)").
		From("riders").
		Where(sq.Eq{"rider_uid": riderUID}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check rider uid: %w", err)
	}
	return count > 0, nil
}

func (r *riderRepo) UpdateCurrentStatus(ctx context.Context, riderUID, status string) error {
	query, args := r.qb.Update("riders").
		Set("current_status", status).
		Where(sq.Eq{"rider_uid": riderUID}).
		MustSql()

	return r.updateOne(ctx, query, args)
}

func (r *riderRepo) UpdateFCMToken(ctx context.Context, riderUID, token string) error {
	query, args := r.qb.Update("riders").
		Set("fcm_token", token).
		Where(sq.Eq{"rider_uid": riderUID}).
		MustSql()

	return r.updateOne(ctx, query, args)
}

// HireRider assigns the operational UID and activates the rider record
// identified by CNIC.
func (r *riderRepo) HireRider(ctx context.Context, h entities.HireRequest) error {
	query, args := r.qb.Update("riders").
		Set("rider_uid", h.RiderUID).
		Set("joining_date", nullString(h.JoiningDate)).
		Set("record_updated", nullString(h.RecordUpdated)).
		Set("checked_by", nullString(h.CheckedBy)).
		Set("action_taken", "Hired").
		Set("action_taken_by", nullString(h.ActionTakenBy)).
		Set("employment_status", entities.EmploymentActive).
		Where(sq.Eq{"cnic": h.CNIC}).
		MustSql()

	return r.updateOne(ctx, query, args)
}

// UpdateEmploymentStatus records an admin decision on the rider identified
// by CNIC: suspension or reactivation, with the audit trail columns.
func (r *riderRepo) UpdateEmploymentStatus(ctx context.Context, cnic, status, actionTaken, actionTakenBy string) error {
	query, args := r.qb.Update("riders").
		Set("employment_status", status).
		Set("action_taken", nullString(actionTaken)).
		Set("action_taken_by", nullString(actionTakenBy)).
		Where(sq.Eq{"cnic": cnic}).
		MustSql()

	return r.updateOne(ctx, query, args)
}

func (r *riderRepo) DeleteRiderByCNIC(ctx context.Context, cnic string) error {
	query, args := r.qb.Delete("riders").Where(sq.Eq{"cnic": cnic}).MustSql()
	return r.updateOne(ctx, query, args)
}

func (r *riderRepo) updateOne(ctx context.Context, query string, args []any) error {
	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update rider: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrRiderNotFound
	}
	return nil
}
