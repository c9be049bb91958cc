package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/domain/hospital"
	"github.com/yungbote/lifeline-backend/internal/domain/organ"
	"github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

//go:embed seed/demo.yaml
var demoYAML []byte

const dateLayout = "2006-01-02"

type demoData struct {
	Hospitals []struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		Phone   string `yaml:"phone"`
		Email   string `yaml:"email"`
		License string `yaml:"license"`
	} `yaml:"hospitals"`
	Users []struct {
		Name      string   `yaml:"name"`
		Email     string   `yaml:"email"`
		Password  string   `yaml:"password"`
		Phone     string   `yaml:"phone"`
		BloodType string   `yaml:"blood_type"`
		Address   string   `yaml:"address"`
		Age       int      `yaml:"age"`
		Gender    string   `yaml:"gender"`
		Organs    []string `yaml:"organs"`
		Role      string   `yaml:"role"`
	} `yaml:"users"`
	Doctors []struct {
		Name           string `yaml:"name"`
		Email          string `yaml:"email"`
		Phone          string `yaml:"phone"`
		Specialization string `yaml:"specialization"`
		Hospital       string `yaml:"hospital"`
		License        string `yaml:"license"`
	} `yaml:"doctors"`
	BloodDonations []struct {
		Donor        string `yaml:"donor"`
		Hospital     string `yaml:"hospital"`
		BloodType    string `yaml:"blood_type"`
		Quantity     int    `yaml:"quantity"`
		DonationDate string `yaml:"donation_date"`
		ExpiryDate   string `yaml:"expiry_date"`
		Status       string `yaml:"status"`
		Notes        string `yaml:"notes"`
	} `yaml:"blood_donations"`
	BloodRequests []struct {
		Requester     string `yaml:"requester"`
		Hospital      string `yaml:"hospital"`
		BloodType     string `yaml:"blood_type"`
		Quantity      int    `yaml:"quantity"`
		Urgency       string `yaml:"urgency"`
		Reason        string `yaml:"reason"`
		Status        string `yaml:"status"`
		RequestedDate string `yaml:"requested_date"`
		FulfilledDate string `yaml:"fulfilled_date"`
	} `yaml:"blood_requests"`
	Inventory []struct {
		BloodType  string `yaml:"blood_type"`
		Quantity   int    `yaml:"quantity"`
		ExpiryDate string `yaml:"expiry_date"`
		Hospital   string `yaml:"hospital"`
		Status     string `yaml:"status"`
	} `yaml:"inventory"`
	OrganDonations []struct {
		Donor        string `yaml:"donor"`
		Hospital     string `yaml:"hospital"`
		OrganType    string `yaml:"organ_type"`
		Status       string `yaml:"status"`
		DonationDate string `yaml:"donation_date"`
		Notes        string `yaml:"notes"`
	} `yaml:"organ_donations"`
	OrganRequests []struct {
		Requester     string `yaml:"requester"`
		Hospital      string `yaml:"hospital"`
		OrganType     string `yaml:"organ_type"`
		Urgency       string `yaml:"urgency"`
		Reason        string `yaml:"reason"`
		Status        string `yaml:"status"`
		RequestedDate string `yaml:"requested_date"`
		FulfilledDate string `yaml:"fulfilled_date"`
	} `yaml:"organ_requests"`
}

// SeedDemoData loads the embedded demo dataset in one transaction. It does
// nothing when any hospital already exists, so it is safe to run on every boot.
func SeedDemoData(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("component", "DemoSeeder")

	var existing int64
	if err := db.WithContext(ctx).Model(&hospital.Hospital{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count hospitals: %w", err)
	}
	if existing > 0 {
		seedLog.Debug("Demo data skipped, store already populated", "hospitals", existing)
		return nil
	}

	var data demoData
	if err := yaml.Unmarshal(demoYAML, &data); err != nil {
		return fmt.Errorf("decode demo data: %w", err)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hospitals := map[string]uuid.UUID{}
		for _, h := range data.Hospitals {
			row := &hospital.Hospital{
				Name:          h.Name,
				Address:       h.Address,
				Phone:         h.Phone,
				Email:         h.Email,
				LicenseNumber: h.License,
				Status:        hospital.StatusActive,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("hospital %s: %w", h.License, err)
			}
			hospitals[h.License] = row.ID
		}
		hospitalID := func(license string) (uuid.UUID, error) {
			id, ok := hospitals[license]
			if !ok {
				return uuid.Nil, fmt.Errorf("unknown hospital %q", license)
			}
			return id, nil
		}

		// bcrypt is slow on purpose; hash each distinct password once.
		hashes := map[string]string{}
		people := map[string]uuid.UUID{}
		for _, u := range data.Users {
			hash, ok := hashes[u.Password]
			if !ok {
				b, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				hash = string(b)
				hashes[u.Password] = hash
			}
			organs, err := json.Marshal(u.Organs)
			if err != nil {
				return err
			}
			age := u.Age
			row := &user.User{
				Name:           u.Name,
				Email:          u.Email,
				Password:       hash,
				Phone:          u.Phone,
				BloodType:      u.BloodType,
				Address:        u.Address,
				Age:            &age,
				Gender:         u.Gender,
				OrganDonor:     len(u.Organs) > 0,
				OrgansToDonate: datatypes.JSON(organs),
				Role:           user.Role(u.Role),
				Status:         user.StatusActive,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("user %s: %w", u.Email, err)
			}
			people[u.Email] = row.ID
		}
		personID := func(email string) (uuid.UUID, error) {
			id, ok := people[email]
			if !ok {
				return uuid.Nil, fmt.Errorf("unknown user %q", email)
			}
			return id, nil
		}

		for _, d := range data.Doctors {
			hid, err := hospitalID(d.Hospital)
			if err != nil {
				return err
			}
			row := &hospital.Doctor{
				Name:           d.Name,
				Email:          d.Email,
				Phone:          d.Phone,
				Specialization: d.Specialization,
				HospitalID:     &hid,
				LicenseNumber:  d.License,
				Status:         hospital.StatusActive,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("doctor %s: %w", d.License, err)
			}
		}

		for _, d := range data.BloodDonations {
			donor, err := personID(d.Donor)
			if err != nil {
				return err
			}
			hid, err := hospitalID(d.Hospital)
			if err != nil {
				return err
			}
			donated, err := parseDate(d.DonationDate)
			if err != nil {
				return err
			}
			expires, err := parseDate(d.ExpiryDate)
			if err != nil {
				return err
			}
			row := &blood.Donation{
				DonorID:      donor,
				HospitalID:   hid,
				BloodType:    d.BloodType,
				Quantity:     d.Quantity,
				DonationDate: donated,
				ExpiryDate:   expires,
				Status:       blood.DonationStatus(d.Status),
				Notes:        d.Notes,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		for _, r := range data.BloodRequests {
			requester, err := personID(r.Requester)
			if err != nil {
				return err
			}
			hid, err := hospitalID(r.Hospital)
			if err != nil {
				return err
			}
			requested, err := parseDate(r.RequestedDate)
			if err != nil {
				return err
			}
			fulfilled, err := parseOptionalDate(r.FulfilledDate)
			if err != nil {
				return err
			}
			row := &blood.Request{
				RequesterID:   requester,
				HospitalID:    hid,
				BloodType:     r.BloodType,
				Quantity:      r.Quantity,
				Urgency:       blood.Urgency(r.Urgency),
				Reason:        r.Reason,
				Status:        blood.RequestStatus(r.Status),
				RequestedDate: requested,
				FulfilledDate: fulfilled,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		for _, l := range data.Inventory {
			hid, err := hospitalID(l.Hospital)
			if err != nil {
				return err
			}
			expires, err := parseDate(l.ExpiryDate)
			if err != nil {
				return err
			}
			row := &blood.InventoryLot{
				BloodType:  l.BloodType,
				Quantity:   l.Quantity,
				ExpiryDate: expires,
				HospitalID: &hid,
				Status:     blood.LotStatus(l.Status),
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		for _, d := range data.OrganDonations {
			donor, err := personID(d.Donor)
			if err != nil {
				return err
			}
			hid, err := hospitalID(d.Hospital)
			if err != nil {
				return err
			}
			donated, err := parseOptionalDate(d.DonationDate)
			if err != nil {
				return err
			}
			row := &organ.Donation{
				DonorID:      donor,
				HospitalID:   hid,
				OrganType:    d.OrganType,
				Status:       organ.DonationStatus(d.Status),
				DonationDate: donated,
				Notes:        d.Notes,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		for _, r := range data.OrganRequests {
			requester, err := personID(r.Requester)
			if err != nil {
				return err
			}
			hid, err := hospitalID(r.Hospital)
			if err != nil {
				return err
			}
			requested, err := parseDate(r.RequestedDate)
			if err != nil {
				return err
			}
			fulfilled, err := parseOptionalDate(r.FulfilledDate)
			if err != nil {
				return err
			}
			row := &organ.Request{
				RequesterID:   requester,
				HospitalID:    hid,
				OrganType:     r.OrganType,
				Urgency:       r.Urgency,
				Reason:        r.Reason,
				Status:        organ.RequestStatus(r.Status),
				RequestedDate: requested,
				FulfilledDate: fulfilled,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	seedLog.Info("Demo data seeded",
		"hospitals", len(data.Hospitals),
		"people", len(data.Users),
		"inventory_lots", len(data.Inventory),
	)
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
