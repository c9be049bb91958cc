package repos

import (
	"github.com/yungbote/lifeline-backend/internal/data/repos/auth"
	"github.com/yungbote/lifeline-backend/internal/data/repos/blood"
	"github.com/yungbote/lifeline-backend/internal/data/repos/hospital"
	"github.com/yungbote/lifeline-backend/internal/data/repos/organ"
	"github.com/yungbote/lifeline-backend/internal/data/repos/user"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type HospitalRepo = hospital.HospitalRepo
type DoctorRepo = hospital.DoctorRepo

type BloodDonationRepo = blood.DonationRepo
type BloodRequestRepo = blood.RequestRepo
type InventoryRepo = blood.InventoryRepo

type OrganDonationRepo = organ.DonationRepo
type OrganRequestRepo = organ.RequestRepo

type DonorCard = user.DonorCard
type DoctorView = hospital.DoctorView
type BloodDonationView = blood.DonationView
type BloodDonationFilter = blood.DonationFilter
type BloodRequestView = blood.RequestView
type OrganDonationView = organ.DonationView
type OrganRequestView = organ.RequestView

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewHospitalRepo(db *gorm.DB, baseLog *logger.Logger) HospitalRepo {
	return hospital.NewHospitalRepo(db, baseLog)
}
func NewDoctorRepo(db *gorm.DB, baseLog *logger.Logger) DoctorRepo {
	return hospital.NewDoctorRepo(db, baseLog)
}

func NewBloodDonationRepo(db *gorm.DB, baseLog *logger.Logger) BloodDonationRepo {
	return blood.NewDonationRepo(db, baseLog)
}
func NewBloodRequestRepo(db *gorm.DB, baseLog *logger.Logger) BloodRequestRepo {
	return blood.NewRequestRepo(db, baseLog)
}
func NewInventoryRepo(db *gorm.DB, baseLog *logger.Logger) InventoryRepo {
	return blood.NewInventoryRepo(db, baseLog)
}

func NewOrganDonationRepo(db *gorm.DB, baseLog *logger.Logger) OrganDonationRepo {
	return organ.NewDonationRepo(db, baseLog)
}
func NewOrganRequestRepo(db *gorm.DB, baseLog *logger.Logger) OrganRequestRepo {
	return organ.NewRequestRepo(db, baseLog)
}
