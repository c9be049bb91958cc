package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Hospital repos.HospitalRepo
	Doctor   repos.DoctorRepo

	BloodDonation repos.BloodDonationRepo
	BloodRequest  repos.BloodRequestRepo
	Inventory     repos.InventoryRepo

	OrganDonation repos.OrganDonationRepo
	OrganRequest  repos.OrganRequestRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		Hospital:      repos.NewHospitalRepo(db, log),
		Doctor:        repos.NewDoctorRepo(db, log),
		BloodDonation: repos.NewBloodDonationRepo(db, log),
		BloodRequest:  repos.NewBloodRequestRepo(db, log),
		Inventory:     repos.NewInventoryRepo(db, log),
		OrganDonation: repos.NewOrganDonationRepo(db, log),
		OrganRequest:  repos.NewOrganRequestRepo(db, log),
	}
}
