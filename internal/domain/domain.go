package domain

import (
	"github.com/yungbote/lifeline-backend/internal/domain/auth"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/domain/hospital"
	"github.com/yungbote/lifeline-backend/internal/domain/organ"
	"github.com/yungbote/lifeline-backend/internal/domain/user"
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Hospital = hospital.Hospital
	Doctor   = hospital.Doctor

	BloodDonation = blood.Donation
	BloodRequest  = blood.Request
	InventoryLot  = blood.InventoryLot

	OrganDonation = organ.Donation
	OrganRequest  = organ.Request
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&Hospital{},
		&Doctor{},
		&BloodDonation{},
		&BloodRequest{},
		&InventoryLot{},
		&OrganDonation{},
		&OrganRequest{},
	}
}
