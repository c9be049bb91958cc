package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type Services struct {
	Notify services.ChangeNotifier

	Auth          services.AuthService
	User          services.UserService
	Hospital      services.HospitalService
	Doctor        services.DoctorService
	BloodDonation services.BloodDonationService
	BloodRequest  services.BloodRequestService
	Organ         services.OrganService
	Reporting     services.ReportingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, hub *realtime.SSEHub, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	// With a bus every replica hears the change through its forwarder,
	// this one included, so publishing straight to the hub would double it.
	var emitter services.SSEEmitter = &services.HubEmitter{Hub: hub}
	if clients.ChangeBus != nil {
		emitter = &services.BusEmitter{Bus: clients.ChangeBus, Log: log.With("component", "BusEmitter")}
	}
	notify := services.NewChangeNotifier(emitter, metrics)

	return Services{
		Notify: notify,
		Auth: services.NewAuthService(
			db, log,
			repos.User, repos.UserToken, repos.Hospital,
			notify,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		User:          services.NewUserService(db, log, repos.User, repos.UserToken, notify),
		Hospital:      services.NewHospitalService(db, log, repos.Hospital, notify),
		Doctor:        services.NewDoctorService(db, log, repos.Doctor, repos.Hospital, notify),
		BloodDonation: services.NewBloodDonationService(db, log, repos.BloodDonation, repos.Inventory, repos.Hospital, notify),
		BloodRequest:  services.NewBloodRequestService(db, log, repos.BloodRequest, repos.Hospital, notify),
		Organ:         services.NewOrganService(db, log, repos.OrganDonation, repos.OrganRequest, repos.Hospital, notify),
		Reporting: services.NewReportingService(
			log, metrics,
			repos.User, repos.Hospital, repos.BloodDonation, repos.BloodRequest, repos.Inventory,
		),
	}
}
