package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

const (
	reportBloodInventory = "blood_inventory"
	reportDashboardStats = "dashboard_stats"
)

// ReportingService reads fresh snapshots and folds them into the inventory
// summary and dashboard figures. Nothing is cached between calls.
type ReportingService interface {
	BloodInventory(ctx context.Context) ([]reporting.InventorySummary, error)
	DashboardStats(ctx context.Context) (reporting.DashboardStats, error)
}

type reportingService struct {
	log           *logger.Logger
	metrics       *observability.Metrics
	userRepo      repos.UserRepo
	hospitalRepo  repos.HospitalRepo
	donationRepo  repos.BloodDonationRepo
	requestRepo   repos.BloodRequestRepo
	inventoryRepo repos.InventoryRepo
}

func NewReportingService(
	log *logger.Logger,
	metrics *observability.Metrics,
	userRepo repos.UserRepo,
	hospitalRepo repos.HospitalRepo,
	donationRepo repos.BloodDonationRepo,
	requestRepo repos.BloodRequestRepo,
	inventoryRepo repos.InventoryRepo,
) ReportingService {
	serviceLog := log.With("service", "ReportingService")
	return &reportingService{
		log:           serviceLog,
		metrics:       metrics,
		userRepo:      userRepo,
		hospitalRepo:  hospitalRepo,
		donationRepo:  donationRepo,
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (rs *reportingService) BloodInventory(ctx context.Context) ([]reporting.InventorySummary, error) {
	lots, err := rs.inventoryRepo.LotSnapshot(dbctx.New(ctx))
	if err != nil {
		err = storageFailure("read inventory lots", err)
		rs.log.Warn("Blood inventory read failed", "error", err)
		rs.metrics.ObserveReportRead(reportBloodInventory, err)
		return nil, err
	}
	rs.metrics.ObserveReportRead(reportBloodInventory, nil)
	return reporting.SummarizeInventory(lots), nil
}

// DashboardStats reads the four collections concurrently. A failed read
// fails the whole call; counts are never reported as zero in its place.
func (rs *reportingService) DashboardStats(ctx context.Context) (reporting.DashboardStats, error) {
	var (
		people     []reporting.PersonRecord
		donations  []reporting.DonationEvent
		requests   []reporting.RequestEvent
		facilities []reporting.FacilityRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)
	g.Go(func() error {
		var err error
		if people, err = rs.userRepo.PeopleSnapshot(dbc); err != nil {
			return storageFailure("read users", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if donations, err = rs.donationRepo.DonationSnapshot(dbc); err != nil {
			return storageFailure("read blood donations", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if requests, err = rs.requestRepo.RequestSnapshot(dbc); err != nil {
			return storageFailure("read blood requests", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if facilities, err = rs.hospitalRepo.FacilitySnapshot(dbc); err != nil {
			return storageFailure("read hospitals", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		rs.log.Warn("Dashboard stats read failed", "error", err)
		rs.metrics.ObserveReportRead(reportDashboardStats, err)
		return reporting.DashboardStats{}, err
	}
	rs.metrics.ObserveReportRead(reportDashboardStats, nil)
	return reporting.ComputeDashboardStats(people, donations, requests, facilities), nil
}

func storageFailure(op string, err error) error {
	if errors.Is(err, apperrors.ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorageUnavailable, err)
}
