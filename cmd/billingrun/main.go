package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/chethandvg/tenantmanagement/internal/cache"
	"github.com/chethandvg/tenantmanagement/internal/clock"
	"github.com/chethandvg/tenantmanagement/internal/config"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	"github.com/chethandvg/tenantmanagement/internal/postgres"
	pgrepo "github.com/chethandvg/tenantmanagement/internal/repository/postgres"
	"github.com/chethandvg/tenantmanagement/internal/service"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// billingrun executes one bulk invoice generation over all active leases of
// an organization for a calendar month.
func main() {
	var (
		orgID  string
		month  string
		method string
	)
	flag.StringVar(&orgID, "org", "", "organization ID to bill")
	flag.StringVar(&month, "month", "", "billing month in YYYY-MM format")
	flag.StringVar(&method, "method", "", "proration method override (ActualDaysInMonth or ThirtyDayMonth)")
	flag.Parse()

	if err := run(orgID, month, method); err != nil {
		fmt.Fprintln(os.Stderr, "billing run failed:", err)
		os.Exit(1)
	}
}

func run(orgID, month, method string) error {
	// Load .env if present; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if orgID == "" {
		orgID = types.DefaultOrganizationID
	}
	periodStart, periodEnd, err := monthBounds(month)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	client := postgres.NewClient(db, log)
	repos := pgrepo.NewRepositories(client, log)

	params := service.ServiceParams{
		Logger:               log,
		Config:               cfg,
		DB:                   client,
		Clock:                clock.New(),
		Cache:                cache.NewInMemoryCache(cfg.Cache.Enabled),
		LeaseRepo:            repos.Lease,
		ChargeTypeRepo:       repos.ChargeType,
		InvoiceRepo:          repos.Invoice,
		CreditNoteRepo:       repos.CreditNote,
		UtilityRatePlanRepo:  repos.UtilityRatePlan,
		UtilityStatementRepo: repos.UtilityStatement,
		SequenceRepo:         repos.Sequence,
		InvoiceRunRepo:       repos.InvoiceRun,
	}

	ctx := context.Background()
	ctx = types.SetOrganizationID(ctx, orgID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)

	runSvc := service.NewInvoiceRunService(params)
	resp, err := runSvc.ExecuteRun(ctx, dto.ExecuteInvoiceRunRequest{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Method:      types.ProrationMethod(method),
	})
	if err != nil {
		return err
	}

	log.Infow("billing run finished",
		"run_reference", resp.RunReference,
		"run_status", resp.RunStatus,
		"total_leases", resp.TotalLeases,
		"success_count", resp.SuccessCount,
		"failure_count", resp.FailureCount)

	fmt.Printf("%s: %s (%d/%d leases billed)\n",
		resp.RunReference, resp.RunStatus, resp.SuccessCount, resp.TotalLeases)
	return nil
}

// monthBounds expands YYYY-MM into the first and last day of that month.
// An empty month bills the previous calendar month.
func monthBounds(month string) (time.Time, time.Time, error) {
	var base time.Time
	if month == "" {
		now := time.Now().UTC()
		base = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	} else {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
		}
		base = parsed
	}

	start := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}
