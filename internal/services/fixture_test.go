package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/fieldcrypt"
)

var t0 = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeGenerator struct {
	content string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.content, g.err
}

func (g *fakeGenerator) Provider() string { return "fake" }

func (g *fakeGenerator) Model() string { return "fake-model-1" }

type failingStore struct{}

func (failingStore) Insert(context.Context, *gorm.DB, *db_models.AuditLog) error {
	return errors.New("audit table unavailable")
}

type fixture struct {
	db        *gorm.DB
	clock     *testClock
	generator *fakeGenerator

	creatorRepo     repositories.CreatorRepository
	credentialRepo  repositories.CredentialRepository
	milestoneRepo   repositories.MilestoneRepository
	deliverableRepo repositories.DeliverableRepository
	auditRepo       repositories.AuditLogRepository
	userRepo        repositories.UserRepository

	creators     CreatorServiceInterface
	credentials  CredentialServiceInterface
	milestones   MilestoneServiceInterface
	deliverables DeliverableServiceInterface
	audits       AuditServiceInterface
	dashboard    DashboardServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, nil)
}

// newFixtureWithStore swaps the audit store when store is non-nil.
func newFixtureWithStore(t *testing.T, store audit.Store) *fixture {
	t.Helper()

	cipher, err := fieldcrypt.DeriveCipher("services-test-secret")
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	db, err := infra.OpenSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"), cipher)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:              db,
		clock:           &testClock{now: t0},
		generator:       &fakeGenerator{content: "# Brand guide"},
		creatorRepo:     repositories.NewCreatorRepository(db),
		credentialRepo:  repositories.NewCredentialRepository(db),
		milestoneRepo:   repositories.NewMilestoneRepository(db),
		deliverableRepo: repositories.NewDeliverableRepository(db),
		auditRepo:       repositories.NewAuditLogRepository(db),
		userRepo:        repositories.NewUserRepository(db),
	}
	if store == nil {
		store = f.auditRepo
	}
	recorder := audit.NewRecorder(store)

	f.creators = NewCreatorService(db, f.creatorRepo, f.credentialRepo, f.milestoneRepo, f.deliverableRepo, recorder, f.clock)
	f.credentials = NewCredentialService(db, f.credentialRepo, f.creatorRepo, recorder, f.clock)
	f.milestones = NewMilestoneService(f.milestoneRepo, f.creatorRepo, f.clock)
	f.deliverables = NewDeliverableService(db, f.deliverableRepo, f.creatorRepo, f.generator, recorder, f.clock)
	f.audits = NewAuditService(f.auditRepo)
	f.dashboard = NewDashboardService(f.creatorRepo)
	return f
}

func operator() audit.Actor {
	id := uuid.New()
	return audit.Actor{UserID: &id, Email: "ops@studio.test", IP: "10.0.0.7"}
}

func (f *fixture) createCreator(t *testing.T, brand string) uuid.UUID {
	t.Helper()
	detail, err := f.creators.CreateCreator(context.Background(), operator(), request_models.CreateCreatorRequest{
		CreatorName:  "Creator of " + brand,
		CreatorEmail: strings.ToLower(strings.ReplaceAll(brand, " ", "")) + "@example.com",
		BrandName:    brand,
		BrandNiche:   "Fitness",
	})
	if err != nil {
		t.Fatalf("create creator %s: %v", brand, err)
	}
	id, err := uuid.Parse(detail.ID)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	return id
}

func (f *fixture) entriesFor(t *testing.T, targetID uuid.UUID) []db_models.AuditLog {
	t.Helper()
	entries, _, err := f.auditRepo.List(context.Background(), repositories.AuditLogFilter{TargetID: &targetID})
	if err != nil {
		t.Fatalf("list audit entries: %v", err)
	}
	return entries
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}
