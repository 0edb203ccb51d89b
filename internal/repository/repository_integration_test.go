//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/database"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("workjunction"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedWorker(t *testing.T, users *repository.GormUserRepository, name, email, phone, city string, w models.Worker) (*models.User, *models.Worker) {
	t.Helper()
	u := &models.User{
		ID:       uuid.New(),
		FullName: name,
		Email:    email,
		Phone:    phone,
		Password: "hash",
		Role:     models.RoleWorker,
		Address:  models.Address{City: city},
		IsActive: true,
	}
	w.ID = uuid.New()
	if w.VerificationStage == "" {
		w.VerificationStage = verification.StageTNCPending
	}
	require.NoError(t, users.Create(context.Background(), u, &w))
	return u, &w
}

func TestRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	workers := repository.NewWorkerRepository(db)
	services := repository.NewServiceRepository(db)
	audits := repository.NewVerificationRepository(db)

	rate := func(f float64) *float64 { return &f }
	suresh, sureshW := seedWorker(t, users, "Suresh Patil", "suresh@example.com", "9000000001", "Pune", models.Worker{
		Category: models.CategoryPlumber, Skills: pq.StringArray{"pipe-fitting"}, LanguagesSpoken: pq.StringArray{"Marathi"},
		Experience: 3, HourlyRate: rate(200), Rating: 4.1,
	})
	_, meenaW := seedWorker(t, users, "Meena Shah", "meena@example.com", "9000000002", "Mumbai", models.Worker{
		Category: models.CategoryElectrician, Skills: pq.StringArray{"wiring", "inverters"}, LanguagesSpoken: pq.StringArray{"Hindi"},
		Experience: 9, HourlyRate: rate(250), Rating: 4.8,
	})
	seedWorker(t, users, "Imran 100% Khan", "imran@example.com", "9000000003", "Mumbai", models.Worker{
		Category: models.CategoryElectrician, Skills: pq.StringArray{"wiring"}, HourlyRate: rate(500), Rating: 3.9,
	})

	t.Run("duplicate email is ErrDuplicate", func(t *testing.T) {
		err := users.Create(ctx, &models.User{ID: uuid.New(), FullName: "x", Email: "suresh@example.com", Phone: "9000000099", Password: "h", Role: models.RoleCustomer}, nil)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("worker-side search", func(t *testing.T) {
		lo, hi := 100.0, 300.0
		got, err := workers.Search(ctx, repository.WorkerFilter{Category: "Electrician", MinRate: &lo, MaxRate: &hi})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, meenaW.ID, got[0].ID)

		got, err = workers.Search(ctx, repository.WorkerFilter{Skills: []string{"wiring", "pipe-fitting"}})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, meenaW.ID, got[0].ID)

		got, err = workers.Search(ctx, repository.WorkerFilter{LanguagesSpoken: []string{"Marathi"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, sureshW.ID, got[0].ID)
	})

	t.Run("user-side match escapes wildcards", func(t *testing.T) {
		all, err := workers.Search(ctx, repository.WorkerFilter{})
		require.NoError(t, err)
		ids := make([]uuid.UUID, len(all))
		for i := range all {
			ids[i] = all[i].UserID
		}

		got, err := users.FindMatching(ctx, ids, repository.UserMatch{City: "mum"})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = users.FindMatching(ctx, ids, repository.UserMatch{Name: "100%"})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = users.FindMatching(ctx, ids, repository.UserMatch{Name: "%"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("update returns the row", func(t *testing.T) {
		updated, err := workers.Update(ctx, sureshW.ID, map[string]any{
			models.ColVerificationStage: string(verification.StageTNCAccepted),
			models.ColHourlyRate:        nil,
			models.ColSkills:            pq.StringArray{},
		})
		require.NoError(t, err)
		assert.Equal(t, verification.StageTNCAccepted, updated.VerificationStage)
		assert.Nil(t, updated.HourlyRate)
		assert.Empty(t, updated.Skills)
		assert.Equal(t, suresh.ID, updated.UserID)

		_, err = workers.Update(ctx, uuid.New(), map[string]any{models.ColBio: "x"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("service ownership", func(t *testing.T) {
		svc := &models.Service{ID: uuid.New(), WorkerID: sureshW.ID, Name: "Tap repair", Category: "Plumbing", HourlyRate: 300}
		require.NoError(t, services.Create(ctx, svc))

		_, err := services.UpdateOwned(ctx, svc.ID, meenaW.ID, map[string]any{"hourly_rate": 1.0})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, services.DeleteOwned(ctx, svc.ID, meenaW.ID), repository.ErrNotFound)

		updated, err := services.UpdateOwned(ctx, svc.ID, sureshW.ID, map[string]any{"hourly_rate": 0.0})
		require.NoError(t, err)
		assert.Equal(t, 0.0, updated.HourlyRate)
		assert.Equal(t, "Tap repair", updated.Name)

		require.NoError(t, services.DeleteOwned(ctx, svc.ID, sureshW.ID))
		list, err := services.ListByWorker(ctx, sureshW.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("otp state", func(t *testing.T) {
		exp := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)
		require.NoError(t, users.SetOTP(ctx, suresh.ID, "abc123", exp))
		u, err := users.FindByID(ctx, suresh.ID)
		require.NoError(t, err)
		require.NotNil(t, u.OTPHash)
		assert.Equal(t, "abc123", *u.OTPHash)

		require.NoError(t, users.MarkMobileVerified(ctx, suresh.ID))
		u, err = users.FindByID(ctx, suresh.ID)
		require.NoError(t, err)
		assert.True(t, u.IsMobileVerified)
		assert.Nil(t, u.OTPHash)
		assert.Nil(t, u.OTPExpiresAt)
	})

	t.Run("review queue and history", func(t *testing.T) {
		reason := "blurry scan"
		require.NoError(t, audits.Create(ctx, &models.Verification{
			ID: uuid.New(), WorkerID: meenaW.ID, Stage: verification.StageRejected,
			RejectedReason: &reason, ReviewedBy: suresh.ID, ReviewedAt: time.Now(),
		}))
		rows, err := audits.ListByWorker(ctx, meenaW.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "blurry scan", *rows[0].RejectedReason)

		queue, total, err := workers.ListByStage(ctx, verification.StageTNCPending, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, queue, 2)
	})
}
