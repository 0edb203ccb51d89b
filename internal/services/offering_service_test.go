package services

import (
	"context"
	"testing"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/testhelpers"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoWorkers(t *testing.T) (*OfferingService, uuid.UUID, uuid.UUID) {
	t.Helper()
	store := testhelpers.NewStore()
	owner, other := uuid.New(), uuid.New()
	for _, userID := range []uuid.UUID{owner, other} {
		store.PutWorker(models.Worker{ID: uuid.New(), UserID: userID, VerificationStage: verification.StageApproved})
	}
	return NewOfferingService(store.Workers(), store.Services()), owner, other
}

func TestCreateAndListServices(t *testing.T) {
	svc, owner, other := twoWorkers(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, &dto.CreateServiceRequest{
		Name: " Tap repair ", Description: "Leaks and washers", Category: "Plumbing", HourlyRate: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tap repair", created.Name)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	list, err = svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestCreateServiceValidation(t *testing.T) {
	svc, owner, _ := twoWorkers(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, &dto.CreateServiceRequest{Name: "", Category: "Plumbing"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, owner, &dto.CreateServiceRequest{Name: "Tap", Category: "Plumbing", HourlyRate: -1})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, uuid.New(), &dto.CreateServiceRequest{Name: "Tap", Category: "Plumbing"})
	assert.Equal(t, ErrWorkerNotFound, err)
}

func TestUpdateServiceOwnedByAnotherWorkerIsNotFound(t *testing.T) {
	svc, owner, other := twoWorkers(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, owner, &dto.CreateServiceRequest{Name: "Tap repair", Category: "Plumbing", HourlyRate: 300})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, created.ID, &dto.UpdateServiceRequest{HourlyRate: dto.Some(1.0)})
	assert.Equal(t, ErrServiceNotFound, err)

	_, err = svc.Update(ctx, other, created.ID, &dto.UpdateServiceRequest{})
	assert.Equal(t, ErrServiceNotFound, err)

	_, err = svc.Update(ctx, owner, uuid.New(), &dto.UpdateServiceRequest{HourlyRate: dto.Some(1.0)})
	assert.Equal(t, ErrServiceNotFound, err)

	err = svc.Delete(ctx, other, created.ID)
	assert.Equal(t, ErrServiceNotFound, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 300.0, list[0].HourlyRate)
}

func TestUpdateServicePartial(t *testing.T) {
	svc, owner, _ := twoWorkers(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, owner, &dto.CreateServiceRequest{Name: "Tap repair", Description: "Leaks", Category: "Plumbing", HourlyRate: 300})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, created.ID, &dto.UpdateServiceRequest{
		HourlyRate:  dto.Some(0.0),
		Description: dto.Some(""),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.HourlyRate)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "Tap repair", updated.Name)

	_, err = svc.Update(ctx, owner, created.ID, &dto.UpdateServiceRequest{Name: dto.Some("  ")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Update(ctx, owner, created.ID, &dto.UpdateServiceRequest{HourlyRate: dto.Optional[float64]{Set: true, Null: true}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteService(t *testing.T) {
	svc, owner, _ := twoWorkers(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, owner, &dto.CreateServiceRequest{Name: "Tap repair", Category: "Plumbing"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	assert.Equal(t, ErrServiceNotFound, svc.Delete(ctx, owner, created.ID))
}
