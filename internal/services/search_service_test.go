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
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedWorker struct {
	name      string
	city      string
	category  models.Category
	skills    []string
	languages []string
	exp       int
	rate      float64
	rating    float64
}

func searchFixture(t *testing.T, seeds ...seedWorker) *SearchService {
	t.Helper()
	store := testhelpers.NewStore()
	for i, s := range seeds {
		userID := uuid.New()
		store.PutUser(models.User{
			ID:       userID,
			FullName: s.name,
			Email:    s.name + "@example.com",
			Phone:    "900000000" + string(rune('0'+i)),
			Role:     models.RoleWorker,
			Address:  models.Address{City: s.city},
		})
		rate := s.rate
		store.PutWorker(models.Worker{
			ID:                uuid.New(),
			UserID:            userID,
			Category:          s.category,
			Skills:            pq.StringArray(s.skills),
			LanguagesSpoken:   pq.StringArray(s.languages),
			Experience:        s.exp,
			HourlyRate:        &rate,
			Rating:            s.rating,
			VerificationStage: verification.StageApproved,
		})
	}
	return NewSearchService(store.Workers(), store.Users())
}

func names(results []dto.WorkerSearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.User.FullName
	}
	return out
}

func TestSearchDropsWorkersWhoseUserDoesNotMatch(t *testing.T) {
	svc := searchFixture(t, seedWorker{
		name: "Suresh", city: "Pune", category: models.CategoryPlumber, skills: []string{"pipe-fitting"}, rate: 200,
	})

	results, err := svc.Search(context.Background(), &dto.WorkerSearchQuery{City: "Mumbai", Category: "Plumber"})

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestSearchFilters(t *testing.T) {
	svc := searchFixture(t,
		seedWorker{name: "Suresh Patil", city: "Pune", category: models.CategoryPlumber, skills: []string{"pipe-fitting"}, languages: []string{"Marathi"}, exp: 3, rate: 200, rating: 4.1},
		seedWorker{name: "Meena Shah", city: "Mumbai", category: models.CategoryPlumber, skills: []string{"drainage"}, languages: []string{"Hindi", "Gujarati"}, exp: 9, rate: 450, rating: 4.8},
		seedWorker{name: "Imran Khan", city: "mumbai", category: models.CategoryElectrician, skills: []string{"wiring"}, languages: []string{"Hindi"}, exp: 5, rate: 300, rating: 3.9},
	)
	ctx := context.Background()
	minExp := 4
	lo, hi := 250.0, 400.0

	cases := []struct {
		name  string
		query dto.WorkerSearchQuery
		want  []string
	}{
		{"all by rating", dto.WorkerSearchQuery{}, []string{"Meena Shah", "Suresh Patil", "Imran Khan"}},
		{"city case-insensitive", dto.WorkerSearchQuery{City: "MUM"}, []string{"Meena Shah", "Imran Khan"}},
		{"name substring", dto.WorkerSearchQuery{Name: "khan"}, []string{"Imran Khan"}},
		{"category", dto.WorkerSearchQuery{Category: "Plumber"}, []string{"Meena Shah", "Suresh Patil"}},
		{"skills overlap", dto.WorkerSearchQuery{Skills: []string{"wiring", "drainage"}}, []string{"Meena Shah", "Imran Khan"}},
		{"languages overlap", dto.WorkerSearchQuery{LanguagesSpoken: []string{"Gujarati"}}, []string{"Meena Shah"}},
		{"min experience", dto.WorkerSearchQuery{MinExperience: &minExp}, []string{"Meena Shah", "Imran Khan"}},
		{"price range", dto.WorkerSearchQuery{MinPrice: &lo, MaxPrice: &hi}, []string{"Imran Khan"}},
		{"combined", dto.WorkerSearchQuery{City: "mumbai", Category: "Plumber", Skills: []string{"drainage"}}, []string{"Meena Shah"}},
		{"limit", dto.WorkerSearchQuery{Limit: 1}, []string{"Meena Shah"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.query
			results, err := svc.Search(ctx, &q)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(results))
		})
	}
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	svc := searchFixture(t)
	lo, hi := 500.0, 100.0

	_, err := svc.Search(context.Background(), &dto.WorkerSearchQuery{MinPrice: &lo, MaxPrice: &hi})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
