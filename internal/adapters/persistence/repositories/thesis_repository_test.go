package repositories

import (
	"context"
	"errors"
	"testing"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTheses(t *testing.T, repo ThesisRepository, theses ...*models.Thesis) {
	t.Helper()
	for _, th := range theses {
		if th.Adviser == "" {
			th.Adviser = "Dr. Cruz"
		}
		if th.Abstract == "" {
			th.Abstract = "..."
		}
		require.NoError(t, repo.Create(context.Background(), th))
	}
}

func titles(theses []*models.Thesis) []string {
	out := make([]string, 0, len(theses))
	for _, th := range theses {
		out = append(out, th.Title)
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestThesisRepository_CreateAndGet(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()

	th := &models.Thesis{Title: "Reef Fish Diversity", Authors: "J. Santos", Year: 2023, Keywords: "marine,biology"}
	seedTheses(t, repo, th)
	require.NotZero(t, th.ID)
	assert.False(t, th.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reef Fish Diversity", got.Title)
	assert.Equal(t, 2023, got.Year)
	assert.Nil(t, got.PDFFilename)

	_, err = repo.GetByID(ctx, th.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestThesisRepository_SearchOrder(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	seedTheses(t, repo,
		&models.Thesis{Title: "Mangrove Carbon", Authors: "A", Year: 2021, Keywords: "k"},
		&models.Thesis{Title: "Zooplankton Blooms", Authors: "B", Year: 2023, Keywords: "k"},
		&models.Thesis{Title: "Algae Growth", Authors: "C", Year: 2021, Keywords: "k"},
		&models.Thesis{Title: "Crab Molting", Authors: "D", Year: 2023, Keywords: "k"},
	)

	got, err := repo.Search(context.Background(), ThesisFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Crab Molting", "Zooplankton Blooms", "Algae Growth", "Mangrove Carbon"}, titles(got))
}

func TestThesisRepository_SearchText(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	seedTheses(t, repo,
		&models.Thesis{Title: "Reef Fish Diversity", Authors: "J. Santos", Year: 2023, Keywords: "marine,biology"},
		&models.Thesis{Title: "Seaweed Farming", Authors: "M. Reyes", Year: 2022, Keywords: "aquaculture"},
		&models.Thesis{Title: "Tilapia Feeds", Authors: "R. Santos", Year: 2022, Keywords: "nutrition"},
	)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"title, case-insensitive", "REEF", []string{"Reef Fish Diversity"}},
		{"authors", "santos", []string{"Reef Fish Diversity", "Tilapia Feeds"}},
		{"keywords", "aquacult", []string{"Seaweed Farming"}},
		{"no match", "salmon", []string{}},
		{"whitespace only is no filter", "   ", []string{"Reef Fish Diversity", "Seaweed Farming", "Tilapia Feeds"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Search(ctx, ThesisFilter{Text: tc.text})
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestThesisRepository_SearchTextNonASCII(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	seedTheses(t, repo,
		&models.Thesis{Title: "ÉCOLOGIE des Récifs", Authors: "Ñuñez", Year: 2022, Keywords: "Ökologie"},
		&models.Thesis{Title: "Seagrass Meadows", Authors: "P. Ibáñez", Year: 2021, Keywords: "marine"},
	)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"title, exact case", "ÉCOLOGIE", []string{"ÉCOLOGIE des Récifs"}},
		{"title, lower case", "écologie", []string{"ÉCOLOGIE des Récifs"}},
		{"title, mixed case", "RÉCIFS", []string{"ÉCOLOGIE des Récifs"}},
		{"authors, exact case", "Ñuñez", []string{"ÉCOLOGIE des Récifs"}},
		{"authors, upper case", "ÑUÑEZ", []string{"ÉCOLOGIE des Récifs"}},
		{"authors, inner accent", "IBÁÑEZ", []string{"Seagrass Meadows"}},
		{"keywords, exact case", "Ökologie", []string{"ÉCOLOGIE des Récifs"}},
		{"keywords, lower case", "ökologie", []string{"ÉCOLOGIE des Récifs"}},
		{"accent is not dropped", "ecologie", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Search(ctx, ThesisFilter{Text: tc.text})
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestThesisRepository_SearchFollowsUpdates(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()

	th := &models.Thesis{Title: "Coral Bleaching", Authors: "A. Lim", Year: 2020, Keywords: "reef"}
	seedTheses(t, repo, th)

	th.Title = "Étude du Blanchiment"
	th.Authors = "Zoë Laurent"
	require.NoError(t, repo.Update(ctx, th))

	got, err := repo.Search(ctx, ThesisFilter{Text: "coral"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.Search(ctx, ThesisFilter{Text: "ZOË"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Étude du Blanchiment"}, titles(got))
}

func TestThesisRepository_SearchTextBackfill(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewThesisRepository(db)
	ctx := context.Background()

	th := &models.Thesis{Title: "Mangroves of Ñagua", Authors: "B", Year: 2019, Keywords: "k"}
	seedTheses(t, repo, th)

	// simulate a row written before search_text existed
	require.NoError(t, db.Model(th).UpdateColumn("search_text", "").Error)
	got, err := repo.Search(ctx, ThesisFilter{Text: "ñagua"})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, models.AutoMigrate(db))

	got, err = repo.Search(ctx, ThesisFilter{Text: "ÑAGUA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mangroves of Ñagua"}, titles(got))
}

func TestThesisRepository_SearchWildcardsAreLiteral(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	seedTheses(t, repo,
		&models.Thesis{Title: "Growth at 100% salinity", Authors: "A", Year: 2020, Keywords: "k"},
		&models.Thesis{Title: "Growth at 1000 ppm", Authors: "B", Year: 2020, Keywords: "k"},
		&models.Thesis{Title: "snake_case titles", Authors: "C", Year: 2020, Keywords: "k"},
		&models.Thesis{Title: "snakeXcase titles", Authors: "D", Year: 2020, Keywords: "k"},
	)
	ctx := context.Background()

	got, err := repo.Search(ctx, ThesisFilter{Text: "100%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Growth at 100% salinity"}, titles(got))

	got, err = repo.Search(ctx, ThesisFilter{Text: "e_c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case titles"}, titles(got))

	got, err = repo.Search(ctx, ThesisFilter{Text: "' OR 1=1 --"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestThesisRepository_SearchYearAndText(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	seedTheses(t, repo,
		&models.Thesis{Title: "Reef Fish Diversity", Authors: "J. Santos", Year: 2023, Keywords: "marine"},
		&models.Thesis{Title: "Reef Restoration", Authors: "L. Cruz", Year: 2021, Keywords: "marine"},
		&models.Thesis{Title: "Tilapia Feeds", Authors: "R. Santos", Year: 2023, Keywords: "nutrition"},
	)
	ctx := context.Background()

	got, err := repo.Search(ctx, ThesisFilter{Year: intPtr(2023)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Reef Fish Diversity", "Tilapia Feeds"}, titles(got))

	got, err = repo.Search(ctx, ThesisFilter{Text: "reef", Year: intPtr(2021)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Reef Restoration"}, titles(got))

	got, err = repo.Search(ctx, ThesisFilter{Text: "tilapia", Year: intPtr(2021)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestThesisRepository_DistinctYears(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()

	years, err := repo.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Empty(t, years)

	seedTheses(t, repo,
		&models.Thesis{Title: "A", Authors: "A", Year: 2019, Keywords: "k"},
		&models.Thesis{Title: "B", Authors: "B", Year: 2023, Keywords: "k"},
		&models.Thesis{Title: "C", Authors: "C", Year: 2019, Keywords: "k"},
		&models.Thesis{Title: "D", Authors: "D", Year: 2021, Keywords: "k"},
	)

	years, err = repo.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2021, 2019}, years)
}

func TestThesisRepository_UpdateClearsAttachment(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()

	th := &models.Thesis{Title: "A", Authors: "A", Year: 2019, Keywords: "k", PDFFilename: testutil.StrPtr("a.pdf")}
	seedTheses(t, repo, th)

	th.Title = "A (revised)"
	th.PDFFilename = nil
	require.NoError(t, repo.Update(ctx, th))

	got, err := repo.GetByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "A (revised)", got.Title)
	assert.Nil(t, got.PDFFilename)
}

func TestThesisRepository_Delete(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()

	th := &models.Thesis{Title: "A", Authors: "A", Year: 2019, Keywords: "k"}
	seedTheses(t, repo, th)

	require.NoError(t, repo.Delete(ctx, th.ID))
	_, err := repo.GetByID(ctx, th.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, th.ID), gorm.ErrRecordNotFound)
}

func TestThesisRepository_ListAttachmentNames(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))

	a := &models.Thesis{Title: "A", Authors: "A", Year: 2019, Keywords: "k", PDFFilename: testutil.StrPtr("a.pdf")}
	b := &models.Thesis{Title: "B", Authors: "B", Year: 2019, Keywords: "k"}
	c := &models.Thesis{Title: "C", Authors: "C", Year: 2019, Keywords: "k", PDFFilename: testutil.StrPtr("")}
	seedTheses(t, repo, a, b, c)

	refs, err := repo.ListAttachmentNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []AttachmentRef{{ThesisID: a.ID, PDFFilename: "a.pdf"}}, refs)
}

func TestThesisRepository_TransactionRollsBack(t *testing.T) {
	repo := NewThesisRepository(testutil.NewDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx ThesisRepository) error {
		if err := tx.Create(ctx, &models.Thesis{Title: "A", Authors: "A", Year: 2019, Adviser: "x", Abstract: "x", Keywords: "k"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Search(ctx, ThesisFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
