package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"fintrack-be/internal/database"
	"fintrack-be/internal/entities"
	"fintrack-be/internal/models"
	"fintrack-be/internal/specification"
)

type RepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	repo *Repository
	ctx  context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	db, err := database.OpenSQLite(":memory:", nil)
	s.Require().NoError(err)
	s.db = db
	s.repo = NewRepository(db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	s.Require().NoError(database.Close(s.db))
}

func (s *RepositorySuite) addCategories(names ...string) []entities.Category {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entities.Category, 0, len(names))
	for i, name := range names {
		c := entities.Category{Name: name, Type: "Expense"}
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(s.repo.Add(s.ctx, &c))
		out = append(out, c)
	}
	return out
}

func (s *RepositorySuite) TestGetReturnsRecordNotFound() {
	_, err := Get(s.ctx, s.repo, specification.CategoryByID(uuid.New()))
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositorySuite) TestGetProjection() {
	created := s.addCategories("Groceries")
	dto, err := Get(s.ctx, s.repo, specification.CategoryProjectionByID(created[0].ID))
	s.Require().NoError(err)
	s.Equal(created[0].ID, dto.ID)
	s.Equal("Groceries", dto.Name)
	s.Equal(models.CategoryTypeExpense, dto.Type)
}

func (s *RepositorySuite) TestPageTotalCountIsIndependentOfWindow() {
	s.addCategories("a", "b", "c", "d", "e", "f", "g")

	for _, size := range []int{1, 2, 3, 10} {
		for page := 1; page <= 4; page++ {
			q := models.PaginationSearchQuery{Page: page, PageSize: size}
			res, err := Page(s.ctx, s.repo, q, specification.CategoryPage(""))
			s.Require().NoError(err)
			s.EqualValues(7, res.TotalCount)
			s.LessOrEqual(len(res.Data), size)
		}
	}
}

func (s *RepositorySuite) TestPageOrdersNewestFirst() {
	s.addCategories("old", "mid", "new")

	res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 1, PageSize: 2}, specification.CategoryPage(""))
	s.Require().NoError(err)
	s.Require().Len(res.Data, 2)
	s.Equal("new", res.Data[0].Name)
	s.Equal("mid", res.Data[1].Name)

	res, err = Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 2, PageSize: 2}, specification.CategoryPage(""))
	s.Require().NoError(err)
	s.Require().Len(res.Data, 1)
	s.Equal("old", res.Data[0].Name)
}

func (s *RepositorySuite) TestPageBeyondLastIsEmpty() {
	s.addCategories("a", "b")

	res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 5, PageSize: 10}, specification.CategoryPage(""))
	s.Require().NoError(err)
	s.EqualValues(2, res.TotalCount)
	s.NotNil(res.Data)
	s.Empty(res.Data)
}

func (s *RepositorySuite) TestPageSearchIsCaseInsensitiveAndTokenized() {
	s.addCategories("Foo Bar", "foo-baz bar", "FOOBAR", "bar foo", "other")

	res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 1, PageSize: 10}, specification.CategoryPage("  foo   bar "))
	s.Require().NoError(err)
	s.EqualValues(3, res.TotalCount)
	names := make([]string, 0, len(res.Data))
	for _, d := range res.Data {
		names = append(names, d.Name)
	}
	s.ElementsMatch([]string{"Foo Bar", "foo-baz bar", "FOOBAR"}, names)
}

func (s *RepositorySuite) TestPageRejectsInvalidArguments() {
	for _, q := range []models.PaginationSearchQuery{
		{Page: 0, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: -1, PageSize: -1},
		{Page: 1, PageSize: models.MaxPageSize + 1},
		{Page: 1, PageSize: 1 << 40},
	} {
		_, err := Page(s.ctx, s.repo, q, specification.CategoryPage(""))
		s.ErrorIs(err, ErrInvalidPage)
	}
}

func (s *RepositorySuite) TestPageAcceptsMaxPageSize() {
	s.addCategories("a", "b", "c")

	res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 1, PageSize: models.MaxPageSize}, specification.CategoryPage(""))
	s.Require().NoError(err)
	s.EqualValues(3, res.TotalCount)
	s.Len(res.Data, 3)
}

func (s *RepositorySuite) TestPageFarPastTheEndIsEmpty() {
	s.addCategories("a", "b", "c")

	for _, page := range []int{math.MaxInt/2 + 2, math.MaxInt} {
		res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: page, PageSize: 2}, specification.CategoryPage(""))
		s.Require().NoError(err)
		s.EqualValues(3, res.TotalCount)
		s.NotNil(res.Data)
		s.Empty(res.Data)
	}
}

func (s *RepositorySuite) TestPageFailsOnClosedStore() {
	s.addCategories("a")
	s.Require().NoError(database.Close(s.db))

	res, err := Page(s.ctx, s.repo, models.PaginationSearchQuery{Page: 1, PageSize: 10}, specification.CategoryPage(""))
	s.Error(err)
	s.Nil(res)

	// reopen so TearDownTest has something to close
	db, err := database.OpenSQLite(":memory:", nil)
	s.Require().NoError(err)
	s.db = db
}

func (s *RepositorySuite) TestTransactionRollsBack() {
	sentinel := errors.New("boom")
	err := s.repo.Transaction(s.ctx, func(tx *Repository) error {
		c := entities.Category{Name: "temp", Type: "Expense"}
		if err := tx.Add(s.ctx, &c); err != nil {
			return err
		}
		return sentinel
	})
	s.ErrorIs(err, sentinel)

	total, err := Count(s.ctx, s.repo, specification.CategoryPage(""))
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RepositorySuite) TestDeleteReportsRowsAffected() {
	created := s.addCategories("gone")

	n, err := Delete(s.ctx, s.repo, specification.CategoryByID(created[0].ID))
	s.Require().NoError(err)
	s.EqualValues(1, n)

	n, err = Delete(s.ctx, s.repo, specification.CategoryByID(created[0].ID))
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *RepositorySuite) TestExpenseProjectionJoinsNames() {
	cat := s.addCategories("Groceries")[0]
	pm := entities.PaymentMethod{Name: "Card"}
	s.Require().NoError(s.repo.Add(s.ctx, &pm))

	owner := uuid.New()
	e := entities.Expense{
		Amount:          decimal.RequireFromString("12.50"),
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		UserID:          owner,
		CategoryID:      cat.ID,
		PaymentMethodID: pm.ID,
	}
	s.Require().NoError(s.repo.Add(s.ctx, &e))

	dto, err := Get(s.ctx, s.repo, specification.ExpenseProjectionByOwner(e.ID, owner))
	s.Require().NoError(err)
	s.Equal("Groceries", dto.CategoryName)
	s.Equal("Card", dto.PaymentMethodName)
	s.True(decimal.RequireFromString("12.5").Equal(dto.Amount))

	exists, err := Exists(s.ctx, s.repo, specification.ExpensesReferencingCategory(cat.ID))
	s.Require().NoError(err)
	s.True(exists)

	_, err = Get(s.ctx, s.repo, specification.ExpenseProjectionByOwner(e.ID, uuid.New()))
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestPageOffset(t *testing.T) {
	for name, tc := range map[string]struct {
		page, size int
		total      int64
		offset     int64
		ok         bool
	}{
		"first page":         {1, 10, 3, 0, true},
		"last partial page":  {2, 2, 3, 2, true},
		"just past the end":  {3, 2, 4, 0, false},
		"empty table":        {1, 10, 0, 0, false},
		"overflowing window": {math.MaxInt, models.MaxPageSize, 5, 0, false},
	} {
		t.Run(name, func(t *testing.T) {
			offset, ok := pageOffset(models.PaginationSearchQuery{Page: tc.page, PageSize: tc.size}, tc.total)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.offset, offset)
		})
	}
}
