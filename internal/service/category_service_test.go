package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/cache"
	"fintrack-be/internal/mocks"
	"fintrack-be/internal/models"
)

type CategoryServiceSuite struct {
	storeSuite
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) TestAddThenGetRoundTrip() {
	created := s.addCategory("  Groceries ", models.CategoryTypeExpense)

	got, err := s.categories.GetCategory(s.ctx, s.admin, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("Groceries", got.Name)
	s.Equal(models.CategoryTypeExpense, got.Type)
}

func (s *CategoryServiceSuite) TestRoleGating() {
	c := s.addCategory("Rent", models.CategoryTypeExpense)

	_, err := s.categories.GetCategory(s.ctx, s.user, c.ID)
	s.requireCode(err, apperror.CodeAccessDenied, apperror.StatusForbidden)

	_, err = s.categories.AddCategory(s.ctx, s.user, models.CategoryAddDTO{Name: "x", Type: models.CategoryTypeIncome})
	s.requireCode(err, apperror.CodeAccessDenied, apperror.StatusForbidden)

	_, err = s.categories.AddCategory(s.ctx, models.Caller{}, models.CategoryAddDTO{Name: "x", Type: models.CategoryTypeIncome})
	s.requireCode(err, apperror.CodeUnauthorized, apperror.StatusUnauthorized)

	s.requireCode(s.categories.DeleteCategory(s.ctx, s.user, c.ID), apperror.CodeAccessDenied, apperror.StatusForbidden)

	// any signed-in user may list
	res, err := s.categories.GetCategories(s.ctx, s.user, page(1, 10))
	s.Require().NoError(err)
	s.EqualValues(1, res.TotalCount)
}

func (s *CategoryServiceSuite) TestGetMissing() {
	_, err := s.categories.GetCategory(s.ctx, s.admin, uuid.New())
	s.requireCode(err, apperror.CodeCategoryNotFound, apperror.StatusNotFound)
}

func (s *CategoryServiceSuite) TestPartialUpdate() {
	c := s.addCategory("Salary", models.CategoryTypeExpense)

	income := models.CategoryTypeIncome
	updated, err := s.categories.UpdateCategory(s.ctx, s.admin, models.CategoryUpdateDTO{ID: c.ID, Type: &income})
	s.Require().NoError(err)
	s.Equal("Salary", updated.Name)
	s.Equal(models.CategoryTypeIncome, updated.Type)

	_, err = s.categories.UpdateCategory(s.ctx, s.admin, models.CategoryUpdateDTO{ID: uuid.New(), Name: strPtr("x")})
	s.requireCode(err, apperror.CodeCategoryNotFound, apperror.StatusNotFound)

	_, err = s.categories.UpdateCategory(s.ctx, s.admin, models.CategoryUpdateDTO{ID: c.ID, Name: strPtr("  ")})
	s.requireCode(err, apperror.CodeInvalidRequest, apperror.StatusBadRequest)
}

func (s *CategoryServiceSuite) TestDeleteTwiceIsNotFoundBothTimes() {
	c := s.addCategory("Temp", models.CategoryTypeExpense)
	s.Require().NoError(s.categories.DeleteCategory(s.ctx, s.admin, c.ID))

	for range 2 {
		s.requireCode(s.categories.DeleteCategory(s.ctx, s.admin, c.ID), apperror.CodeCategoryNotFound, apperror.StatusNotFound)
	}
}

func (s *CategoryServiceSuite) TestDeleteReferencedByIncomeIsRejected() {
	c := s.addCategory("Salary", models.CategoryTypeIncome)
	pm := s.addPaymentMethod("Bank transfer")
	s.addIncome(s.user, "1000", c.ID, pm.ID)

	err := s.categories.DeleteCategory(s.ctx, s.admin, c.ID)
	s.requireCode(err, apperror.CodeEntityInUse, apperror.StatusConflict)

	_, err = s.categories.GetCategory(s.ctx, s.admin, c.ID)
	s.NoError(err)
}

func (s *CategoryServiceSuite) TestPageSearchAndPaging() {
	for _, n := range []string{"Food Court", "fast food", "Fuel", "Books"} {
		s.addCategory(n, models.CategoryTypeExpense)
	}

	res, err := s.categories.GetCategories(s.ctx, s.user, models.PaginationSearchQuery{Page: 1, PageSize: 10, Search: "FOOD"})
	s.Require().NoError(err)
	s.EqualValues(2, res.TotalCount)

	res, err = s.categories.GetCategories(s.ctx, s.user, models.PaginationSearchQuery{Page: 1, PageSize: 10, Search: "   "})
	s.Require().NoError(err)
	s.EqualValues(4, res.TotalCount)

	_, err = s.categories.GetCategories(s.ctx, s.user, page(0, 10))
	s.requireCode(err, apperror.CodeInvalidPagination, apperror.StatusBadRequest)
}

func (s *CategoryServiceSuite) TestCacheAside() {
	c := s.addCategory("Cached", models.CategoryTypeExpense)
	mc := mocks.NewMockCache(s.ctrl)
	svc := NewCategoryService(s.repo, mc, time.Minute)
	key := cache.CategoryKey(c.ID)

	gomock.InOrder(
		mc.EXPECT().GetJSON(gomock.Any(), key, gomock.Any()).Return(cache.ErrMiss),
		mc.EXPECT().SetJSON(gomock.Any(), key, gomock.Any(), time.Minute).Return(nil),
		mc.EXPECT().GetJSON(gomock.Any(), key, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, dest any) error {
				*dest.(*models.CategoryDTO) = models.CategoryDTO{ID: c.ID, Name: "from cache"}
				return nil
			}),
		mc.EXPECT().Delete(gomock.Any(), key).Return(nil),
	)

	got, err := svc.GetCategory(s.ctx, s.admin, c.ID)
	s.Require().NoError(err)
	s.Equal("Cached", got.Name)

	got, err = svc.GetCategory(s.ctx, s.admin, c.ID)
	s.Require().NoError(err)
	s.Equal("from cache", got.Name)

	_, err = svc.UpdateCategory(s.ctx, s.admin, models.CategoryUpdateDTO{ID: c.ID, Name: strPtr("Renamed")})
	s.Require().NoError(err)
}

func (s *CategoryServiceSuite) TestCacheFailuresAreIgnored() {
	c := s.addCategory("Sturdy", models.CategoryTypeExpense)
	mc := mocks.NewMockCache(s.ctrl)
	svc := NewCategoryService(s.repo, mc, time.Minute)

	mc.EXPECT().GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	mc.EXPECT().SetJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	mc.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := svc.GetCategory(s.ctx, s.admin, c.ID)
	s.Require().NoError(err)
	s.Equal("Sturdy", got.Name)

	s.NoError(svc.DeleteCategory(s.ctx, s.admin, c.ID))
}
