package returncase_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCaseItems(t *testing.T, count int) []returncase.CaseItem {
	t.Helper()
	items := make([]returncase.CaseItem, 0, count)
	for range count {
		item, err := returncase.NewCaseItem(kernel.NewUUID(), 1)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func makeCase(t *testing.T) *returncase.ReturnRequest {
	t.Helper()
	r, err := returncase.NewReturnRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		returncase.TypeReturn, "arrived damaged", makeCaseItems(t, 2), time.Now(),
	)
	require.NoError(t, err)
	return r
}

func TestNewReturnRequest(t *testing.T) {
	t.Run("should create case in Requested status", func(t *testing.T) {
		r := makeCase(t)

		assert.Equal(t, returncase.StatusRequested, r.Status())
		assert.True(t, r.IsOpen())
		assert.Len(t, r.Items(), 2)
		assert.Contains(t, r.CaseNumber(), "CASE-")
	})

	t.Run("should fail without reason", func(t *testing.T) {
		_, err := returncase.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			returncase.TypeReturn, "", makeCaseItems(t, 1), time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "case reason")
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := returncase.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			returncase.TypeReturn, "arrived damaged", nil, time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "case items")
	})

	t.Run("should fail with duplicate item references", func(t *testing.T) {
		item, err := returncase.NewCaseItem(kernel.NewUUID(), 1)
		require.NoError(t, err)

		_, err = returncase.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			returncase.TypeReturn, "arrived damaged",
			[]returncase.CaseItem{item, item}, time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenced more than once")
	})

	t.Run("should fail with invalid case type", func(t *testing.T) {
		_, err := returncase.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			returncase.TypeUnknown, "arrived damaged", makeCaseItems(t, 1), time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "case type is invalid")
	})
}

func TestCaseNumberFromID(t *testing.T) {
	id, err := kernel.UUIDFromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)

	assert.Equal(t, "CASE-6BA7B810", returncase.CaseNumberFromID(id))
}

func TestReturnRequest_UpdateStatus(t *testing.T) {
	t.Run("should move through the review workflow", func(t *testing.T) {
		r := makeCase(t)

		require.NoError(t, r.UpdateStatus(returncase.StatusUnderReview, "checking photos"))
		assert.Equal(t, returncase.StatusUnderReview, r.Status())
		assert.Equal(t, "checking photos", r.SellerNotes())

		require.NoError(t, r.UpdateStatus(returncase.StatusApproved, ""))
		assert.Equal(t, returncase.StatusApproved, r.Status())
		assert.Equal(t, "checking photos", r.SellerNotes())
	})

	t.Run("should reject skipping to Completed from Requested via review", func(t *testing.T) {
		r := makeCase(t)

		err := r.UpdateStatus(returncase.StatusCompleted, "")

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should reject updates on a rejected case", func(t *testing.T) {
		r := makeCase(t)
		require.NoError(t, r.UpdateStatus(returncase.StatusRejected, "no defect found"))
		assert.False(t, r.IsOpen())

		err := r.UpdateStatus(returncase.StatusApproved, "")

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestReturnRequest_Resolve(t *testing.T) {
	now := time.Now()

	t.Run("should complete with a full refund", func(t *testing.T) {
		r := makeCase(t)
		refundID := kernel.NewUUID()
		amount, _ := kernel.NewMoneyFromString("40.50")

		err := r.Resolve(returncase.ResolutionFullRefund, "defective goods", &refundID, &amount, now)

		require.NoError(t, err)
		assert.Equal(t, returncase.StatusCompleted, r.Status())
		assert.Equal(t, returncase.ResolutionFullRefund, r.ResolutionType())
		require.NotNil(t, r.RefundID())
		assert.True(t, r.RefundID().IsEqual(refundID))
		require.NotNil(t, r.ResolvedAt())
		assert.Equal(t, now, *r.ResolvedAt())
		assert.False(t, r.IsOpen())
	})

	t.Run("should complete with no refund when a reason is given", func(t *testing.T) {
		r := makeCase(t)

		err := r.Resolve(returncase.ResolutionNoRefund, "buyer withdrew the complaint", nil, nil, now)

		require.NoError(t, err)
		assert.Equal(t, returncase.StatusCompleted, r.Status())
		assert.Nil(t, r.RefundID())
	})

	t.Run("should require a reason for no-refund resolutions", func(t *testing.T) {
		r := makeCase(t)

		err := r.Resolve(returncase.ResolutionNoRefund, "", nil, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "resolution reason")
	})

	t.Run("should require a refund identity for refund resolutions", func(t *testing.T) {
		r := makeCase(t)

		err := r.Resolve(returncase.ResolutionPartialRefund, "partial damage", nil, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject resolving twice", func(t *testing.T) {
		r := makeCase(t)
		require.NoError(t, r.Resolve(returncase.ResolutionNoRefund, "n/a", nil, nil, now))

		err := r.Resolve(returncase.ResolutionNoRefund, "n/a", nil, nil, now)

		require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
		assert.Contains(t, err.Error(), "already resolved")
	})

	t.Run("should reject resolving a rejected case", func(t *testing.T) {
		r := makeCase(t)
		require.NoError(t, r.UpdateStatus(returncase.StatusRejected, "no defect"))

		err := r.Resolve(returncase.ResolutionNoRefund, "n/a", nil, nil, now)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should resolve an approved case", func(t *testing.T) {
		r := makeCase(t)
		require.NoError(t, r.UpdateStatus(returncase.StatusApproved, ""))
		refundID := kernel.NewUUID()
		amount, _ := kernel.NewMoneyFromString("10.00")

		err := r.Resolve(returncase.ResolutionPartialRefund, "partial damage", &refundID, &amount, now)

		require.NoError(t, err)
		assert.Equal(t, returncase.StatusCompleted, r.Status())
	})
}

func TestResolutionType_ImpliesSubOrderRefund(t *testing.T) {
	assert.True(t, returncase.ResolutionFullRefund.ImpliesSubOrderRefund())
	assert.False(t, returncase.ResolutionPartialRefund.ImpliesSubOrderRefund())
	assert.False(t, returncase.ResolutionNoRefund.ImpliesSubOrderRefund())
}
