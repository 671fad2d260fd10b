package services

import (
	"testing"
	"time"

	"estate-management-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newLeaseForFixture(f *fixture) *models.Lease {
	return &models.Lease{
		TenantID:      f.Tenant.ID,
		UnitID:        f.Unit.ID,
		StartDate:     time.Now(),
		EndDate:       time.Now().AddDate(1, 0, 0),
		RentAmount:    decimal.NewFromInt(4500),
		DepositAmount: decimal.NewFromInt(9000),
	}
}

func TestCreateLeaseMarksUnitOccupied(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	lease := newLeaseForFixture(f)
	err := svc.CreateLease(f.session(), lease)
	assert.NoError(t, err)
	assert.True(t, lease.IsActive)

	var unit models.Unit
	assert.NoError(t, db.First(&unit, f.Unit.ID).Error)
	assert.Equal(t, models.UnitStatusOccupied, unit.Status)
}

func TestCreateLeaseRejectsOccupiedUnit(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	assert.NoError(t, svc.CreateLease(f.session(), newLeaseForFixture(f)))

	// 同一单元的第二份租约必须被拒绝，且不留下残余租约
	err := svc.CreateLease(f.session(), newLeaseForFixture(f))
	assert.Error(t, err)

	var count int64
	assert.NoError(t, db.Model(&models.Lease{}).Where("unit_id = ?", f.Unit.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateLeaseRejectsForeignUnit(t *testing.T) {
	db := setupTestDB(t)
	mine := seedFixture(t, db, "acme")
	other := seedFixture(t, db, "rival")
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	// 用本组织会话操作他组织的单元
	lease := newLeaseForFixture(other)
	err := svc.CreateLease(mine.session(), lease)
	assert.Error(t, err)

	var unit models.Unit
	assert.NoError(t, db.First(&unit, other.Unit.ID).Error)
	assert.Equal(t, models.UnitStatusVacant, unit.Status)
}

func TestCreateLeaseRejectsInvertedDates(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	lease := newLeaseForFixture(f)
	lease.StartDate = time.Now().AddDate(1, 0, 0)
	lease.EndDate = time.Now()
	assert.Error(t, svc.CreateLease(f.session(), lease))
}

func TestEndLeaseRevertsUnitToVacant(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	assert.NoError(t, svc.EndLease(f.session(), lease.ID))

	var got models.Lease
	assert.NoError(t, db.First(&got, lease.ID).Error)
	assert.False(t, got.IsActive)

	var unit models.Unit
	assert.NoError(t, db.First(&unit, f.Unit.ID).Error)
	assert.Equal(t, models.UnitStatusVacant, unit.Status)

	// 已结束的租约不能再次结束
	assert.Error(t, svc.EndLease(f.session(), lease.ID))
}

func TestEndLeaseScopedToOrganization(t *testing.T) {
	db := setupTestDB(t)
	mine := seedFixture(t, db, "acme")
	other := seedFixture(t, db, "rival")
	lease := seedLease(t, db, other, 4500)
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	assert.Error(t, svc.EndLease(mine.session(), lease.ID))

	var got models.Lease
	assert.NoError(t, db.First(&got, lease.ID).Error)
	assert.True(t, got.IsActive)
}

func TestGetLeasesOnlyReturnsOwnOrganization(t *testing.T) {
	db := setupTestDB(t)
	mine := seedFixture(t, db, "acme")
	other := seedFixture(t, db, "rival")
	seedLease(t, db, mine, 4500)
	seedLease(t, db, other, 3000)
	svc := NewLeaseService(db, testConfig(), NewNoopRedisService())

	leases, err := svc.GetLeases(mine.session())
	assert.NoError(t, err)
	assert.Len(t, leases, 1)
	assert.Equal(t, mine.Tenant.ID, leases[0].TenantID)
}
