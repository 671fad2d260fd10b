package services

import (
	"testing"
	"time"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMaintenanceService(db *gorm.DB, email InterfaceEmailService) InterfaceMaintenanceService {
	return NewMaintenanceService(db, testConfig(), NewNoopRedisService(), email,
		NewNotificationService(db, testConfig()))
}

func tenantSession(f *fixture) *Session {
	return &Session{
		UserID:         0,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleTenant,
		Email:          f.Tenant.Email,
	}
}

func TestCreateRequestDerivesPropertyFromUnit(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	request, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips",
		Priority:    models.PriorityMedium,
		UnitID:      f.Unit.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusSubmitted, request.Status)
	assert.Equal(t, f.Property.ID, request.PropertyID)
	assert.Nil(t, request.TenantID)
}

func TestCreateRequestRejectsForeignUnit(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := newMaintenanceService(db, &fakeEmailService{})

	_, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Broken lock",
		Description: "Front door lock jammed",
		Priority:    models.PriorityHigh,
		UnitID:      g.Unit.ID,
	})
	assert.Error(t, err)
}

func TestCreateRequestRejectsInvalidPriority(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	_, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Broken lock",
		Description: "Front door lock jammed",
		Priority:    "CRITICAL",
		UnitID:      f.Unit.ID,
	})
	assert.Error(t, err)
}

func TestCreateRequestLinksTenantBySessionEmail(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	// 租户请求忽略传入的tenant_email，强制关联自己
	request, err := svc.CreateRequest(tenantSession(f), &CreateRequestInput{
		Title:       "No hot water",
		Description: "Boiler not heating",
		Priority:    models.PriorityUrgent,
		UnitID:      f.Unit.ID,
		TenantEmail: "someone-else@example.com",
	})
	assert.NoError(t, err)
	assert.NotNil(t, request.TenantID)
	assert.Equal(t, f.Tenant.ID, *request.TenantID)
}

func TestGetRequestsFiltersForTenantRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	other := models.Tenant{
		FirstName: "Other",
		LastName:  "Tenant",
		Email:     "other-acme@example.com",
	}
	assert.NoError(t, db.Create(&other).Error)

	_, err := svc.CreateRequest(tenantSession(f), &CreateRequestInput{
		Title:       "Mine",
		Description: "My request",
		Priority:    models.PriorityLow,
		UnitID:      f.Unit.ID,
	})
	assert.NoError(t, err)

	_, err = svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Theirs",
		Description: "Another tenant's request",
		Priority:    models.PriorityLow,
		UnitID:      f.Unit.ID,
		TenantEmail: other.Email,
	})
	assert.NoError(t, err)

	// 管理员看到全部
	requests, err := svc.GetRequests(f.session())
	assert.NoError(t, err)
	assert.Len(t, requests, 2)

	// 租户只看到自己的
	requests, err = svc.GetRequests(tenantSession(f))
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, "Mine", requests[0].Title)
}

func TestGetRequestsWithoutTenantRecord(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	session := &Session{
		OrganizationID: f.Organization.ID,
		Role:           models.RoleTenant,
		Email:          "no-tenant-record@example.com",
	}
	requests, err := svc.GetRequests(session)
	assert.NoError(t, err)
	assert.Empty(t, requests)
}

func TestUpdateRequestStatusNotifiesTenant(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	email := &fakeEmailService{}
	svc := newMaintenanceService(db, email)

	request, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips",
		Priority:    models.PriorityMedium,
		UnitID:      f.Unit.ID,
		TenantEmail: f.Tenant.Email,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.UpdateRequestStatus(f.session(), request.ID, models.RequestStatusInProgress))

	var updated models.MaintenanceRequest
	assert.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestStatusInProgress, updated.Status)

	assert.Len(t, email.sent, 1)
	assert.Equal(t, f.Tenant.Email, email.sent[0].To)
}

func TestUpdateRequestStatusForbiddenForTenant(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	request, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips",
		Priority:    models.PriorityMedium,
		UnitID:      f.Unit.ID,
	})
	assert.NoError(t, err)

	err = svc.UpdateRequestStatus(tenantSession(f), request.ID, models.RequestStatusClosed)
	assert.Error(t, err)

	assert.Error(t, svc.UpdateRequestStatus(f.session(), request.ID, "DONE"))
}

func TestUpdateRequestStatusForbiddenForFinanceManager(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	request, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips",
		Priority:    models.PriorityMedium,
		UnitID:      f.Unit.ID,
	})
	assert.NoError(t, err)

	finance := &Session{
		UserID:         f.Admin.ID,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleFinanceManager,
		Email:          "finance-acme@example.com",
	}
	assert.Error(t, svc.UpdateRequestStatus(finance, request.ID, models.RequestStatusInProgress))
	assert.Error(t, svc.AssignVendor(finance, request.ID, 1))

	// 维修人员可以正常处理
	staff := &Session{
		UserID:         f.Admin.ID,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleMaintenanceStaff,
		Email:          "staff-acme@example.com",
	}
	assert.NoError(t, svc.UpdateRequestStatus(staff, request.ID, models.RequestStatusInProgress))
}

func TestAssignVendorMovesRequestToAssigned(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := newMaintenanceService(db, &fakeEmailService{})

	vendor := models.Vendor{
		Name:           "Acme Plumbing",
		ServiceType:    "PLUMBING",
		OrganizationID: f.Organization.ID,
	}
	assert.NoError(t, db.Create(&vendor).Error)

	request, err := svc.CreateRequest(f.session(), &CreateRequestInput{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips",
		Priority:    models.PriorityMedium,
		UnitID:      f.Unit.ID,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.AssignVendor(f.session(), request.ID, vendor.ID))

	var updated models.MaintenanceRequest
	assert.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestStatusAssigned, updated.Status)
	assert.NotNil(t, updated.VendorID)
	assert.Equal(t, vendor.ID, *updated.VendorID)

	// 其它组织的供应商不可指派
	foreignVendor := models.Vendor{
		Name:           "Globex Electric",
		ServiceType:    "ELECTRICAL",
		OrganizationID: g.Organization.ID,
	}
	assert.NoError(t, db.Create(&foreignVendor).Error)
	assert.Error(t, svc.AssignVendor(f.session(), request.ID, foreignVendor.ID))
}

func TestCreateScheduleDefaultsNextRun(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	schedule := &models.MaintenanceSchedule{
		Title:      "HVAC filter change",
		Frequency:  models.FrequencyQuarterly,
		PropertyID: f.Property.ID,
		StartDate:  start,
	}
	assert.NoError(t, svc.CreateSchedule(f.session(), schedule))
	assert.True(t, schedule.NextRun.Equal(start))

	schedules, err := svc.GetSchedules(f.session())
	assert.NoError(t, err)
	assert.Len(t, schedules, 1)
}

func TestCreateScheduleRejectsInvalidFrequency(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newMaintenanceService(db, &fakeEmailService{})

	err := svc.CreateSchedule(f.session(), &models.MaintenanceSchedule{
		Title:      "HVAC filter change",
		Frequency:  "BIWEEKLY",
		PropertyID: f.Property.ID,
		StartDate:  time.Now(),
	})
	assert.Error(t, err)
}

func TestDeleteScheduleScopedToOrganization(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := newMaintenanceService(db, &fakeEmailService{})

	schedule := &models.MaintenanceSchedule{
		Title:      "Elevator inspection",
		Frequency:  models.FrequencyYearly,
		PropertyID: f.Property.ID,
		StartDate:  time.Now(),
	}
	assert.NoError(t, svc.CreateSchedule(f.session(), schedule))

	assert.Error(t, svc.DeleteSchedule(g.session(), schedule.ID))
	assert.NoError(t, svc.DeleteSchedule(f.session(), schedule.ID))

	schedules, err := svc.GetSchedules(f.session())
	assert.NoError(t, err)
	assert.Empty(t, schedules)
}
