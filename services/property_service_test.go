package services

import (
	"testing"

	"estate-management-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreatePropertyTagsSessionOrganization(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	property := &models.Property{
		Name:    "Riverside Towers",
		Address: "88 River Rd",
		City:    "Shanghai",
		Country: "China",
		Type:    models.PropertyTypeCommercial,
		// 故意填错组织，服务端应覆盖
		OrganizationID: 9999,
	}
	assert.NoError(t, svc.CreateProperty(f.session(), property))
	assert.Equal(t, f.Organization.ID, property.OrganizationID)
}

func TestGetPropertiesScopedToOrganization(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	seedFixture(t, db, "globex")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	properties, err := svc.GetProperties(f.session())
	assert.NoError(t, err)
	assert.Len(t, properties, 1)
	assert.Equal(t, f.Property.ID, properties[0].ID)
	assert.Len(t, properties[0].Units, 1)
}

func TestGetPropertyByIDHidesForeignProperty(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	property, err := svc.GetPropertyByID(f.session(), f.Property.ID)
	assert.NoError(t, err)
	assert.Equal(t, f.Property.Name, property.Name)

	// 跨组织按不存在处理
	_, err = svc.GetPropertyByID(f.session(), g.Property.ID)
	assert.Error(t, err)
}

func TestGetPropertyByIDPreloadsActiveLeasesOnly(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	lease := seedLease(t, db, f, 4500)
	assert.NoError(t, db.Model(&models.Lease{}).
		Where("id = ?", lease.ID).
		Update("is_active", false).Error)

	property, err := svc.GetPropertyByID(f.session(), f.Property.ID)
	assert.NoError(t, err)
	assert.Len(t, property.Units, 1)
	assert.Empty(t, property.Units[0].Leases)
}

func TestCreateUnitDefaultsToVacant(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	unit := &models.Unit{
		UnitNumber: "202",
		Bedrooms:   1,
		Bathrooms:  1,
		MarketRent: decimal.NewFromInt(3200),
	}
	assert.NoError(t, svc.CreateUnit(f.session(), f.Property.ID, unit))
	assert.Equal(t, models.UnitStatusVacant, unit.Status)
	assert.Equal(t, f.Property.ID, unit.PropertyID)

	// 不能往别的组织的物业下挂单元
	assert.Error(t, svc.CreateUnit(f.session(), g.Property.ID, &models.Unit{UnitNumber: "303"}))

	assert.Error(t, svc.CreateUnit(f.session(), f.Property.ID, &models.Unit{
		UnitNumber: "404",
		MarketRent: decimal.NewFromInt(-1),
	}))
}

func TestDeletePropertyScopedToOrganization(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := NewPropertyService(db, testConfig(), NewNoopRedisService())

	assert.Error(t, svc.DeleteProperty(g.session(), f.Property.ID))
	assert.NoError(t, svc.DeleteProperty(f.session(), f.Property.ID))

	properties, err := svc.GetProperties(f.session())
	assert.NoError(t, err)
	assert.Empty(t, properties)
}
