package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
)

// fakeStorageService 测试用对象存储，按objectKey记录存活对象
type fakeStorageService struct {
	failUpload bool
	objects    map[string]bool
	uploads    int
}

func newFakeStorage() *fakeStorageService {
	return &fakeStorageService{objects: map[string]bool{}}
}

func (f *fakeStorageService) Upload(ctx context.Context, name string, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	if f.failUpload {
		return nil, errors.New("storage unavailable")
	}
	f.uploads++
	key := "2026/08/" + strconv.Itoa(f.uploads) + "-" + name
	f.objects[key] = true
	return &UploadResult{
		URL:       "http://storage.local/documents/" + key,
		Name:      name,
		Size:      size,
		ObjectKey: key,
	}, nil
}

func (f *fakeStorageService) Delete(ctx context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}

func uploadInput(name string, propertyID, tenantID *uint) *UploadDocumentInput {
	return &UploadDocumentInput{
		Name:        name,
		ContentType: "application/pdf",
		Size:        12,
		Reader:      strings.NewReader("lease scan.."),
		PropertyID:  propertyID,
		TenantID:    tenantID,
	}
}

func TestUploadDocumentStoresObjectAndRecord(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	storage := newFakeStorage()
	svc := NewDocumentService(db, testConfig(), storage)

	document, err := svc.UploadDocument(context.Background(), f.session(),
		uploadInput("lease.pdf", &f.Property.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, "lease.pdf", document.Name)
	assert.NotEmpty(t, document.ObjectKey)
	assert.True(t, storage.objects[document.ObjectKey])

	var count int64
	assert.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUploadDocumentRejectsForeignProperty(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	storage := newFakeStorage()
	svc := NewDocumentService(db, testConfig(), storage)

	_, err := svc.UploadDocument(context.Background(), f.session(),
		uploadInput("lease.pdf", &g.Property.ID, nil))
	assert.Error(t, err)
	assert.Zero(t, storage.uploads)
}

func TestUploadDocumentPropagatesStorageFailure(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	storage := newFakeStorage()
	storage.failUpload = true
	svc := NewDocumentService(db, testConfig(), storage)

	_, err := svc.UploadDocument(context.Background(), f.session(),
		uploadInput("lease.pdf", nil, nil))
	assert.Error(t, err)

	var count int64
	assert.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetDocumentsScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	storage := newFakeStorage()
	svc := NewDocumentService(db, testConfig(), storage)

	_, err := svc.UploadDocument(context.Background(), f.session(),
		uploadInput("lease.pdf", &f.Property.ID, &f.Tenant.ID))
	assert.NoError(t, err)
	_, err = svc.UploadDocument(context.Background(), f.session(),
		uploadInput("policy.pdf", nil, nil))
	assert.NoError(t, err)
	_, err = svc.UploadDocument(context.Background(), g.session(),
		uploadInput("other.pdf", &g.Property.ID, nil))
	assert.NoError(t, err)

	// 管理员看到本组织物业文档和未关联物业的文档
	documents, err := svc.GetDocuments(context.Background(), f.session())
	assert.NoError(t, err)
	assert.Len(t, documents, 3)

	// 无租约时租户只看到关联自己的文档
	documents, err = svc.GetDocuments(context.Background(), tenantSession(f))
	assert.NoError(t, err)
	assert.Len(t, documents, 1)
	assert.Equal(t, "lease.pdf", documents[0].Name)

	// 有活跃租约后还能看到承租物业的文档
	seedLease(t, db, f, 4500)
	_, err = svc.UploadDocument(context.Background(), f.session(),
		uploadInput("house-rules.pdf", &f.Property.ID, nil))
	assert.NoError(t, err)

	documents, err = svc.GetDocuments(context.Background(), tenantSession(f))
	assert.NoError(t, err)
	assert.Len(t, documents, 2)
}

func TestDeleteDocumentRemovesObject(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	storage := newFakeStorage()
	svc := NewDocumentService(db, testConfig(), storage)

	document, err := svc.UploadDocument(context.Background(), f.session(),
		uploadInput("lease.pdf", &f.Property.ID, nil))
	assert.NoError(t, err)

	// 租户无权删除，其它组织看不到该文档
	assert.Error(t, svc.DeleteDocument(context.Background(), tenantSession(f), document.ID))
	assert.Error(t, svc.DeleteDocument(context.Background(), g.session(), document.ID))

	assert.NoError(t, svc.DeleteDocument(context.Background(), f.session(), document.ID))
	assert.False(t, storage.objects[document.ObjectKey])

	var count int64
	assert.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}
