package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilothq/stockpilot-backend/pkg/config"
	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

var testSchema = []string{
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		parent_id TEXT,
		icon TEXT,
		description TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE suppliers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		icon TEXT,
		description TEXT,
		address TEXT,
		website TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		country TEXT,
		city TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE manufacturers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		icon TEXT,
		description TEXT,
		address TEXT,
		website TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		country TEXT,
		city TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		UNIQUE (user_id, name)
	)`,
}

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range testSchema {
		require.NoError(t, client.Exec(context.Background(), stmt).Error)
	}
	return client
}

func newTestService(t *testing.T, client *db.Client) Service {
	t.Helper()

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCategoryLifecycle(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	parent, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "beverages"})
	require.NoError(t, err)
	assert.True(t, parent.Status)

	child, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{
		Name:     "sodas",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	fetched, err := svc.GetCategory(ctx, ownerID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "sodas", fetched.Name)

	listed, err := svc.ListCategories(ctx, ownerID, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	updated, err := svc.UpdateCategory(ctx, ownerID, child.ID, CategoryRequest{Name: "soft drinks"})
	require.NoError(t, err)
	assert.Equal(t, "soft drinks", updated.Name)
	assert.Nil(t, updated.ParentID)

	require.NoError(t, svc.DeleteCategory(ctx, ownerID, child.ID))
	_, err = svc.GetCategory(ctx, ownerID, child.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestCategoryValidation(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "  "})
	requireCode(t, err, pkgerrors.CodeValidation)

	// Parent must exist and belong to the same owner.
	foreign := uuid.New()
	_, err = svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "orphans", ParentID: &foreign})
	requireCode(t, err, pkgerrors.CodeValidation)

	theirs, err := svc.CreateCategory(ctx, uuid.New(), CategoryRequest{Name: "theirs"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "mine", ParentID: &theirs.ID})
	requireCode(t, err, pkgerrors.CodeValidation)

	// A category cannot be its own parent.
	created, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "loop"})
	require.NoError(t, err)
	_, err = svc.UpdateCategory(ctx, ownerID, created.ID, CategoryRequest{Name: "loop", ParentID: &created.ID})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCategoryNameUniquePerOwner(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "snacks"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "snacks"})
	requireCode(t, err, pkgerrors.CodeValidation)

	// Same name under another owner is fine.
	_, err = svc.CreateCategory(ctx, uuid.New(), CategoryRequest{Name: "snacks"})
	require.NoError(t, err)
}

func TestListCategoriesFilters(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	fizzy := "carbonated drinks"
	_, err := svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "Sodas", Description: &fizzy})
	require.NoError(t, err)
	salty := "chips and crackers"
	_, err = svc.CreateCategory(ctx, ownerID, CategoryRequest{Name: "Snacks", Description: &salty})
	require.NoError(t, err)

	// Substring match on name is case-insensitive.
	listed, err := svc.ListCategories(ctx, ownerID, ListFilters{Name: "soda"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Sodas", listed[0].Name)

	listed, err = svc.ListCategories(ctx, ownerID, ListFilters{Description: "crackers"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Snacks", listed[0].Name)

	listed, err = svc.ListCategories(ctx, ownerID, ListFilters{Name: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSupplierLifecycle(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	email := "sales@acme.test"
	created, err := svc.CreateSupplier(ctx, ownerID, ContactRequest{
		Name:         "Acme Wholesale",
		ContactEmail: &email,
	})
	require.NoError(t, err)
	assert.True(t, created.Status)

	_, err = svc.CreateSupplier(ctx, ownerID, ContactRequest{Name: "Acme Wholesale"})
	requireCode(t, err, pkgerrors.CodeValidation)

	inactive := false
	updated, err := svc.UpdateSupplier(ctx, ownerID, created.ID, ContactRequest{
		Name:   "Acme Wholesale",
		Status: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Status)

	listed, err := svc.ListSuppliers(ctx, ownerID, ListFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteSupplier(ctx, ownerID, created.ID))
	err = svc.DeleteSupplier(ctx, ownerID, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestManufacturerLifecycle(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.CreateManufacturer(ctx, ownerID, ContactRequest{Name: "Globex"})
	require.NoError(t, err)

	fetched, err := svc.GetManufacturer(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", fetched.Name)

	// Invisible across owners.
	_, err = svc.GetManufacturer(ctx, uuid.New(), created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.UpdateManufacturer(ctx, ownerID, uuid.New(), ContactRequest{Name: "Globex"})
	requireCode(t, err, pkgerrors.CodeNotFound)
}
