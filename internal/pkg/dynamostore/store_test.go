package dynamostore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
)

// fakeDynamo is an in-memory table keyed by id that understands the few
// expressions the store sends.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int
	scans    int
	tables   []string
	scanErr  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}, pageSize: 2}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := str(in.Item["id"])
	if _, exists := f.items[id]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[str(in.Key["id"])]}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := str(in.ExclusiveStartKey["id"])
		start = sort.SearchStrings(keys, after) + 1
	}
	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &dynamodb.ScanOutput{}
	for _, k := range keys[start:end] {
		it := f.items[k]
		if in.FilterExpression != nil && str(it["status"]) != str(in.ExpressionAttributeValues[":status"]) {
			continue
		}
		out.Count++
		if in.Select != types.SelectCount {
			out.Items = append(out.Items, it)
		}
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: keys[end-1]}}
	}
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[str(in.Key["id"])]
	if !ok || str(it["status"]) != str(in.ExpressionAttributeValues[":pending"]) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	it["status"] = in.ExpressionAttributeValues[":next"]
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		if t == *in.TableName {
			return &dynamodb.DescribeTableOutput{}, nil
		}
	}
	return nil, &types.ResourceNotFoundException{}
}

func (f *fakeDynamo) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = append(f.tables, *in.TableName)
	return &dynamodb.CreateTableOutput{}, nil
}

func newApp(name string, amount int64, createdAt time.Time) *models.PaymentApplication {
	return &models.PaymentApplication{
		FullName:        name,
		ContactNumber:   "0917",
		Email:           name + "@example.com",
		ReferenceNumber: "REF-" + name,
		Amount:          decimal.NewFromInt(amount),
		PaymentMethod:   models.PaymentMethodMaya,
		Plan:            "Monthly",
		EmergencyContact: models.EmergencyContact{
			Person: "P", ContactNumber: "N", Address: "A",
		},
		CreatedAt: createdAt,
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := New(newFakeDynamo(), "apps")
	ctx := context.Background()

	app := newApp("ana", 1200, time.Time{})
	require.NoError(t, store.Create(ctx, app))
	require.NotEmpty(t, app.ID)

	got, err := store.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.FullName)
	assert.Equal(t, models.PaymentStatusPending, got.Status)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "A", got.EmergencyContact.Address)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_CreateNeverOverwrites(t *testing.T) {
	store := New(newFakeDynamo(), "apps")
	ctx := context.Background()

	app := newApp("ana", 1200, time.Time{})
	require.NoError(t, store.Create(ctx, app))

	dup := newApp("ben", 200, time.Time{})
	dup.ID = app.ID
	err := store.Create(ctx, dup)
	var condErr *types.ConditionalCheckFailedException
	assert.True(t, errors.As(err, &condErr))
}

func TestStore_ListPagesFiltersAndSorts(t *testing.T) {
	fake := newFakeDynamo()
	store := New(fake, "apps")
	ctx := context.Background()
	now := time.Now().UTC()

	names := []string{"a", "b", "c", "d", "e"}
	created := map[string]string{}
	for i, n := range names {
		app := newApp(n, 100, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Create(ctx, app))
		created[n] = app.ID
	}
	ok, err := store.UpdateStatusIfPending(ctx, created["c"], models.PaymentStatusRejected)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "e", all[0].FullName)
	assert.Equal(t, "a", all[4].FullName)
	assert.GreaterOrEqual(t, fake.scans, 3)

	pending, err := store.List(ctx, models.PaymentStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 4)
	for _, p := range pending {
		assert.NotEqual(t, "c", p.FullName)
	}

	n, err := store.CountByStatus(ctx, models.PaymentStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_UpdateStatusIfPending(t *testing.T) {
	store := New(newFakeDynamo(), "apps")
	ctx := context.Background()

	app := newApp("ana", 1200, time.Time{})
	require.NoError(t, store.Create(ctx, app))

	ok, err := store.UpdateStatusIfPending(ctx, app.ID, models.PaymentStatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.UpdateStatusIfPending(ctx, app.ID, models.PaymentStatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, got.Status)

	ok, err = store.UpdateStatusIfPending(ctx, "missing", models.PaymentStatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ScanError(t *testing.T) {
	fake := newFakeDynamo()
	fake.scanErr = errors.New("throttled")
	_, err := New(fake, "apps").List(context.Background(), "")
	assert.ErrorContains(t, err, "throttled")
}

func TestStore_EnsureTable(t *testing.T) {
	fake := newFakeDynamo()
	store := New(fake, "apps")

	require.NoError(t, store.EnsureTable(context.Background()))
	assert.Equal(t, []string{"apps"}, fake.tables)

	require.NoError(t, store.EnsureTable(context.Background()))
	assert.Len(t, fake.tables, 1)
}
