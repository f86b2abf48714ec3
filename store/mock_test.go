package store_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/maqsad-io/dynamo-ninja/store"
)

type apiCall[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// mockClient is an expectation-based mock of the DynamoDB calls the store
// uses. Any call without an expectation set fails the test.
type mockClient struct {
	GetFunc        apiCall[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	PutFunc        apiCall[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	UpdateFunc     apiCall[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput]
	QueryFunc      apiCall[dynamodb.QueryInput, dynamodb.QueryOutput]
	BatchGetFunc   apiCall[dynamodb.BatchGetItemInput, dynamodb.BatchGetItemOutput]
	BatchWriteFunc apiCall[dynamodb.BatchWriteItemInput, dynamodb.BatchWriteItemOutput]
}

var _ store.Client = (*mockClient)(nil)

func newMockClient(t *testing.T) *mockClient {
	return &mockClient{
		GetFunc:        unexpected[dynamodb.GetItemInput, dynamodb.GetItemOutput](t, "GetItem"),
		PutFunc:        unexpected[dynamodb.PutItemInput, dynamodb.PutItemOutput](t, "PutItem"),
		UpdateFunc:     unexpected[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput](t, "UpdateItem"),
		QueryFunc:      unexpected[dynamodb.QueryInput, dynamodb.QueryOutput](t, "Query"),
		BatchGetFunc:   unexpected[dynamodb.BatchGetItemInput, dynamodb.BatchGetItemOutput](t, "BatchGetItem"),
		BatchWriteFunc: unexpected[dynamodb.BatchWriteItemInput, dynamodb.BatchWriteItemOutput](t, "BatchWriteItem"),
	}
}

func unexpected[T, U any](t *testing.T, name string) apiCall[T, U] {
	return func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error) {
		t.Helper()
		t.Fatalf("unexpected %s call", name)
		return nil, nil
	}
}

func (m *mockClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetFunc(ctx, params, optFns...)
}

func (m *mockClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutFunc(ctx, params, optFns...)
}

func (m *mockClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return m.UpdateFunc(ctx, params, optFns...)
}

func (m *mockClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}

func (m *mockClient) BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	return m.BatchGetFunc(ctx, params, optFns...)
}

func (m *mockClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	return m.BatchWriteFunc(ctx, params, optFns...)
}
