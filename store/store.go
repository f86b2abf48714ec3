package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/maqsad-io/dynamo-ninja/internal/chunk"
)

const (
	// MaxBatchWrite is the store's ceiling on items per bulk-write call.
	MaxBatchWrite = 25

	// MaxBatchGet is the store's ceiling on keys per bulk-fetch call.
	MaxBatchGet = 100
)

// Store is the data-access layer over a DynamoDB client. It holds no
// per-request state and is safe for concurrent use.
type Store struct {
	client Client
	config Config
}

// New creates a Store around an existing client handle.
func New(client Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Get fetches a single item by key. A missing item surfaces as ErrNotFound;
// any other store failure is passed through as a ProviderError.
func (s *Store) Get(ctx context.Context, table string, key Key) (Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, invalidf("key is required")
	}

	avKey, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       avKey,
	})
	if err != nil {
		if isNotFoundSignal(err) {
			return nil, ErrNotFound
		}
		return nil, normalize("get", table, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	return unmarshalRecord(out.Item)
}

// BatchGet fetches the items whose keyAttr attribute equals one of ids.
// Requests are issued in chunks of at most MaxBatchGet keys, sequentially
// and in input order. Only the items actually found are returned; ids with
// no matching item are silently omitted, so callers cannot distinguish an
// empty result from partially missing ids. Keys the store leaves
// unprocessed are surfaced as a failure rather than dropped: this layer
// performs no retries.
func (s *Store) BatchGet(ctx context.Context, table, keyAttr string, ids []string) ([]Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if keyAttr == "" {
		return nil, invalidf("key attribute name is required")
	}
	for _, id := range ids {
		if id == "" {
			return nil, invalidf("id list contains an empty id")
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var found []Record
	for _, group := range chunk.Slices(ids, MaxBatchGet) {
		keys := make([]map[string]types.AttributeValue, len(group))
		for i, id := range group {
			keys[i] = map[string]types.AttributeValue{
				keyAttr: &types.AttributeValueMemberS{Value: id},
			}
		}

		out, err := s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				table: {Keys: keys},
			},
		})
		if err != nil {
			return nil, normalize("batch get", table, err)
		}
		if n := len(out.UnprocessedKeys[table].Keys); n > 0 {
			return nil, &ProviderError{
				Op:    "batch get",
				Table: table,
				Err:   fmt.Errorf("%d keys left unprocessed", n),
			}
		}

		for _, raw := range out.Responses[table] {
			rec, err := unmarshalRecord(raw)
			if err != nil {
				return nil, err
			}
			found = append(found, rec)
		}
	}

	return found, nil
}

// QueryByIndex queries the named secondary index with an equality test for
// every attribute in match, ANDed together. All pages are drained; matches
// are returned in store order. Zero matches surface as ErrNotFound.
func (s *Store) QueryByIndex(ctx context.Context, table, index string, match map[string]any) ([]Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if index == "" {
		return nil, invalidf("index name is required")
	}
	if len(match) == 0 {
		return nil, invalidf("at least one match attribute is required")
	}

	expr, err := buildEquality(match)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String(expr.text),
		ExpressionAttributeNames:  expr.names,
		ExpressionAttributeValues: expr.values,
	}

	var records []Record
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, normalize("query", table, err)
		}
		for _, raw := range page.Items {
			rec, err := unmarshalRecord(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// Create writes a new item unconditionally. A missing, nil or empty id
// attribute is replaced with a generated identifier; createdAt and updatedAt
// are stamped with the same epoch-millisecond instant. The enriched record
// is returned as written, without a server round-trip re-read. A second
// create with the same caller-supplied id overwrites the first.
func (s *Store) Create(ctx context.Context, table string, rec Record) (Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	enriched := s.enrich(rec, enrichOptions{generateID: true, format: formatEpochMillis})
	item, err := marshalRecord(enriched)
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return nil, normalize("put", table, err)
	}

	return enriched, nil
}

// BatchCreate writes recs in chunks of at most MaxBatchWrite items,
// sequentially and in input order, enriching every record independently the
// same way Create does. The returned slice always holds all N enriched
// records in input order: it is assembled from the enrichment step, not
// from store responses, so it reflects intent even when a later chunk's
// write fails. On failure the error is returned immediately alongside the
// records; chunks already written remain written.
func (s *Store) BatchCreate(ctx context.Context, table string, recs []Record) ([]Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}

	enriched := make([]Record, len(recs))
	for i, rec := range recs {
		enriched[i] = s.enrich(rec, enrichOptions{generateID: true, format: formatEpochMillis})
	}

	if err := s.writeBatches(ctx, table, enriched); err != nil {
		return enriched, err
	}
	return enriched, nil
}

// Update rewrites exactly the supplied attributes on the item identified by
// key, plus updatedAt, which is always restamped (any caller-supplied value
// for it is overwritten). Attributes that collide with the key are rejected
// with ErrValidation. The full post-update item as reported by the store is
// returned, not merely the patched subset.
func (s *Store) Update(ctx context.Context, table string, key Key, attrs map[string]any) (Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, invalidf("key is required")
	}

	avKey, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged[s.config.UpdatedAtAttribute] = timestamp(s.config.Clock(), formatEpochMillis)

	expr, err := buildUpdate(merged, key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       avKey,
		UpdateExpression:          aws.String(expr.text),
		ExpressionAttributeNames:  expr.names,
		ExpressionAttributeValues: expr.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, normalize("update", table, err)
	}

	return unmarshalRecord(out.Attributes)
}

// AddItem writes a single record on the append path: no identifier is
// generated, and unless skipTimestamps is set, createdAt/updatedAt are
// stamped as ISO-8601 strings. The caller observes only success or failure.
func (s *Store) AddItem(ctx context.Context, table string, rec Record, skipTimestamps bool) error {
	if err := validateTable(table); err != nil {
		return err
	}

	enriched := s.enrich(rec, enrichOptions{format: formatISO8601, skipTimestamps: skipTimestamps})
	item, err := marshalRecord(enriched)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return normalize("put", table, err)
}

// AddItems writes recs on the append path in chunks of at most
// MaxBatchWrite, sequentially and in input order. Stamping matches AddItem.
// On failure chunks already written remain written.
func (s *Store) AddItems(ctx context.Context, table string, recs []Record, skipTimestamps bool) error {
	if err := validateTable(table); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	enriched := make([]Record, len(recs))
	for i, rec := range recs {
		enriched[i] = s.enrich(rec, enrichOptions{format: formatISO8601, skipTimestamps: skipTimestamps})
	}

	return s.writeBatches(ctx, table, enriched)
}

// writeBatches issues one BatchWriteItem call per chunk of MaxBatchWrite
// records, strictly in order. Unprocessed items are surfaced as a failure
// rather than retried: this layer performs no retries.
func (s *Store) writeBatches(ctx context.Context, table string, recs []Record) error {
	for _, group := range chunk.Slices(recs, MaxBatchWrite) {
		requests := make([]types.WriteRequest, len(group))
		for i, rec := range group {
			item, err := marshalRecord(rec)
			if err != nil {
				return err
			}
			requests[i] = types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			}
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				table: requests,
			},
		})
		if err != nil {
			return normalize("batch write", table, err)
		}
		if n := len(out.UnprocessedItems[table]); n > 0 {
			return &ProviderError{
				Op:    "batch write",
				Table: table,
				Err:   fmt.Errorf("%d items left unprocessed", n),
			}
		}
	}
	return nil
}

func validateTable(table string) error {
	if table == "" {
		return invalidf("table name is required")
	}
	return nil
}
