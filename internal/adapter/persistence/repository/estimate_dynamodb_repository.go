package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/pricing"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces"
)

const defaultEstimatesTableName = "dce_estimates"

// collectionKey is the fixed partition key of the single item holding every
// estimate. The whole store is one collection read and written as a unit.
const collectionKey = "dce_estimates"

type collectionItem struct {
	ID        string   `dynamodbav:"id"`
	Documents []string `dynamodbav:"documents"`
	UpdatedAt string   `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists estimate documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// All documents live under one constant key, each serialized to its own JSON
// string. The dataset is a shop's quote pipeline (tens of documents, not
// millions), so whole-collection read-modify-write is simpler than per-item
// rows and keeps List a single consistent read. Concurrent writers are
// last-writer-wins.

type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.EstimateDocument, error) {
	return r.load(ctx)
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.EstimateDocument, error) {
	docs, err := r.load(ctx)
	if err != nil {
		return entities.EstimateDocument{}, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	// Absent is not an error; callers check for the zero ID.
	return entities.EstimateDocument{}, nil
}

// Put creates or replaces one document inside the collection.
func (r *EstimateDynamoRepository) Put(ctx context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
	if err := pricing.ValidateDocument(doc); err != nil {
		return entities.EstimateDocument{}, err
	}

	docs, err := r.load(ctx)
	if err != nil {
		return entities.EstimateDocument{}, err
	}

	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}

	if err := r.save(ctx, docs); err != nil {
		return entities.EstimateDocument{}, err
	}
	return doc, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) error {
	docs, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, doc := range docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	return r.save(ctx, kept)
}

// load reads the whole collection. A record that no longer unmarshals or
// fails schema validation is skipped and logged, not fatal: one corrupt
// document must not take the dashboard down.
func (r *EstimateDynamoRepository) load(ctx context.Context) ([]entities.EstimateDocument, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: collectionKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it collectionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}

	docs := make([]entities.EstimateDocument, 0, len(it.Documents))
	for i, raw := range it.Documents {
		var doc entities.EstimateDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			log.Printf("[estimate][repository] skipping corrupt record index=%d err=%v", i, err)
			continue
		}
		if err := pricing.ValidateDocument(doc); err != nil {
			log.Printf("[estimate][repository] skipping invalid record id=%s err=%v", doc.ID, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *EstimateDynamoRepository) save(ctx context.Context, docs []entities.EstimateDocument) error {
	serialized := make([]string, 0, len(docs))
	for _, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		serialized = append(serialized, string(b))
	}

	av, err := attributevalue.MarshalMap(collectionItem{
		ID:        collectionKey,
		Documents: serialized,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
