package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// API is the part of the DynamoDB client the store uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// item is the document layout of one application
type item struct {
	ID                     string    `dynamodbav:"id"`
	FullName               string    `dynamodbav:"full_name"`
	ContactNumber          string    `dynamodbav:"contact_number"`
	Email                  string    `dynamodbav:"email"`
	ReferenceNumber        string    `dynamodbav:"reference_number"`
	Amount                 string    `dynamodbav:"amount"`
	PaymentMethod          string    `dynamodbav:"payment_method"`
	Plan                   string    `dynamodbav:"plan"`
	Status                 string    `dynamodbav:"status"`
	EmergencyPerson        string    `dynamodbav:"emergency_person"`
	EmergencyContactNumber string    `dynamodbav:"emergency_contact_number"`
	EmergencyAddress       string    `dynamodbav:"emergency_address"`
	CreatedAt              time.Time `dynamodbav:"created_at"`
}

func toItem(app *models.PaymentApplication) item {
	return item{
		ID:                     app.ID,
		FullName:               app.FullName,
		ContactNumber:          app.ContactNumber,
		Email:                  app.Email,
		ReferenceNumber:        app.ReferenceNumber,
		Amount:                 app.Amount.String(),
		PaymentMethod:          app.PaymentMethod,
		Plan:                   app.Plan,
		Status:                 app.Status,
		EmergencyPerson:        app.EmergencyContact.Person,
		EmergencyContactNumber: app.EmergencyContact.ContactNumber,
		EmergencyAddress:       app.EmergencyContact.Address,
		CreatedAt:              app.CreatedAt.UTC(),
	}
}

func (it item) toModel() (models.PaymentApplication, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return models.PaymentApplication{}, fmt.Errorf("invalid amount %q on %s: %w", it.Amount, it.ID, err)
	}
	return models.PaymentApplication{
		ID:              it.ID,
		FullName:        it.FullName,
		ContactNumber:   it.ContactNumber,
		Email:           it.Email,
		ReferenceNumber: it.ReferenceNumber,
		Amount:          amount,
		PaymentMethod:   it.PaymentMethod,
		Plan:            it.Plan,
		Status:          it.Status,
		EmergencyContact: models.EmergencyContact{
			Person:        it.EmergencyPerson,
			ContactNumber: it.EmergencyContactNumber,
			Address:       it.EmergencyAddress,
		},
		CreatedAt: it.CreatedAt,
	}, nil
}

// Store keeps payment applications as documents in one DynamoDB table.
// It implements repository.PaymentRepository.
type Store struct {
	client    API
	tableName string
}

func New(client API, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// NewFromConfig builds the AWS client and makes sure the table exists outside prod
func NewFromConfig(ctx context.Context, cfg *Config) (*Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsConfig, func(o *dynamodb.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})

	store := New(client, cfg.TableName)
	if !env.IsProd() {
		if err := store.EnsureTable(ctx); err != nil {
			return nil, err
		}
	}
	log.Infof("[DynamoStore] Using table %s", cfg.TableName)
	return store, nil
}

// EnsureTable creates the table with an on-demand billing mode if it is missing
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tableName)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", s.tableName, err)
	}

	log.Warnf("[DynamoStore] Table %s not found, creating it", s.tableName)
	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.tableName, err)
	}
	return nil
}

// Create puts a new document; an existing id is never overwritten
func (s *Store) Create(ctx context.Context, app *models.PaymentApplication) error {
	app.PrepareForInsert()

	av, err := attributevalue.MarshalMap(toItem(app))
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to save application %s: %w", app.ID, err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.PaymentApplication, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get application %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, repository.ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal application: %w", err)
	}
	app, err := it.toModel()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List scans the whole table and orders the result newest first
func (s *Store) List(ctx context.Context, status string) ([]models.PaymentApplication, error) {
	var apps []models.PaymentApplication
	err := s.scan(ctx, status, false, func(out *dynamodb.ScanOutput) error {
		for _, raw := range out.Items {
			var it item
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return fmt.Errorf("failed to unmarshal application: %w", err)
			}
			app, err := it.toModel()
			if err != nil {
				return err
			}
			apps = append(apps, app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

// UpdateStatusIfPending sets status with a condition on the stored status
func (s *Store) UpdateStatusIfPending(ctx context.Context, id string, status string) (bool, error) {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 idKey(id),
		UpdateExpression:    aws.String("SET #status = :next"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":    &types.AttributeValueMemberS{Value: status},
			":pending": &types.AttributeValueMemberS{Value: models.PaymentStatusPending},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update application %s: %w", id, err)
	}
	return true, nil
}

func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := s.scan(ctx, status, true, func(out *dynamodb.ScanOutput) error {
		total += int64(out.Count)
		return nil
	})
	return total, err
}

func (s *Store) scan(ctx context.Context, status string, countOnly bool, page func(*dynamodb.ScanOutput) error) error {
	var lastEvaluatedKey map[string]types.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: lastEvaluatedKey,
		}
		if status != "" {
			input.FilterExpression = aws.String("#status = :status")
			input.ExpressionAttributeNames = map[string]string{"#status": "status"}
			input.ExpressionAttributeValues = map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: status},
			}
		}
		if countOnly {
			input.Select = types.SelectCount
		}

		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", s.tableName, err)
		}
		if err := page(out); err != nil {
			return err
		}

		lastEvaluatedKey = out.LastEvaluatedKey
		if len(lastEvaluatedKey) == 0 {
			return nil
		}
	}
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

var _ repository.PaymentRepository = (*Store)(nil)
