package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

const keyAttribute = "id"

// API is the subset of the DynamoDB client the repository uses.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// MatchRepository stores one item per match, keyed by game id.
type MatchRepository struct {
	api   API
	table string
}

func NewMatchRepository(api API, table string) *MatchRepository {
	return &MatchRepository{api: api, table: table}
}

func (r *MatchRepository) FindByID(ctx context.Context, id int64) (match.Match, bool, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            itemKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match item id=%d: %w", id, err)
	}
	if out.Item == nil {
		return match.Match{}, false, nil
	}

	var doc match.Document[time.Time]
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return match.Match{}, false, fmt.Errorf("unmarshal match item id=%d: %w", id, err)
	}
	item, err := match.DecodeDocument(doc, match.NativeTime{})
	if err != nil {
		return match.Match{}, false, fmt.Errorf("decode match item id=%d: %w", id, err)
	}
	return item, true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	doc := match.Encode(item, match.NativeTime{})
	av, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal match item id=%d: %w", item.ID, err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": keyAttribute},
	})
	if err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return fmt.Errorf("%w: id=%d", match.ErrDuplicateMatch, item.ID)
		}
		return fmt.Errorf("put match item id=%d: %w", item.ID, err)
	}
	return nil
}

// EnsureTable creates the table with on-demand billing when it is missing.
func (r *MatchRepository) EnsureTable(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", r.table, err)
	}

	_, err = r.api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(r.table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttribute), AttributeType: types.ScalarAttributeTypeN},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttribute), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

func itemKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keyAttribute: &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}
