package store

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

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
)

type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Table layout: PK=SessionID (S); ExpiresAt (N) is the table's TTL attribute.
type sessionItem struct {
	SessionID  string         `dynamodbav:"SessionID"`
	ProfileURL string         `dynamodbav:"ProfileURL,omitempty"`
	Profile    *fbref.Profile `dynamodbav:"Profile,omitempty"`
	Report     *scout.Report  `dynamodbav:"Report,omitempty"`
	Log        []llm.Message  `dynamodbav:"Log,omitempty"`
	InputKey   int            `dynamodbav:"InputKey"`
	Version    int64          `dynamodbav:"Version"`
	UpdatedAt  int64          `dynamodbav:"UpdatedAt"`
	ExpiresAt  int64          `dynamodbav:"ExpiresAt,omitempty"`
}

// SessionTable is a session.Store on DynamoDB. Writes are conditional on the
// version read, so two Lambdas racing on one session cannot interleave logs.
type SessionTable struct {
	DDB   DynamoDBAPI
	Table string
	TTL   time.Duration // 0 disables expiry
	Now   func() time.Time
}

var _ session.Store = (*SessionTable)(nil)

func (t *SessionTable) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func sessionKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"SessionID": &types.AttributeValueMemberS{Value: id},
	}
}

func (t *SessionTable) Get(ctx context.Context, id string) (*session.Session, error) {
	out, err := t.DDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.Table),
		Key:            sessionKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, session.ErrNotFound
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	// TTL deletion lags by up to a couple of days
	if it.ExpiresAt > 0 && t.now().Unix() >= it.ExpiresAt {
		return nil, session.ErrNotFound
	}

	return &session.Session{
		ID:         it.SessionID,
		ProfileURL: it.ProfileURL,
		Profile:    it.Profile,
		Report:     it.Report,
		Log:        scout.Log(it.Log),
		InputKey:   it.InputKey,
		Version:    it.Version,
		UpdatedAt:  time.Unix(it.UpdatedAt, 0).UTC(),
	}, nil
}

func (t *SessionTable) Save(ctx context.Context, s *session.Session) error {
	now := t.now()
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = now
	}
	it := sessionItem{
		SessionID:  s.ID,
		ProfileURL: s.ProfileURL,
		Profile:    s.Profile,
		Report:     s.Report,
		Log:        []llm.Message(s.Log),
		InputKey:   s.InputKey,
		Version:    s.Version + 1,
		UpdatedAt:  updated.Unix(),
	}
	if t.TTL > 0 {
		it.ExpiresAt = now.Add(t.TTL).Unix()
	}
	item, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	in := &dynamodb.PutItemInput{
		TableName: aws.String(t.Table),
		Item:      item,
	}
	if s.Version == 0 {
		in.ConditionExpression = aws.String("attribute_not_exists(SessionID)")
	} else {
		in.ConditionExpression = aws.String("Version = :v")
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(s.Version, 10)},
		}
	}

	if _, err := t.DDB.PutItem(ctx, in); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("put session %s at version %d: %w", s.ID, s.Version, session.ErrConflict)
		}
		return fmt.Errorf("put session %s: %w", s.ID, err)
	}
	s.Version++
	return nil
}

func (t *SessionTable) Delete(ctx context.Context, id string) error {
	_, err := t.DDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.Table),
		Key:       sessionKey(id),
	})
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
