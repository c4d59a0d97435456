package dal

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/logger"
	"github.com/dumplinhq/dumplin-api/subscription/domain"
)

const subscriptionsCollection = "subscriptions"

// storeTimeout bounds every store round trip so a stuck backend surfaces as
// ErrStoreTimeout instead of hanging a request.
const storeTimeout = 15 * time.Second

var (
	ErrNotFound         = errors.New("subscription not found")
	ErrStoreTimeout     = errors.New("subscription store timeout")
	ErrStoreUnavailable = errors.New("subscription store unavailable")
	ErrInvalidUserID    = errors.New("invalid user ID")
)

// SubscriptionFirestore is used to interact with subscription records stored on Firestore.
type SubscriptionFirestore struct {
	firestoreClientFn connection.FirestoreFromContextFun
	l                 logger.Provider
}

// NewSubscriptionFirestore returns a new SubscriptionFirestore instance with given project id.
func NewSubscriptionFirestore(ctx context.Context, projectID string) (*SubscriptionFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewSubscriptionFirestoreWithClient(
		func(ctx context.Context) logger.ILogger {
			return logger.FromContext(ctx)
		},
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewSubscriptionFirestoreWithClient returns a new SubscriptionFirestore using given client.
func NewSubscriptionFirestoreWithClient(log logger.Provider, fun connection.FirestoreFromContextFun) *SubscriptionFirestore {
	return &SubscriptionFirestore{
		firestoreClientFn: fun,
		l:                 log,
	}
}

func (s *SubscriptionFirestore) docRef(ctx context.Context, userID string) *firestore.DocumentRef {
	return s.firestoreClientFn(ctx).Collection(subscriptionsCollection).Doc(userID)
}

// GetByUserID fetches the subscription record for a user.
// Returns ErrNotFound when no record exists.
func (s *SubscriptionFirestore) GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	snap, err := s.docRef(ctx, userID).Get(ctx)
	if err != nil {
		return nil, translateStoreError(err)
	}

	return snapToSubscription(snap)
}

// GetByCustomerID fetches a subscription record by its RevenueCat customer id.
// Returns ErrNotFound when no record carries that id.
func (s *SubscriptionFirestore) GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	if customerID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	docs, err := s.firestoreClientFn(ctx).Collection(subscriptionsCollection).
		Where("revenueCatCustomerId", "==", customerID).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, translateStoreError(err)
	}

	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	sub, err := snapToSubscription(docs[0])
	if err != nil {
		s.l(ctx).Warningf("unable to convert to subscription record: %s", err)
		return nil, err
	}

	return sub, nil
}

// Upsert merges the patch into the user's record, creating it if absent.
// Fields not present in the patch keep their stored values.
func (s *SubscriptionFirestore) Upsert(ctx context.Context, userID string, patch map[string]interface{}) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stampPatch(patch)

	if _, err := s.docRef(ctx, userID).Set(ctx, patch, firestore.MergeAll); err != nil {
		return translateStoreError(err)
	}

	return nil
}

// UpsertWith runs fn against the current record inside a transaction and
// merges the patch it returns. A nil patch means no write. The read and the
// write commit atomically, so concurrent events for the same user serialize.
func (s *SubscriptionFirestore) UpsertWith(ctx context.Context, userID string, fn UpdateFn) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	ref := s.docRef(ctx, userID)

	err := s.firestoreClientFn(ctx).RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current *domain.Subscription

		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err == nil {
			current, err = snapToSubscription(snap)
			if err != nil {
				return err
			}
		}

		patch, err := fn(current)
		if err != nil {
			return err
		}

		if patch == nil {
			return nil
		}

		stampPatch(patch)

		return tx.Set(ref, patch, firestore.MergeAll)
	})
	if err != nil {
		return translateStoreError(err)
	}

	return nil
}

func snapToSubscription(snap *firestore.DocumentSnapshot) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := snap.DataTo(&sub); err != nil {
		return nil, err
	}

	sub.UserID = snap.Ref.ID

	return normalizeSubscription(&sub), nil
}

// normalizeSubscription fills defaults for fields a partial doc may lack. A
// doc created by an alias event has no status field until a purchase lands;
// such a record grants nothing, which is what expired means.
func normalizeSubscription(sub *domain.Subscription) *domain.Subscription {
	if sub.Status == "" {
		sub.Status = domain.StatusExpired
	}

	return sub
}

// stampPatch sets updatedAt on every write. Callers add createdAt themselves
// when they know the record is new, so creation time survives later merges.
func stampPatch(patch map[string]interface{}) {
	patch["updatedAt"] = firestore.ServerTimestamp
}

func translateStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreTimeout
	}

	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.DeadlineExceeded:
		return ErrStoreTimeout
	case codes.Unavailable:
		return ErrStoreUnavailable
	default:
		return err
	}
}
