package cart

import (
	"context"
	"errors"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoCart = errors.New("no planning cart for user")

var errConflict = errors.New("concurrent cart modification")

// maxWriteAttempts bounds the optimistic-concurrency retry loop.
const maxWriteAttempts = 3

func findPlanningCart(ctx context.Context, userID string) (models.EventPlan, error) {
	var plan models.EventPlan
	err := db.EventPlansCollection.FindOne(ctx, bson.M{
		"userId": userID,
		"status": models.StatusPlanning,
	}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return plan, ErrNoCart
	}
	return plan, err
}

// savePlanning writes the mutated plan back, conditioned on the revision read
// and on the document still being in Planning. Returns errConflict when a
// concurrent writer got there first.
func savePlanning(ctx context.Context, plan *models.EventPlan) error {
	oldRevision := plan.Revision
	plan.Revision = oldRevision + 1
	plan.UpdatedAt = time.Now()

	res, err := db.EventPlansCollection.ReplaceOne(ctx, bson.M{
		"planid":   plan.PlanID,
		"revision": oldRevision,
		"status":   models.StatusPlanning,
	}, plan)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		plan.Revision = oldRevision
		return errConflict
	}
	return nil
}

// mutatePlanning loads the owner's Planning cart, applies mutate, and saves
// it under the optimistic revision check, retrying on conflict. With
// createIfMissing, a fresh empty cart is created first; the partial unique
// index makes a concurrent double-create surface as a duplicate-key error,
// which is also retried.
func mutatePlanning(ctx context.Context, userID string, createIfMissing bool, mutate func(*models.EventPlan)) (models.EventPlan, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		plan, err := findPlanningCart(ctx, userID)
		if err == ErrNoCart {
			if !createIfMissing {
				return models.EventPlan{}, ErrNoCart
			}
			plan = emptyPlan(userID)
			plan.PlanID = utils.GetUUID()
			mutate(&plan)
			if _, err := db.EventPlansCollection.InsertOne(ctx, plan); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					continue // lost the create race; reload and merge
				}
				return models.EventPlan{}, err
			}
			return plan, nil
		}
		if err != nil {
			return models.EventPlan{}, err
		}

		mutate(&plan)
		switch err := savePlanning(ctx, &plan); err {
		case nil:
			return plan, nil
		case errConflict:
			continue
		default:
			return models.EventPlan{}, err
		}
	}
	return models.EventPlan{}, errConflict
}
