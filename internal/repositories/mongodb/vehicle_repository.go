package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/internal/utils"
)

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the unique-index race; report who holds the plate now.
			existing, lookupErr := r.GetByPlate(ctx, vehicle.Plate)
			if lookupErr == nil && existing != nil && existing.OwnerID == vehicle.OwnerID {
				return apperrors.ErrAlreadyRegisteredBySelf
			}
			return apperrors.ErrAlreadyRegisteredByOther
		}
		return apperrors.NewTransient("failed to create vehicle", err)
	}

	r.cacheVehicle(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	if vehicle := r.getVehicleFromCache(ctx, utils.CacheVehiclePrefix+id.Hex()); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to get vehicle", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	if vehicle := r.getVehicleFromCache(ctx, utils.CacheVehiclePlatePrefix+plate); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to get vehicle by plate", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Vehicle, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperrors.NewTransient("failed to find vehicles by owner", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return apperrors.NewTransient("failed to update vehicle", err)
	}

	r.invalidateVehicleCache(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Fetch first so the plate cache key can be invalidated too.
	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperrors.ErrVehicleNotFound
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewTransient("failed to delete vehicle", err)
	}

	r.invalidateVehicleCache(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Cache operations

func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}

	r.cache.Set(ctx, utils.CacheVehiclePrefix+vehicle.ID.Hex(), vehicle, utils.VehicleCacheTTL)
	r.cache.Set(ctx, utils.CacheVehiclePlatePrefix+vehicle.Plate, vehicle, utils.PlateCacheTTL)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, key string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}

	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, key, &vehicle); err != nil {
		return nil
	}

	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil || vehicle == nil {
		return
	}

	r.cache.Delete(ctx,
		utils.CacheVehiclePrefix+vehicle.ID.Hex(),
		utils.CacheVehiclePlatePrefix+vehicle.Plate,
	)
}
