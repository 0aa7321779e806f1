package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
)

const (
	stockCollection  = "stock_items"
	alertsCollection = "low_stock_alerts"
)

// stockDocument is one item of the snapshot. Seq keeps the iteration order.
type stockDocument struct {
	Seq       int       `bson:"seq"`
	Name      string    `bson:"name"`
	Quantity  int       `bson:"quantity"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Repository stores the stock snapshot and alert history in MongoDB.
type Repository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
	now    func() time.Time
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		dbName: dbName,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Load reads every stock document in insertion order.
func (r *Repository) Load(ctx context.Context) (models.Snapshot, error) {
	collection := r.client.Database(r.dbName).Collection(stockCollection)

	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query stock items: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []stockDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode stock items: %w", err)
	}

	return fromDocuments(docs), nil
}

// Save replaces the stored snapshot with the given one.
func (r *Repository) Save(ctx context.Context, snapshot models.Snapshot) error {
	collection := r.client.Database(r.dbName).Collection(stockCollection)

	if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to clear stock items: %w", err)
	}

	docs := toDocuments(snapshot, r.now())
	if len(docs) == 0 {
		r.logger.Info("data saved successfully", zap.String("collection", stockCollection), zap.Int("items", 0))
		return nil
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert stock items: %w", err)
	}

	r.logger.Info("data saved successfully", zap.String("collection", stockCollection), zap.Int("items", len(docs)))
	return nil
}

// SaveAlert appends a low-stock alert to the alert history.
func (r *Repository) SaveAlert(ctx context.Context, alert models.LowStockAlert) error {
	collection := r.client.Database(r.dbName).Collection(alertsCollection)
	if _, err := collection.InsertOne(ctx, alert); err != nil {
		return fmt.Errorf("failed to insert low stock alert: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func toDocuments(snapshot models.Snapshot, now time.Time) []interface{} {
	docs := make([]interface{}, 0, len(snapshot.Items))
	for i, item := range snapshot.Items {
		docs = append(docs, stockDocument{
			Seq:       i,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UpdatedAt: now,
		})
	}
	return docs
}

func fromDocuments(docs []stockDocument) models.Snapshot {
	items := make([]models.StockItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.StockItem{Name: doc.Name, Quantity: doc.Quantity})
	}
	return models.Snapshot{Items: items}
}
