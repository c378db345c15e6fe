package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/journalvault-backend/internal/models"
)

const (
	journalsCollection = "shared_journals"
	entriesCollection  = "journal_entries"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to MongoDB and ensures the indexes the entry queries
// rely on. The database name is taken from the URI path, defaulting to
// "journal".
func OpenMongo(ctx context.Context, mongoURI string) (Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	s := &mongoStore{client: client, db: client.Database(mongoDBName(mongoURI))}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("✅ Connected to MongoDB")
	return s, nil
}

func mongoDBName(mongoURI string) string {
	dbName := "journal"
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			dbName = dbPart
		}
	}
	return dbName
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.db.Collection(entriesCollection).Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "share_key", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}

func (s *mongoStore) CreateJournal(ctx context.Context, j *models.Journal) error {
	_, err := s.db.Collection(journalsCollection).InsertOne(ctx, j)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrConflict
	}
	return err
}

func (s *mongoStore) GetJournal(ctx context.Context, shareKey string) (*models.Journal, error) {
	var j models.Journal
	err := s.db.Collection(journalsCollection).FindOne(ctx, bson.M{"_id": shareKey}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *mongoStore) ListJournals(ctx context.Context) ([]models.JournalSummary, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})

	cursor, err := s.db.Collection(journalsCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	journals := []models.JournalSummary{}
	if err := cursor.All(ctx, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (s *mongoStore) TouchJournal(ctx context.Context, shareKey string, at time.Time) error {
	res, err := s.db.Collection(journalsCollection).UpdateOne(ctx,
		bson.M{"_id": shareKey},
		bson.M{"$set": bson.M{"updated_at": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoStore) SetJournalPermissions(ctx context.Context, shareKey string, editableByAnyone bool, at time.Time) error {
	res, err := s.db.Collection(journalsCollection).UpdateOne(ctx,
		bson.M{"_id": shareKey},
		bson.M{"$set": bson.M{"editable_by_anyone": editableByAnyone, "updated_at": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteJournal removes the journal and its entries in one multi-document
// transaction. Transactions require the server to run as a replica set.
func (s *mongoStore) DeleteJournal(ctx context.Context, shareKey string) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.db.Collection(entriesCollection).DeleteMany(sc, bson.M{"share_key": shareKey}); err != nil {
			return nil, err
		}
		res, err := s.db.Collection(journalsCollection).DeleteOne(sc, bson.M{"_id": shareKey})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, models.ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (s *mongoStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	var e models.Entry
	err := s.db.Collection(entriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *mongoStore) InsertEntry(ctx context.Context, e *models.Entry) error {
	_, err := s.db.Collection(entriesCollection).InsertOne(ctx, e)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrConflict
	}
	return err
}

func (s *mongoStore) UpdateEntry(ctx context.Context, e *models.Entry) error {
	res, err := s.db.Collection(entriesCollection).UpdateOne(ctx,
		bson.M{"_id": e.ID},
		bson.M{"$set": bson.M{
			"content":        e.Content,
			"date":           e.Date,
			"updated_at":     e.UpdatedAt,
			"last_edited_by": e.LastEditedBy,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoStore) ListEntries(ctx context.Context, shareKey string) ([]models.Entry, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"date": -1})

	cursor, err := s.db.Collection(entriesCollection).Find(ctx, bson.M{"share_key": shareKey}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Disconnect(disconnectCtx)
}
