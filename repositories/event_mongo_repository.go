package repositories

import (
	"context"
	"errors"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/clock"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const EventsCollection = "events"

type recurringDocument struct {
	Enabled   bool       `bson:"enabled"`
	Frequency string     `bson:"frequency,omitempty"`
	Interval  int        `bson:"interval,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty"`
}

type eventDocument struct {
	ID            string               `bson:"_id"`
	Title         string               `bson:"title"`
	Description   string               `bson:"description"`
	StartDate     time.Time            `bson:"startDate"`
	EndDate       time.Time            `bson:"endDate"`
	Timezone      string               `bson:"timezone"`
	Location      *models.Location     `bson:"location,omitempty"`
	Team          string               `bson:"team,omitempty"`
	Guests        []models.Guest       `bson:"guests"`
	Recurring     recurringDocument    `bson:"recurring"`
	RSVPRequired  bool                 `bson:"rsvpRequired"`
	Notifications models.Notifications `bson:"notifications"`
	Privacy       string               `bson:"privacy"`
	CreatedAt     time.Time            `bson:"createdAt"`
	IsDeleted     bool                 `bson:"isDeleted"`
	DeletedAt     *time.Time           `bson:"deletedAt"`
	ParentEventID string               `bson:"parentEventId,omitempty"`
	InstanceDate  *time.Time           `bson:"instanceDate,omitempty"`
	IsException   bool                 `bson:"isException"`
}

func toDocument(e *models.Event) *eventDocument {
	doc := &eventDocument{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		StartDate:     e.StartDate.UTC(),
		EndDate:       e.EndDate.UTC(),
		Timezone:      e.Timezone,
		Team:          e.Team,
		Guests:        append([]models.Guest{}, e.Guests...),
		Recurring:     recurringDocument{Enabled: e.Recurring.Enabled, Frequency: string(e.Recurring.Frequency), Interval: e.Recurring.Interval},
		RSVPRequired:  e.RSVPRequired,
		Notifications: e.Notifications,
		Privacy:       string(e.Privacy),
		CreatedAt:     e.CreatedAt.UTC(),
		IsDeleted:     e.IsDeleted,
		DeletedAt:     e.DeletedAt,
		ParentEventID: e.ParentEventID,
		IsException:   e.IsException,
	}
	if !e.Location.IsZero() {
		loc := *e.Location
		doc.Location = &loc
	}
	if e.Recurring.EndDate != nil {
		end := e.Recurring.EndDate.UTC()
		doc.Recurring.EndDate = &end
	}
	if e.InstanceDate != nil {
		instance := e.InstanceDate.UTC()
		doc.InstanceDate = &instance
	}
	return doc
}

func (d *eventDocument) toEvent() *models.Event {
	e := &models.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		StartDate:   models.NewInstant(d.StartDate),
		EndDate:     models.NewInstant(d.EndDate),
		Timezone:    d.Timezone,
		Location:    d.Location,
		Team:        d.Team,
		Guests:      append([]models.Guest{}, d.Guests...),
		Recurring: models.Recurring{
			Enabled:   d.Recurring.Enabled,
			Frequency: models.Frequency(d.Recurring.Frequency),
			Interval:  d.Recurring.Interval,
		},
		RSVPRequired:  d.RSVPRequired,
		Notifications: d.Notifications,
		Privacy:       models.Privacy(d.Privacy),
		CreatedAt:     d.CreatedAt.UTC(),
		IsDeleted:     d.IsDeleted,
		ParentEventID: d.ParentEventID,
		IsException:   d.IsException,
	}
	if d.Recurring.EndDate != nil {
		e.Recurring.EndDate = models.InstantPtr(*d.Recurring.EndDate)
	}
	if d.DeletedAt != nil {
		deletedAt := d.DeletedAt.UTC()
		e.DeletedAt = &deletedAt
	}
	if d.InstanceDate != nil {
		e.InstanceDate = models.InstantPtr(*d.InstanceDate)
	}
	return e
}

// EventMongoRepository IEventRepository arayüzünün MongoDB uygulaması.
// Belge başına atomiklik koşullu FindOneAndUpdate ile sağlanır.
type EventMongoRepository struct {
	coll  *mongo.Collection
	clock clock.Clock
}

func NewEventMongoRepository(db *mongo.Database, clk clock.Clock) *EventMongoRepository {
	if clk == nil {
		clk = clock.Real{}
	}
	return &EventMongoRepository{coll: db.Collection(EventsCollection), clock: clk}
}

// EnsureIndexes listeleme ve temizlik sorgularının kullandığı indeksleri oluşturur.
func (r *EventMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "deletedAt", Value: -1}}},
		{Keys: bson.D{{Key: "parentEventId", Value: 1}}},
	})
	return err
}

func (r *EventMongoRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	stored := event.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.clock.Now().UTC()
	stored.IsDeleted = false
	stored.DeletedAt = nil

	if _, err := r.coll.InsertOne(ctx, toDocument(stored)); err != nil {
		configslog.Log.Error("EventMongoRepository.Create: DB error", zap.String("title", stored.Title), zap.Error(err))
		return nil, err
	}
	return stored, nil
}

func (r *EventMongoRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	doc, err := r.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toEvent(), nil
}

func (r *EventMongoRepository) findDocument(ctx context.Context, id string) (*eventDocument, error) {
	var doc eventDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventMongoRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &doc, nil
}

func (r *EventMongoRepository) ListActive(ctx context.Context) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"isDeleted": false}, opts)
}

func (r *EventMongoRepository) ListDeletedWithin(ctx context.Context, window time.Duration) ([]*models.Event, error) {
	since := r.clock.Now().UTC().Add(-window)
	filter := bson.M{"isDeleted": true, "deletedAt": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "deletedAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

func (r *EventMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Event, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		configslog.Log.Error("EventMongoRepository.Find: DB error", zap.Error(err))
		return nil, err
	}
	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		configslog.Log.Error("EventMongoRepository.Find: decode error", zap.Error(err))
		return nil, err
	}
	events := make([]*models.Event, 0, len(docs))
	for i := range docs {
		events = append(events, docs[i].toEvent())
	}
	return events, nil
}

func (r *EventMongoRepository) Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	doc, err := r.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsDeleted {
		return nil, ErrNotFound
	}
	event := doc.toEvent()
	patch.ApplyTo(event)

	// Okuma ile yazma arasında silinen kayıt güncellenmez.
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id, "isDeleted": false}, toDocument(event))
	if err != nil {
		configslog.Log.Error("EventMongoRepository.Update: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return event, nil
}

func (r *EventMongoRepository) SoftDelete(ctx context.Context, id string) (*models.Event, error) {
	now := r.clock.Now().UTC()
	update := bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now}}
	doc, err := r.findOneAndUpdate(ctx, bson.M{"_id": id, "isDeleted": false}, update)
	if err == nil {
		return doc.toEvent(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		configslog.Log.Error("EventMongoRepository.SoftDelete: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if _, err := r.findDocument(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyDeleted
}

func (r *EventMongoRepository) Recover(ctx context.Context, id string) (*models.Event, error) {
	now := r.clock.Now().UTC()
	filter := bson.M{
		"_id":       id,
		"isDeleted": true,
		"deletedAt": bson.M{"$gte": now.Add(-models.RetentionWindow)},
	}
	update := bson.M{"$set": bson.M{"isDeleted": false, "deletedAt": nil}}
	doc, err := r.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return doc.toEvent(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		configslog.Log.Error("EventMongoRepository.Recover: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	// Koşul tutmadı; nedenini mevcut belgeden çıkar.
	current, err := r.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkRecoverable(current.toEvent(), now); err != nil {
		return nil, err
	}
	return nil, ErrRetentionExpired
}

func (r *EventMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*eventDocument, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *EventMongoRepository) PurgeExpired(ctx context.Context, window time.Duration) (int64, error) {
	cutoff := purgeCutoff(r.clock.Now().UTC(), window)
	res, err := r.coll.DeleteMany(ctx, bson.M{"isDeleted": true, "deletedAt": bson.M{"$lt": cutoff}})
	if err != nil {
		configslog.Log.Error("EventMongoRepository.PurgeExpired: DB error", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ IEventRepository = (*EventMongoRepository)(nil)
