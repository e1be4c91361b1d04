package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

const collectionTasks = "tasks"

// TaskRepository stores tasks. Every read and write filters on both the task
// id and the owner id, so another user's task is indistinguishable from a
// missing one.
type TaskRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewTaskRepository(s *Store) *TaskRepository {
	return &TaskRepository{col: s.Database().Collection(collectionTasks), now: time.Now}
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	StartTime   time.Time          `bson:"startTime"`
	EndTime     time.Time          `bson:"endTime"`
	Priority    int                `bson:"priority"`
	Status      string             `bson:"status"`
	Tags        []string           `bson:"tags,omitempty"`
	User        primitive.ObjectID `bson:"user"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.StartTime.UTC(),
		EndTime:     d.EndTime.UTC(),
		Priority:    d.Priority,
		Status:      domain.TaskStatus(d.Status),
		Tags:        d.Tags,
		UserID:      d.User.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func newTaskDocument(owner primitive.ObjectID, t *domain.Task) taskDocument {
	return taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       t.Title,
		Description: t.Description,
		StartTime:   storedTime(t.StartTime),
		EndTime:     storedTime(t.EndTime),
		Priority:    t.Priority,
		Status:      string(t.Status),
		Tags:        t.Tags,
		User:        owner,
		CreatedAt:   storedTime(t.CreatedAt),
		UpdatedAt:   storedTime(t.UpdatedAt),
	}
}

// Create inserts a task owned by ownerID.
func (r *TaskRepository) Create(ctx context.Context, ownerID string, task *domain.Task) (*domain.Task, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, fmt.Errorf("insert task: invalid owner id %q", ownerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newTaskDocument(owner, task)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return doc.toDomain(), nil
}

// FindAllForOwner lists the owner's tasks in creation order.
func (r *TaskRepository) FindAllForOwner(ctx context.Context, ownerID string, f ports.TaskFilter) ([]*domain.Task, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []*domain.Task{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, listFilter(owner, f), opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cur.Next(ctx) {
		var doc taskDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return tasks, nil
}

// FindOneForOwner returns domain.ErrTaskNotFound unless the task exists and
// belongs to ownerID.
func (r *TaskRepository) FindOneForOwner(ctx context.Context, taskID, ownerID string) (*domain.Task, error) {
	filter, ok := ownedFilter(taskID, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateForOwner applies patch atomically and returns the updated task.
func (r *TaskRepository) UpdateForOwner(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	filter, ok := ownedFilter(taskID, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err := r.col.FindOneAndUpdate(ctx, filter, taskUpdateDoc(patch, r.now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

// DeleteForOwner removes the owner's task.
func (r *TaskRepository) DeleteForOwner(ctx context.Context, taskID, ownerID string) error {
	filter, ok := ownedFilter(taskID, ownerID)
	if !ok {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteAllForOwner removes every task of ownerID and reports how many went.
func (r *TaskRepository) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": owner})
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owner index used by every query.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func ownedFilter(taskID, ownerID string) (bson.M, bool) {
	tid, ok := parseID(taskID)
	if !ok {
		return nil, false
	}
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": tid, "user": owner}, true
}

func listFilter(owner primitive.ObjectID, f ports.TaskFilter) bson.M {
	filter := bson.M{"user": owner}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

// taskUpdateDoc builds the $set document for patch. The owner is never part
// of it.
func taskUpdateDoc(patch domain.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": storedTime(now)}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StartTime != nil {
		set["startTime"] = storedTime(*patch.StartTime)
	}
	if patch.EndTime != nil {
		set["endTime"] = storedTime(*patch.EndTime)
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	return bson.M{"$set": set}
}
