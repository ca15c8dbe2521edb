package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"techatlas/config"
	"techatlas/types"
)

// TaskStatus is the lifecycle state of an analysis task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task tracks one background analysis from submission to result.
type Task struct {
	ID        string                `json:"task_id"`
	Status    TaskStatus            `json:"status"`
	Progress  int                   `json:"progress"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	Request   types.AnalysisRequest `json:"request"`
	Result    *types.AnalysisResult `json:"result,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewTaskID generates a unique task identifier.
func NewTaskID() string { return uuid.NewString() }

// TaskStore persists task state across the async request/poll cycle and
// keeps enough ordering to serve the comparison history endpoint.
type TaskStore interface {
	Put(ctx context.Context, task *Task) error
	Get(ctx context.Context, id string) (*Task, bool, error)
	// Recent returns up to limit tasks, newest submission first.
	Recent(ctx context.Context, limit int) ([]*Task, error)
}

// NewTaskStoreFromEnv returns a Redis-backed store when REDIS_ADDR is set
// and reachable, otherwise the in-memory store. Falling back keeps the
// service usable without infrastructure.
func NewTaskStoreFromEnv(ctx context.Context) TaskStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return NewMemoryTaskStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetEnvIntOrDefault("REDIS_DB", 0),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis at %s unreachable (%v), using in-memory task store", addr, err)
		return NewMemoryTaskStore()
	}
	log.Printf("Using redis task store at %s", addr)
	return &RedisTaskStore{client: client, ttl: 24 * time.Hour}
}

// MemoryTaskStore is the default single-process task store.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
	order []string
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]Task)}
}

func (s *MemoryTaskStore) Put(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.tasks[task.ID]; !seen {
		s.order = append(s.order, task.ID)
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) Get(_ context.Context, id string) (*Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (s *MemoryTaskStore) Recent(_ context.Context, limit int) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Task, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		t := s.tasks[s.order[i]]
		out = append(out, &t)
	}
	return out, nil
}

// RedisTaskStore keeps task state in redis so multiple replicas can serve
// status polls for the same task.
type RedisTaskStore struct {
	client *redis.Client
	ttl    time.Duration
}

func taskKey(id string) string { return "techatlas:task:" + id }

// recentTasksKey holds task IDs newest first; trimmed so the history list
// cannot grow unbounded.
const (
	recentTasksKey = "techatlas:tasks:recent"
	recentTasksMax = 100
)

func (s *RedisTaskStore) Put(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := s.client.Set(ctx, taskKey(task.ID), data, s.ttl).Err(); err != nil {
		return err
	}
	if task.Status == TaskPending {
		pipe := s.client.TxPipeline()
		pipe.LPush(ctx, recentTasksKey, task.ID)
		pipe.LTrim(ctx, recentTasksKey, 0, recentTasksMax-1)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisTaskStore) Get(ctx context.Context, id string) (*Task, bool, error) {
	data, err := s.client.Get(ctx, taskKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &t, true, nil
}

func (s *RedisTaskStore) Recent(ctx context.Context, limit int) ([]*Task, error) {
	ids, err := s.client.LRange(ctx, recentTasksKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Task, 0, len(ids))
	for _, id := range ids {
		t, ok, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok { // expired task records drop out of the history
			out = append(out, t)
		}
	}
	return out, nil
}
