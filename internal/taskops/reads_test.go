package taskops

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktools/tickdone/internal/ticktick"
)

// 2025-08-01 16:30 UTC is already 2025-08-02 00:30 in Shanghai.
var readsNow = time.Date(2025, 8, 1, 16, 30, 0, 0, time.UTC)

func TestListTasksExcludesCompletedByDefault(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{
			{ID: "t1", Title: "open"},
			{ID: "t2", Title: "done", Status: ticktick.StatusCompleted},
		},
	}
	svc := NewService(client)

	active := svc.ListTasks(context.Background(), false)
	require.Len(t, active, 1)
	assert.Equal(t, "t1", active[0].ID)

	all := svc.ListTasks(context.Background(), true)
	assert.Len(t, all, 2)
}

func TestListTasksConvertsDatesToDisplayZone(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{{
			ID:       "t1",
			Title:    "shanghai task",
			DueDate:  "2025-08-01T16:00:00.000+0000",
			TimeZone: "Asia/Shanghai",
		}},
	}
	svc := NewService(client)

	out := svc.ListTasks(context.Background(), false)

	require.Len(t, out, 1)
	assert.Equal(t, "2025-08-02T00:00:00", out[0].DueDate)
	// The snapshot itself keeps the raw provider form.
	assert.Equal(t, "2025-08-01T16:00:00.000+0000", client.tasks[0].DueDate)
}

func TestProjectTasks(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{
			{ID: "t1", ProjectID: "p1", Title: "in project"},
			{ID: "t2", ProjectID: "p2", Title: "elsewhere"},
			{ID: "t3", ProjectID: "p1", Title: "finished", Status: ticktick.StatusCompleted},
		},
	}
	svc := NewService(client)

	active := svc.ProjectTasks(context.Background(), "p1", false)
	require.Len(t, active, 1)
	assert.Equal(t, "t1", active[0].ID)

	all := svc.ProjectTasks(context.Background(), "p1", true)
	assert.Len(t, all, 2)
}

func TestSearchTasks(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{
			{ID: "t1", Title: "Buy groceries"},
			{ID: "t2", Title: "call mom", Content: "about groceries list"},
			{ID: "t3", Title: "Groceries run", Status: ticktick.StatusCompleted},
			{ID: "t4", Title: "unrelated"},
		},
	}
	svc := NewService(client)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive title and content match", "GROCERIES", []string{"t1", "t2", "t3"}},
		{"content-only match", "list", []string{"t2"}},
		{"no match", "dentist", nil},
		{"empty query", "", nil},
		{"whitespace-only query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.SearchTasks(context.Background(), tt.query)
			var ids []string
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTasksByPriority(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{
			{ID: "t1", Priority: ticktick.PriorityHigh},
			{ID: "t2", Priority: ticktick.PriorityNone},
			{ID: "t3", Priority: ticktick.PriorityHigh},
		},
	}
	svc := NewService(client)

	high := svc.TasksByPriority(context.Background(), ticktick.PriorityHigh)
	require.Len(t, high, 2)

	none := svc.TasksByPriority(context.Background(), ticktick.PriorityNone)
	require.Len(t, none, 1)
	assert.Equal(t, "t2", none[0].ID)
}

func TestTasksDueToday(t *testing.T) {
	client := &fakeClient{
		zone: "Asia/Shanghai",
		tasks: []ticktick.Task{
			// Aug 2 in Shanghai: today.
			{ID: "today", DueDate: "2025-08-02T10:00:00.000+0800"},
			// Aug 1 in Shanghai: yesterday.
			{ID: "past", DueDate: "2025-08-01T23:00:00.000+0800"},
			// Aug 3 in Shanghai: tomorrow.
			{ID: "future", DueDate: "2025-08-03T09:00:00.000+0800"},
			{ID: "undated"},
		},
	}
	svc := NewService(client, WithClock(fixedClock{now: readsNow}))

	due := svc.TasksDueToday(context.Background())

	require.Len(t, due, 1)
	assert.Equal(t, "today", due[0].ID)
}

func TestTasksDueTodayIgnoresTaskDisplayZone(t *testing.T) {
	// The task's own zone is a display preference; classification uses
	// the account's reference zone only.
	client := &fakeClient{
		zone: "Asia/Shanghai",
		tasks: []ticktick.Task{{
			ID:       "t1",
			DueDate:  "2025-08-01T16:00:00.000+0000", // Aug 2 in Shanghai
			TimeZone: "America/Los_Angeles",
		}},
	}
	svc := NewService(client, WithClock(fixedClock{now: readsNow}))

	due := svc.TasksDueToday(context.Background())

	require.Len(t, due, 1)
	assert.Equal(t, "t1", due[0].ID)
}

func TestOverdueTasks(t *testing.T) {
	client := &fakeClient{
		zone: "Asia/Shanghai",
		tasks: []ticktick.Task{
			{ID: "late", DueDate: "2025-08-01T09:00:00.000+0800"},
			{ID: "done-late", DueDate: "2025-08-01T09:00:00.000+0800", Status: ticktick.StatusCompleted},
			{ID: "today", DueDate: "2025-08-02T10:00:00.000+0800"},
			{ID: "undated"},
		},
	}
	svc := NewService(client, WithClock(fixedClock{now: readsNow}))

	overdue := svc.OverdueTasks(context.Background())

	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].ID, "completed tasks are never overdue")
}

func TestSyncDelegatesToSyncer(t *testing.T) {
	client := &fakeSyncClient{fakeClient: &fakeClient{}}
	svc := NewService(client)

	require.NoError(t, svc.Sync(context.Background()))
	assert.Equal(t, 1, client.syncCalls)

	client.syncErr = errors.New("sync down")
	require.Error(t, svc.Sync(context.Background()))
}

func TestSyncWithoutSyncerIsNoOp(t *testing.T) {
	svc := NewService(&fakeClient{})
	assert.NoError(t, svc.Sync(context.Background()))
}
