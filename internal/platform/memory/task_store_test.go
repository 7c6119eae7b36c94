package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/platform/memory"
	"github.com/taskdeck/task-api/internal/store"
)

func defaultPage() store.TaskPage {
	return store.TaskPage{Page: 1, PageSize: 10}
}

func TestTaskStoreCreateAndGetRoundTrip(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{
		Title: "Buy milk",
		Tags:  []string{"Home ", " Errand"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, domain.TaskStatusActive, created.Status)
	assert.Equal(t, domain.TaskPriorityMedium, created.Priority)
	assert.Equal(t, []string{"home", "errand"}, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, !created.CreatedAt.After(created.UpdatedAt))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// repeated reads with no mutation are identical
	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestTaskStoreCreateValidation(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	_, err := s.Create(ctx, domain.TaskInput{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrTitleEmpty)

	_, err = s.Create(ctx, domain.TaskInput{
		Title: "t",
		Tags:  []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.ErrorIs(t, err, domain.ErrTooManyTags)
}

func TestTaskStoreGetNotFound(t *testing.T) {
	s := memory.NewTaskStore()

	_, err := s.Get(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestTaskStoreIDsNeverReused(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	first, err := s.Create(ctx, domain.TaskInput{Title: "one"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, first.ID))

	second, err := s.Create(ctx, domain.TaskInput{Title: "two"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestTaskStoreConcurrentCreatesYieldDistinctIDs(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	const k = 50
	ids := make(chan int64, k)
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := s.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("task %d", i)})
			assert.NoError(t, err)
			ids <- created.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, k)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, k)
}

func TestTaskStoreListPagination(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := s.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}

	pageOne, total, err := s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, pageOne, 10)

	pageTwo, total, err := s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, pageTwo, 5)

	// concatenated pages reproduce the full list without duplicates
	seen := make(map[int64]bool)
	for _, task := range append(pageOne, pageTwo...) {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
	assert.Len(t, seen, 15)

	// a page past the end is empty but total is still reported
	pastEnd, total, err := s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, pastEnd)
	assert.Equal(t, 15, total)
}

func TestTaskStoreListPageValidation(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	_, _, err := s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, _, err = s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)

	_, _, err = s.List(ctx, store.TaskFilter{}, store.TaskPage{Page: 1, PageSize: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
}

func TestTaskStoreListOrderingDeterministic(t *testing.T) {
	// Freeze the clock so every task shares created_at and ordering falls
	// back to id ascending.
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := memory.NewTaskStore().WithNow(func() time.Time { return fixed })
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}

	tasks, _, err := s.List(ctx, store.TaskFilter{}, defaultPage())
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	for i := 1; i < len(tasks); i++ {
		assert.Less(t, tasks[i-1].ID, tasks[i].ID)
	}

	// newest-first when timestamps differ
	s2 := memory.NewTaskStore()
	for i := 0; i < 3; i++ {
		_, err := s2.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	ordered, _, err := s2.List(ctx, store.TaskFilter{}, defaultPage())
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	for i := 1; i < len(ordered); i++ {
		assert.False(t, ordered[i-1].CreatedAt.Before(ordered[i].CreatedAt))
	}
}

func TestTaskStoreListFilters(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	mustCreate := func(in domain.TaskInput) *domain.Task {
		created, err := s.Create(ctx, in)
		require.NoError(t, err)
		return created
	}

	home := mustCreate(domain.TaskInput{Title: "clean", Tags: []string{"home"}})
	work := mustCreate(domain.TaskInput{
		Title:    "report",
		Priority: domain.TaskPriorityHigh,
		Tags:     []string{"work"},
	})
	done := mustCreate(domain.TaskInput{Title: "old", Status: domain.TaskStatusCompleted})

	statusActive := domain.TaskStatusActive
	tasks, total, err := s.List(ctx, store.TaskFilter{Status: &statusActive}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, task := range tasks {
		assert.Equal(t, domain.TaskStatusActive, task.Status)
	}

	priorityHigh := domain.TaskPriorityHigh
	tasks, total, err = s.List(ctx, store.TaskFilter{Priority: &priorityHigh}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, work.ID, tasks[0].ID)

	// tag intersection: any requested tag matches, input tags normalized
	tasks, total, err = s.List(ctx, store.TaskFilter{Tags: []string{" HOME ", "work"}}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	ids := []int64{tasks[0].ID, tasks[1].ID}
	assert.ElementsMatch(t, []int64{home.ID, work.ID}, ids)

	// conjunction of predicates
	tasks, total, err = s.List(ctx, store.TaskFilter{
		Status: &statusActive,
		Tags:   []string{"work"},
	}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, work.ID, tasks[0].ID)

	_ = done
}

func TestTaskStoreTagFilterExactSubset(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	tagged := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		in := domain.TaskInput{Title: fmt.Sprintf("task %d", i)}
		if i%3 == 0 {
			in.Tags = []string{"target"}
		}
		created, err := s.Create(ctx, in)
		require.NoError(t, err)
		tagged[created.ID] = i%3 == 0
	}

	tasks, total, err := s.List(ctx, store.TaskFilter{Tags: []string{"target"}}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	for _, task := range tasks {
		assert.True(t, tagged[task.ID])
	}
}

func TestTaskStoreListFilterTagsUnbounded(t *testing.T) {
	// The five-tag limit constrains a task's own tags; a filter may request
	// any number of tags.
	s := memory.NewTaskStore()
	ctx := context.Background()

	_, err := s.Create(ctx, domain.TaskInput{Title: "t", Tags: []string{"f"}})
	require.NoError(t, err)

	filter := store.TaskFilter{Tags: []string{"a", "b", "c", "d", "e", "F "}}
	tasks, total, err := s.List(ctx, filter, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
}

func TestTaskStoreListByStatus(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	_, err := s.Create(ctx, domain.TaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.TaskInput{Title: "b", Status: domain.TaskStatusArchived})
	require.NoError(t, err)

	archived, err := s.ListByStatus(ctx, domain.TaskStatusArchived)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "b", archived[0].Title)

	_, err = s.ListByStatus(ctx, domain.TaskStatus("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTaskStoreUpdate(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "original"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, domain.TaskPatch{
		Status: domain.NewField(domain.TaskStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "original", updated.Title)
	assert.True(t, !updated.CreatedAt.After(updated.UpdatedAt))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestTaskStoreUpdateRefreshesUpdatedAtOnlyOnChange(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := memory.NewTaskStore().WithNow(func() time.Time { return current })
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "original"})
	require.NoError(t, err)

	current = current.Add(time.Hour)

	// same value: no refresh
	same, err := s.Update(ctx, created.ID, domain.TaskPatch{
		Title: domain.NewField("original"),
	})
	require.NoError(t, err)
	assert.True(t, same.UpdatedAt.Equal(created.UpdatedAt))

	// real change: refreshed
	changed, err := s.Update(ctx, created.ID, domain.TaskPatch{
		Title: domain.NewField("renamed"),
	})
	require.NoError(t, err)
	assert.True(t, changed.UpdatedAt.Equal(current))
	assert.True(t, changed.CreatedAt.Equal(created.CreatedAt))
}

func TestTaskStoreUpdateNotFound(t *testing.T) {
	s := memory.NewTaskStore()

	_, err := s.Update(context.Background(), 999, domain.TaskPatch{
		Title: domain.NewField("x"),
	})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreUpdateEmptyPatchRejected(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "t"})
	require.NoError(t, err)

	_, err = s.Update(ctx, created.ID, domain.TaskPatch{})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)
}

func TestTaskStoreUpdateInvalidPatchTouchesNothing(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "t"})
	require.NoError(t, err)

	_, err = s.Update(ctx, created.ID, domain.TaskPatch{
		Priority: domain.NewField(domain.TaskPriorityHigh),
		Title:    domain.NewField("   "),
	})
	require.Error(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTaskStoreUpdateClearsDueDate(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	due := time.Now().UTC().Add(24 * time.Hour)
	created, err := s.Create(ctx, domain.TaskInput{Title: "t", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)

	cleared, err := s.Update(ctx, created.ID, domain.TaskPatch{
		DueDate: domain.NullField[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestTaskStoreDelete(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "t"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// second delete signals absence
	err = s.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreStatisticsConsistency(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	checkInvariant := func() domain.TaskStatistics {
		stats, err := s.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, stats.Total, stats.Active+stats.Completed+stats.Archived)
		return stats
	}

	checkInvariant()

	var ids []int64
	for i := 0; i < 6; i++ {
		status := domain.TaskStatusActive
		if i%2 == 0 {
			status = domain.TaskStatusCompleted
		}
		created, err := s.Create(ctx, domain.TaskInput{
			Title:  fmt.Sprintf("task %d", i),
			Status: status,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	stats := checkInvariant()
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 3, stats.Completed)

	_, err := s.Update(ctx, ids[1], domain.TaskPatch{
		Status: domain.NewField(domain.TaskStatusArchived),
	})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, ids[0]))

	stats = checkInvariant()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Archived)
}

func TestTaskStoreCopyOnRead(t *testing.T) {
	s := memory.NewTaskStore()
	ctx := context.Background()

	created, err := s.Create(ctx, domain.TaskInput{Title: "t", Tags: []string{"a"}})
	require.NoError(t, err)

	// mutating a returned record must not leak into the store
	created.Tags[0] = "mutated"
	created.Title = "mutated"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
}
