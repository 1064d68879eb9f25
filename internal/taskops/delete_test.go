package taskops

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktools/tickdone/internal/ticktick"
)

func TestNextDeleteState(t *testing.T) {
	tests := []struct {
		name  string
		state deleteState
		event deleteEvent
		want  deleteState
	}{
		{"prefetch missing short-circuits to success", deleteStart, eventPrefetchMissing, deleteSucceeded},
		{"prefetch present proceeds", deleteStart, eventPrefetchPresent, deletePrefetchChecked},
		{"prefetch skipped proceeds", deleteStart, eventPrefetchSkipped, deletePrefetchChecked},
		{"direct delete issued", deletePrefetchChecked, eventDirectDeleteIssued, deleteDirectAttempted},
		{"direct delete ok", deleteDirectAttempted, eventDirectDeleteOK, deleteSucceeded},
		{"direct delete failed enters fallback", deleteDirectAttempted, eventDirectDeleteFailed, deleteResyncAttempted},
		{"resync done leads to refetch", deleteResyncAttempted, eventResyncDone, deleteRefetchChecked},
		{"refetch missing is success", deleteRefetchChecked, eventRefetchMissing, deleteSucceeded},
		{"refetch present attempts object delete", deleteRefetchChecked, eventRefetchPresent, deleteObjectAttempted},
		{"object delete ok", deleteObjectAttempted, eventObjectDeleteOK, deleteSucceeded},
		{"object delete failed is terminal", deleteObjectAttempted, eventObjectDeleteFailed, deleteFailed},
		{"unknown pair collapses to failure", deleteStart, eventObjectDeleteOK, deleteFailed},
		{"event after terminal success collapses to failure", deleteSucceeded, eventResyncDone, deleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextDeleteState(tt.state, tt.event)
			assert.Equal(t, tt.want, got, "from %s on event %d", tt.state, tt.event)
		})
	}
}

func TestDeleteStateString(t *testing.T) {
	assert.Equal(t, "start", deleteStart.String())
	assert.Equal(t, "object_delete_attempted", deleteObjectAttempted.String())
	assert.Equal(t, "unknown", deleteState(99).String())
}

func TestDeleteAlreadyAbsent(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "ghost", "")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, client.deleteCalls, "no provider delete call for an absent task")
	assert.Empty(t, client.objectCalls)
}

func TestDeleteDirectSuccess(t *testing.T) {
	client := &fakeClient{
		tasks: []ticktick.Task{{ID: "t1", ProjectID: "p1", Title: "buy milk"}},
	}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"t1"}, client.deleteCalls)
	assert.Empty(t, client.objectCalls)
	assert.Nil(t, client.GetByID("t1"))
}

func TestDeleteWithProjectIDSkipsPrefetch(t *testing.T) {
	// A caller-supplied project id means the task may live in a bucket
	// the snapshot does not cover, so absence from the snapshot must not
	// short-circuit the delete.
	client := &fakeClient{}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t9", "p1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"t9"}, client.deleteCalls)
}

func TestDeleteFallbackObjectDelete(t *testing.T) {
	base := &fakeClient{
		tasks:     []ticktick.Task{{ID: "t1", ProjectID: "p1", Title: "stubborn"}},
		deleteErr: errors.New("500 internal error"),
	}
	client := &fakeSyncClient{fakeClient: base}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, client.syncCalls, "resync runs once before the refetch")
	require.Len(t, base.objectCalls, 1, "object-form delete is attempted exactly once")
	assert.Equal(t, "t1", base.objectCalls[0].ID)
	assert.Equal(t, "p1", base.objectCalls[0].ProjectID)
}

func TestDeleteFallbackTaskGoneAfterResync(t *testing.T) {
	base := &fakeClient{
		tasks:     []ticktick.Task{{ID: "t1", Title: "raced"}},
		deleteErr: errors.New("409 conflict"),
	}
	client := &fakeSyncClient{
		fakeClient: base,
		onSync:     func(f *fakeClient) { f.tasks = nil },
	}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, base.objectCalls, "no object delete once the refetch comes back empty")
}

func TestDeleteFallbackResyncFailureIsNotFatal(t *testing.T) {
	base := &fakeClient{
		tasks:     []ticktick.Task{{ID: "t1", Title: "stale"}},
		deleteErr: errors.New("500 internal error"),
	}
	client := &fakeSyncClient{fakeClient: base, syncErr: errors.New("sync down")}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, base.objectCalls, 1)
}

func TestDeleteFallbackObjectDeleteFails(t *testing.T) {
	objectErr := errors.New("object delete rejected")
	base := &fakeClient{
		tasks:     []ticktick.Task{{ID: "t1", Title: "immortal"}},
		deleteErr: errors.New("500 internal error"),
		objectErr: objectErr,
	}
	client := &fakeSyncClient{fakeClient: base}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.ErrorIs(t, err, objectErr)
	assert.False(t, ok)
	require.Len(t, base.objectCalls, 1, "no retry after the object-form attempt")
}

func TestDeleteWithoutSyncerStillFallsBack(t *testing.T) {
	// A client without a resync surface skips straight to the refetch.
	client := &fakeClient{
		tasks:     []ticktick.Task{{ID: "t1", Title: "plain"}},
		deleteErr: errors.New("500 internal error"),
	}
	svc := NewService(client)

	ok, err := svc.Delete(context.Background(), "t1", "")

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, client.objectCalls, 1)
}
