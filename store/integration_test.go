package store_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"boardsync/domain"
	"boardsync/gateway"
	"boardsync/mockapi"
	"boardsync/store"
)

// Runs the store against the real client and the in-process API, end to end.
func newIntegrationStore(t *testing.T) *store.Store {
	t.Helper()
	e := echo.New()
	mockapi.Register(e, mockapi.Seed(), mockapi.AllowAll{}, log.New())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	gw := gateway.New(srv.URL+"/api/v1", "", nil)
	return store.New(gw, nil)
}

func TestEndToEndBoardFlow(t *testing.T) {
	ctx := context.Background()
	st := newIntegrationStore(t)

	if err := st.LoadBoards(ctx); err != nil {
		t.Fatalf("load boards: %v", err)
	}
	if err := st.LoadBoardTasks(ctx, 1); err != nil {
		t.Fatalf("load board tasks: %v", err)
	}

	snap := st.Snapshot()
	if len(snap.Boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(snap.Boards))
	}
	if !snap.HasBoard || snap.CurrentBoardID != 1 {
		t.Fatalf("projection not targeting board 1: %#v", snap)
	}
	if snap.BoardTasks.Len() != 3 {
		t.Fatalf("expected 3 tasks on board 1, got %d", snap.BoardTasks.Len())
	}

	if err := st.CreateTask(ctx, domain.Task{
		Title:      "Integration task",
		Priority:   domain.PriorityMedium,
		AssigneeID: 1,
		BoardID:    1,
		BoardName:  "Core",
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	snap = st.Snapshot()
	if snap.BoardTasks.Len() != 4 {
		t.Fatalf("created task missing from projection, len=%d", snap.BoardTasks.Len())
	}
	created := snap.BoardTasks.Backlog[len(snap.BoardTasks.Backlog)-1]
	if created.ID == 0 || created.Title != "Integration task" {
		t.Fatalf("unexpected created task: %#v", created)
	}

	if err := st.UpdateTaskStatus(ctx, created.ID, domain.StatusDone); err != nil {
		t.Fatalf("update status: %v", err)
	}
	snap = st.Snapshot()
	if got, ok := snap.BoardTasks.Find(created.ID); !ok || got != domain.StatusDone {
		t.Fatalf("task did not move to Done: status=%q ok=%v", got, ok)
	}
}

func TestEndToEndRejectionRecordsServerMessage(t *testing.T) {
	ctx := context.Background()
	st := newIntegrationStore(t)

	if err := st.UpdateTaskStatus(ctx, 999, domain.StatusDone); err == nil {
		t.Fatal("expected rejection for unknown task")
	}
	snap := st.Snapshot()
	if snap.Err == "" || snap.IsLoading {
		t.Fatalf("rejection not recorded: %#v", snap)
	}
	if snap.Notification.Severity != store.SeverityError || !snap.Notification.Open {
		t.Fatalf("expected error notification, got %#v", snap.Notification)
	}
}
