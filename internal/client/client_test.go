package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/client/clienttest"
	"github.com/yungbote/cablehouse-backend/internal/data/repos/testutil"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type capture struct {
	mu      sync.Mutex
	changes []realtime.Change
}

func (c *capture) Publish(ch realtime.Change) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.changes = append(c.changes, ch)
}

func (c *capture) ops() []realtime.Operation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Operation, 0, len(c.changes))
	for _, ch := range c.changes {
		out = append(out, ch.Operation)
	}
	return out
}

func coaxDraft() *client.BlueprintDraft {
	d := client.NewBlueprintDraft("  RG-6 Coax ", "75 ohm")
	d.AddDimension("Length", "50m")
	d.AddDimension("", "ignored")
	_ = d.AddImage("data:image/png;base64,AAAA")
	return d
}

func TestLoginAndLogout(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := srv.Client(t)
	ctx := context.Background()

	sess, err := c.Login(ctx, "admin1", clienttest.Password)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
	assert.Equal(t, "admin1", sess.Username)
	assert.True(t, sess.Active())

	sess.Logout()
	assert.False(t, sess.Active())
	assert.Equal(t, domain.Role(""), sess.CurrentRole())

	_, err = c.Login(ctx, "admin1", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = c.Login(ctx, "", "")
	assert.ErrorIs(t, err, client.ErrValidation)
}

func TestOrderLifecycleThroughClient(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := srv.Client(t)
	ctx := context.Background()
	admin := srv.Login(t, c, domain.RoleAdmin)
	pub := &capture{}

	blueprints := client.NewBlueprintService(c, admin, pub)
	res := blueprints.SaveBlueprint(ctx, coaxDraft())
	require.True(t, res.Success, "save: %v", res.Err)
	bp := *res.Blueprint
	assert.Equal(t, "RG-6 Coax", bp.Name)
	assert.Len(t, bp.Dimensions, 1)

	orders := client.NewOrderService(c, admin, pub)
	placed := orders.PlaceOrder(ctx, bp)
	require.True(t, placed.Success, "place: %v", placed.Err)
	o := *placed.Order
	assert.NotEqual(t, bp.ID, o.ID)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.True(t, domain.ValidReference(o.Reference))
	assert.Nil(t, o.StartTime)
	assert.Nil(t, o.EndTime)

	skip := orders.UpdateOrder(ctx, o, domain.StatusFinished)
	assert.False(t, skip.Success)
	assert.ErrorIs(t, skip.Err, client.ErrInvalidTransition)

	started := orders.UpdateOrder(ctx, o, domain.StatusInProgress)
	require.True(t, started.Success, "start: %v", started.Err)
	assert.NotNil(t, started.Order.StartTime)

	stale := orders.UpdateOrder(ctx, o, domain.StatusInProgress)
	assert.ErrorIs(t, stale.Err, client.ErrConflict)

	finished := orders.UpdateStatus(ctx, o.ID, domain.StatusFinished)
	require.True(t, finished.Success, "finish: %v", finished.Err)
	again := orders.UpdateStatus(ctx, o.ID, domain.StatusFinished)
	assert.ErrorIs(t, again.Err, client.ErrInvalidTransition)

	list := orders.ListOrders(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusFinished, list[0].Status)
	assert.Empty(t, orders.ListOpenOrders(ctx))

	assert.True(t, orders.DeleteOrder(ctx, o.ID).Success)
	gone := orders.DeleteOrder(ctx, o.ID)
	assert.ErrorIs(t, gone.Err, client.ErrNotFound)

	assert.True(t, blueprints.DeleteBlueprint(ctx, bp.ID).Success)
	assert.Empty(t, blueprints.ListBlueprints(ctx))

	assert.Equal(t, []realtime.Operation{
		realtime.OperationCreate, // blueprint
		realtime.OperationCreate, // order
		realtime.OperationUpdate,
		realtime.OperationUpdate,
		realtime.OperationDelete,
		realtime.OperationDelete,
	}, pub.ops())
}

func TestRoleEnforcement(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := srv.Client(t)
	ctx := context.Background()

	anon := client.NewOrderService(c, nil, nil)
	assert.Empty(t, anon.ListOrders(ctx))

	worker := srv.Login(t, c, domain.RoleWorker)
	res := client.NewBlueprintService(c, worker, nil).SaveBlueprint(ctx, coaxDraft())
	assert.ErrorIs(t, res.Err, client.ErrForbidden)

	worker.Logout()
	res = client.NewBlueprintService(c, worker, nil).SaveBlueprint(ctx, coaxDraft())
	assert.ErrorIs(t, res.Err, client.ErrUnauthorized)
}

func TestUnreachableServiceFailsOpen(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	c := client.New(testutil.Logger(t), client.Config{BaseURL: url, MaxRetries: -1})
	pub := &capture{}
	orders := client.NewOrderService(c, nil, pub)
	ctx := context.Background()

	list := orders.ListOrders(ctx)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	res := orders.PlaceOrder(ctx, domain.Blueprint{Name: "x"})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, client.ErrTransport)
	assert.Empty(t, pub.ops())
}

func TestReadsRetryTransientFailures(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"blueprints":[{"name":"Cat6"}]}`))
	}))
	defer ts.Close()

	c := client.New(testutil.Logger(t), client.Config{BaseURL: ts.URL})
	list := client.NewBlueprintService(c, nil, nil).ListBlueprints(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "Cat6", list[0].Name)
	assert.Equal(t, int32(2), hits.Load())
}

func TestTimeoutBoundsWholeCall(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	const timeout = 300 * time.Millisecond
	c := client.New(testutil.Logger(t), client.Config{BaseURL: ts.URL, Timeout: timeout})
	orders := client.NewOrderService(c, nil, nil)

	start := time.Now()
	list := orders.ListOrders(context.Background())
	took := time.Since(start)
	assert.Empty(t, list)
	assert.Less(t, took, 2*timeout, "read took %s", took)
	assert.Equal(t, int32(1), hits.Load())

	start = time.Now()
	res := orders.UpdateStatus(context.Background(), uuid.New(), domain.StatusInProgress)
	took = time.Since(start)
	assert.ErrorIs(t, res.Err, client.ErrTransport)
	assert.Less(t, took, 2*timeout, "write took %s", took)
}

func TestWritesAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	var origin atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		origin.Store(r.Header.Get(client.HeaderClientOrigin))
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := client.New(testutil.Logger(t), client.Config{BaseURL: ts.URL, Origin: "tab-7"})
	res := client.NewOrderService(c, nil, nil).DeleteOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, res.Err, client.ErrTransport)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "tab-7", origin.Load())
}

func TestInvalidDraftNeverLeavesClient(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	c := client.New(testutil.Logger(t), client.Config{BaseURL: ts.URL})
	res := client.NewBlueprintService(c, nil, nil).SaveBlueprint(context.Background(), client.NewBlueprintDraft("  ", ""))
	assert.ErrorIs(t, res.Err, client.ErrValidation)
	assert.Zero(t, hits.Load())
}

func TestAPIErrorClassification(t *testing.T) {
	cases := []struct {
		err  *client.APIError
		want error
	}{
		{&client.APIError{Status: 400, Code: "validation_error"}, client.ErrValidation},
		{&client.APIError{Status: 401, Code: "unauthorized"}, client.ErrUnauthorized},
		{&client.APIError{Status: 403, Code: "forbidden"}, client.ErrForbidden},
		{&client.APIError{Status: 404, Code: "not_found"}, client.ErrNotFound},
		{&client.APIError{Status: 409, Code: "invalid_transition"}, client.ErrInvalidTransition},
		{&client.APIError{Status: 409, Code: "conflict"}, client.ErrConflict},
		{&client.APIError{Status: 503, Code: "storage_disabled"}, client.ErrTransport},
	}
	for _, tc := range cases {
		assert.True(t, errors.Is(tc.err, tc.want), "%+v should be %v", tc.err, tc.want)
	}
	assert.False(t, errors.Is(&client.APIError{Status: 409, Code: "conflict"}, client.ErrInvalidTransition))
}
