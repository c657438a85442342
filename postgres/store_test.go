package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/crewcanvas/internal/persistence"
	"github.com/petrijr/crewcanvas/pkg/api"
)

// newTestStore connects to the database named by DATABASE_URL and gives
// the test a clean canvases table. Skipped when no database is available.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := New(pool)
	require.NoError(t, store.DropSchema(ctx))
	require.NoError(t, store.CreateSchema(ctx))
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	nodes := []api.Node{
		{
			ID:       "n-trigger",
			Kind:     api.KindTrigger,
			Position: api.Position{X: 50, Y: 200},
			Data:     api.TriggerData{TriggerType: api.TriggerSchedule, Schedule: "0 9 * * 1"},
		},
		{
			ID:       "n-agent",
			Kind:     api.KindAgent,
			Position: api.Position{X: 600, Y: 300},
			Data:     api.AgentData{Name: "Scout", Role: "Research Lead", Status: "ready"},
		},
	}
	edges := []api.Edge{
		{ID: "e-1", Source: "n-trigger", Target: "n-agent", Animated: true},
	}

	require.NoError(t, store.SaveGraph(ctx, "main", nodes, edges))

	gotNodes, gotEdges, err := store.LoadGraph(ctx, "main")
	require.NoError(t, err)
	require.Len(t, gotNodes, 2)
	require.Equal(t, edges, gotEdges)

	trigger, ok := gotNodes[0].Data.(api.TriggerData)
	require.True(t, ok, "trigger payload type lost in round trip: %T", gotNodes[0].Data)
	require.Equal(t, "0 9 * * 1", trigger.Schedule)
}

func TestStoreUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	nodes := []api.Node{{ID: "a", Kind: api.KindAction, Data: api.ActionData{Name: "Notify"}}}
	require.NoError(t, store.SaveGraph(ctx, "main", nodes, nil))
	require.NoError(t, store.SaveGraph(ctx, "main", nil, nil))

	gotNodes, gotEdges, err := store.LoadGraph(ctx, "main")
	require.NoError(t, err)
	require.Empty(t, gotNodes)
	require.Empty(t, gotEdges)
}

func TestStoreListAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGraph(ctx, "beta", nil, nil))
	require.NoError(t, store.SaveGraph(ctx, "alpha", nil, nil))

	ids, err := store.ListGraphs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, ids)

	require.NoError(t, store.DeleteGraph(ctx, "alpha"))
	require.ErrorIs(t, store.DeleteGraph(ctx, "alpha"), persistence.ErrGraphNotFound)

	_, _, err = store.LoadGraph(ctx, "alpha")
	require.ErrorIs(t, err, persistence.ErrGraphNotFound)
}
