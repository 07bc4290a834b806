package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	eng, err := deduce.New("")
	require.NoError(t, err)
	store := memory.NewStore()
	return NewServer(eng, store), store
}

func TestHandleInfer(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleInfer(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"input": "cold; sore throat",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"runny nose", "sneezing", "sore throat"}, res.Report.UserFacts)
	assert.Contains(t, res.Report.Result.Facts, "common cold")
	require.Len(t, res.Mappings, 1)
	assert.Equal(t, "cold", res.Mappings[0].Input)

	loaded, err := store.Load(ctx, res.Report.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Report.ID, loaded.ID)
}

func TestHandleInfer_Goals(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleInfer(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"input": "fever, cough, sore throat",
		"goals": "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StopGoalsReached, res.Report.Result.StopReason)
}

func TestHandleInfer_EmptyInput(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handleInfer(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"input": " ; , ",
	})
	assert.Error(t, err)
}

func TestHandleListRules(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleListRules(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "symptoms", res.Catalog)
	assert.Len(t, res.Rules, 40)
	assert.Equal(t, "R1", res.Rules[0].ID)
}

func TestHandleNormalize(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleNormalize(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"input": "SOB, wheezing",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"shortness of breath", "wheezing"}, res.Facts)
	require.Len(t, res.Mappings, 1)

	empty, err := s.handleNormalize(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.Facts)
}
