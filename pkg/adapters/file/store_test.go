package file_test

import (
	"context"
	"testing"

	"github.com/aretw0/deduce/pkg/adapters/file"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	err := store.Save(ctx, &domain.Report{ID: "../escape"})
	assert.Error(t, err)

	_, err = store.Load(ctx, "")
	assert.Error(t, err)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.NewStore(t.TempDir() + "/does-not-exist")
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
