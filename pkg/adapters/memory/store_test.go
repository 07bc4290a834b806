package memory_test

import (
	"testing"

	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, memory.NewStore())
}
