package mongostore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mobilebazar/internal/store"
	"mobilebazar/internal/store/mongostore"
	"mobilebazar/internal/store/storetest"
)

// Runs against a live server only, e.g. MONGODB_TEST_URI=mongodb://localhost:27017.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := mongostore.Open(ctx, mongostore.Config{
			URI:            uri,
			Database:       fmt.Sprintf("mobile_bazar_test_%s", uuid.New().String()[:8]),
			ConnectTimeout: 5 * time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = s.DropDatabase(context.Background())
			_ = s.Close(context.Background())
		})
		return s
	})
}

func TestOpen_EmptyURI(t *testing.T) {
	_, err := mongostore.Open(context.Background(), mongostore.Config{Database: "x"})
	require.Error(t, err)
}
