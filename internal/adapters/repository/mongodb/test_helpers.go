package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTestCollection starts mongo in a container. It returns a collection, a cleanup
// that terminates the container and a truncate for isolating subtests.
func NewTestCollection(t *testing.T) (*mongo.Collection, func(), func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Could not start mongo container: %v", err)
	}

	host, _ := mongoContainer.Host(ctx)
	p, _ := mongoContainer.MappedPort(ctx, "27017")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, p.Port())))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	coll := client.Database("imgstudio_test").Collection("metadata")

	cleanup := func() {
		_ = client.Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate mongo container: %v", err)
		}
	}

	truncate := func() {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to truncate collection: %v", err)
		}
	}
	return coll, cleanup, truncate
}
