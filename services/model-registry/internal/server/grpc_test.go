package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"maas-platform/services/model-registry/internal/repository"
	"maas-platform/services/model-registry/internal/service"
	"maas-platform/shared/proto"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := service.NewModelService(repository.NewMemoryModelRepository(), zap.NewNop())
	return NewServer(svc, zap.NewNop())
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "expected a grpc status error, got %v", err)
	assert.Equal(t, want, st.Code())
}

func TestCreateModel_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	resp, err := srv.CreateModel(ctx, &proto.CreateModelRequest{
		Name:      "resnet50",
		Version:   "v1",
		Framework: "pytorch",
		Tags:      []string{"cv", "prod"},
		Metadata:  map[string]string{"accuracy": "0.91"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Model)

	assert.NotEmpty(t, resp.Model.Id)
	assert.Equal(t, "pending", resp.Model.Status)
	assert.ElementsMatch(t, []string{"cv", "prod"}, resp.Model.Tags)
	assert.Equal(t, map[string]string{"accuracy": "0.91"}, resp.Model.Metadata)
	assert.False(t, resp.Model.CreatedAt.IsZero())
}

func TestCreateModel_StatusCodes(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.CreateModel(ctx, &proto.CreateModelRequest{
		Name: "m", Version: "v1", Framework: "tensorflow2",
	})
	assertCode(t, err, codes.InvalidArgument)

	_, err = srv.CreateModel(ctx, &proto.CreateModelRequest{Name: "m", Version: "v1"})
	require.NoError(t, err)
	_, err = srv.CreateModel(ctx, &proto.CreateModelRequest{Name: "m", Version: "v1"})
	assertCode(t, err, codes.AlreadyExists)
}

func TestGetModel_StatusCodes(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.GetModel(ctx, &proto.GetModelRequest{Id: "not-a-uuid"})
	assertCode(t, err, codes.InvalidArgument)

	_, err = srv.GetModel(ctx, &proto.GetModelRequest{Id: uuid.New().String()})
	assertCode(t, err, codes.NotFound)
}

func TestListModels_Pagination(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := srv.CreateModel(ctx, &proto.CreateModelRequest{Name: name, Version: "v1"})
		require.NoError(t, err)
	}

	resp, err := srv.ListModels(ctx, &proto.ListModelsRequest{Page: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, int32(1), resp.Page)
	assert.Equal(t, int32(20), resp.Limit)
	assert.Len(t, resp.Models, 3)
}

func TestUpdateModelStatus(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	created, err := srv.CreateModel(ctx, &proto.CreateModelRequest{Name: "m", Version: "v1"})
	require.NoError(t, err)

	resp, err := srv.UpdateModelStatus(ctx, &proto.UpdateModelStatusRequest{
		Id: created.Model.Id, Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Model.Status)

	_, err = srv.UpdateModelStatus(ctx, &proto.UpdateModelStatusRequest{
		Id: uuid.New().String(), Status: "active",
	})
	assertCode(t, err, codes.NotFound)
}

func TestDeleteModel(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	created, err := srv.CreateModel(ctx, &proto.CreateModelRequest{Name: "m", Version: "v1"})
	require.NoError(t, err)

	_, err = srv.DeleteModel(ctx, &proto.DeleteModelRequest{Id: created.Model.Id})
	require.NoError(t, err)

	_, err = srv.GetModel(ctx, &proto.GetModelRequest{Id: created.Model.Id})
	assertCode(t, err, codes.NotFound)
}

func TestTagAndMetadataEndpoints(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	created, err := srv.CreateModel(ctx, &proto.CreateModelRequest{Name: "m", Version: "v1"})
	require.NoError(t, err)
	id := created.Model.Id

	_, err = srv.AddModelTags(ctx, &proto.AddModelTagsRequest{ModelId: id, Tags: []string{"x", "y"}})
	require.NoError(t, err)

	_, err = srv.RemoveModelTags(ctx, &proto.RemoveModelTagsRequest{ModelId: id, Tags: []string{"y"}})
	require.NoError(t, err)

	got, err := srv.GetModel(ctx, &proto.GetModelRequest{Id: id})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Model.Tags)

	_, err = srv.SetModelMetadata(ctx, &proto.SetModelMetadataRequest{
		ModelId: id, Metadata: map[string]string{"k": "v"},
	})
	require.NoError(t, err)

	md, err := srv.GetModelMetadata(ctx, &proto.GetModelMetadataRequest{ModelId: id})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "v"}, md.Metadata)

	_, err = srv.AddModelTags(ctx, &proto.AddModelTagsRequest{ModelId: "bogus", Tags: []string{"x"}})
	assertCode(t, err, codes.InvalidArgument)
}
