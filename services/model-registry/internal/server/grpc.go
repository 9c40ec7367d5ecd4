package server

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"maas-platform/services/model-registry/internal/models"
	"maas-platform/services/model-registry/internal/service"
	"maas-platform/shared/proto"
)

// Server adapts the ModelService to the ModelRegistry gRPC contract.
type Server struct {
	proto.UnimplementedModelRegistryServer
	service *service.ModelService
	logger  *zap.Logger
}

func NewServer(svc *service.ModelService, logger *zap.Logger) *Server {
	return &Server{service: svc, logger: logger}
}

func (s *Server) CreateModel(ctx context.Context, req *proto.CreateModelRequest) (*proto.CreateModelResponse, error) {
	m, err := s.service.CreateModel(ctx, service.CreateModelRequest{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Framework:   req.Framework,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
		OwnerID:     req.OwnerId,
		TenantID:    req.TenantId,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return nil, s.rpcError("CreateModel", err)
	}
	return &proto.CreateModelResponse{Model: toProto(m)}, nil
}

func (s *Server) GetModel(ctx context.Context, req *proto.GetModelRequest) (*proto.GetModelResponse, error) {
	m, err := s.service.GetModel(ctx, req.Id)
	if err != nil {
		return nil, s.rpcError("GetModel", err)
	}
	return &proto.GetModelResponse{Model: toProto(m)}, nil
}

func (s *Server) ListModels(ctx context.Context, req *proto.ListModelsRequest) (*proto.ListModelsResponse, error) {
	result, err := s.service.ListModels(ctx, service.ListModelsRequest{
		Name:      req.Name,
		Framework: req.Framework,
		Status:    req.Status,
		OwnerID:   req.OwnerId,
		TenantID:  req.TenantId,
		Tags:      req.Tags,
		IsPublic:  req.IsPublic,
		Page:      int(req.Page),
		Limit:     int(req.Limit),
	})
	if err != nil {
		return nil, s.rpcError("ListModels", err)
	}

	list := make([]*proto.Model, 0, len(result.Models))
	for _, m := range result.Models {
		list = append(list, toProto(m))
	}
	return &proto.ListModelsResponse{
		Models: list,
		Total:  result.Total,
		Page:   int32(result.Page),
		Limit:  int32(result.Limit),
	}, nil
}

func (s *Server) UpdateModel(ctx context.Context, req *proto.UpdateModelRequest) (*proto.UpdateModelResponse, error) {
	m, err := s.service.UpdateModel(ctx, req.Id, service.UpdateModelRequest{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, s.rpcError("UpdateModel", err)
	}
	return &proto.UpdateModelResponse{Model: toProto(m)}, nil
}

func (s *Server) DeleteModel(ctx context.Context, req *proto.DeleteModelRequest) (*proto.Empty, error) {
	if err := s.service.DeleteModel(ctx, req.Id); err != nil {
		return nil, s.rpcError("DeleteModel", err)
	}
	return &proto.Empty{}, nil
}

func (s *Server) UpdateModelStatus(ctx context.Context, req *proto.UpdateModelStatusRequest) (*proto.UpdateModelStatusResponse, error) {
	m, err := s.service.UpdateModelStatus(ctx, req.Id, req.Status)
	if err != nil {
		return nil, s.rpcError("UpdateModelStatus", err)
	}
	return &proto.UpdateModelStatusResponse{Model: toProto(m)}, nil
}

func (s *Server) AddModelTags(ctx context.Context, req *proto.AddModelTagsRequest) (*proto.Empty, error) {
	if err := s.service.AddModelTags(ctx, req.ModelId, req.Tags); err != nil {
		return nil, s.rpcError("AddModelTags", err)
	}
	return &proto.Empty{}, nil
}

func (s *Server) RemoveModelTags(ctx context.Context, req *proto.RemoveModelTagsRequest) (*proto.Empty, error) {
	if err := s.service.RemoveModelTags(ctx, req.ModelId, req.Tags); err != nil {
		return nil, s.rpcError("RemoveModelTags", err)
	}
	return &proto.Empty{}, nil
}

func (s *Server) SetModelMetadata(ctx context.Context, req *proto.SetModelMetadataRequest) (*proto.Empty, error) {
	if err := s.service.SetModelMetadata(ctx, req.ModelId, req.Metadata); err != nil {
		return nil, s.rpcError("SetModelMetadata", err)
	}
	return &proto.Empty{}, nil
}

func (s *Server) GetModelMetadata(ctx context.Context, req *proto.GetModelMetadataRequest) (*proto.GetModelMetadataResponse, error) {
	md, err := s.service.GetModelMetadata(ctx, req.ModelId)
	if err != nil {
		return nil, s.rpcError("GetModelMetadata", err)
	}
	return &proto.GetModelMetadataResponse{Metadata: md}, nil
}

// rpcError maps service errors to gRPC status codes. Unexpected errors are
// logged with full detail and surfaced as an opaque internal status.
func (s *Server) rpcError(method string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("unexpected registry error", zap.String("method", method), zap.Error(err))
		return status.Error(codes.Internal, "internal server error")
	}
}

func toProto(m *models.Model) *proto.Model {
	return &proto.Model{
		Id:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Version:     m.Version,
		Framework:   m.Framework,
		Status:      m.Status,
		StoragePath: m.StoragePath,
		SizeBytes:   m.SizeBytes,
		Checksum:    m.Checksum,
		DockerImage: m.DockerImage,
		IsPublic:    m.IsPublic,
		OwnerId:     m.OwnerID.String(),
		TenantId:    m.TenantID.String(),
		Tags:        m.TagNames(),
		Metadata:    m.MetadataMap(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
