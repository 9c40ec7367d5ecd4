package proto

import (
	"context"

	"google.golang.org/grpc"
)

const ModelRegistryServiceName = "maas.registry.v1.ModelRegistry"

// ModelRegistryClient is the client API for the ModelRegistry service.
type ModelRegistryClient interface {
	CreateModel(ctx context.Context, in *CreateModelRequest, opts ...grpc.CallOption) (*CreateModelResponse, error)
	GetModel(ctx context.Context, in *GetModelRequest, opts ...grpc.CallOption) (*GetModelResponse, error)
	ListModels(ctx context.Context, in *ListModelsRequest, opts ...grpc.CallOption) (*ListModelsResponse, error)
	UpdateModel(ctx context.Context, in *UpdateModelRequest, opts ...grpc.CallOption) (*UpdateModelResponse, error)
	DeleteModel(ctx context.Context, in *DeleteModelRequest, opts ...grpc.CallOption) (*Empty, error)
	UpdateModelStatus(ctx context.Context, in *UpdateModelStatusRequest, opts ...grpc.CallOption) (*UpdateModelStatusResponse, error)
	AddModelTags(ctx context.Context, in *AddModelTagsRequest, opts ...grpc.CallOption) (*Empty, error)
	RemoveModelTags(ctx context.Context, in *RemoveModelTagsRequest, opts ...grpc.CallOption) (*Empty, error)
	SetModelMetadata(ctx context.Context, in *SetModelMetadataRequest, opts ...grpc.CallOption) (*Empty, error)
	GetModelMetadata(ctx context.Context, in *GetModelMetadataRequest, opts ...grpc.CallOption) (*GetModelMetadataResponse, error)
}

type modelRegistryClient struct {
	cc grpc.ClientConnInterface
}

func NewModelRegistryClient(cc grpc.ClientConnInterface) ModelRegistryClient {
	return &modelRegistryClient{cc: cc}
}

func (c *modelRegistryClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ModelRegistryServiceName+"/"+method, in, out, opts...)
}

func (c *modelRegistryClient) CreateModel(ctx context.Context, in *CreateModelRequest, opts ...grpc.CallOption) (*CreateModelResponse, error) {
	out := new(CreateModelResponse)
	if err := c.invoke(ctx, "CreateModel", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) GetModel(ctx context.Context, in *GetModelRequest, opts ...grpc.CallOption) (*GetModelResponse, error) {
	out := new(GetModelResponse)
	if err := c.invoke(ctx, "GetModel", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) ListModels(ctx context.Context, in *ListModelsRequest, opts ...grpc.CallOption) (*ListModelsResponse, error) {
	out := new(ListModelsResponse)
	if err := c.invoke(ctx, "ListModels", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) UpdateModel(ctx context.Context, in *UpdateModelRequest, opts ...grpc.CallOption) (*UpdateModelResponse, error) {
	out := new(UpdateModelResponse)
	if err := c.invoke(ctx, "UpdateModel", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) DeleteModel(ctx context.Context, in *DeleteModelRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "DeleteModel", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) UpdateModelStatus(ctx context.Context, in *UpdateModelStatusRequest, opts ...grpc.CallOption) (*UpdateModelStatusResponse, error) {
	out := new(UpdateModelStatusResponse)
	if err := c.invoke(ctx, "UpdateModelStatus", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) AddModelTags(ctx context.Context, in *AddModelTagsRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "AddModelTags", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) RemoveModelTags(ctx context.Context, in *RemoveModelTagsRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "RemoveModelTags", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) SetModelMetadata(ctx context.Context, in *SetModelMetadataRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "SetModelMetadata", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelRegistryClient) GetModelMetadata(ctx context.Context, in *GetModelMetadataRequest, opts ...grpc.CallOption) (*GetModelMetadataResponse, error) {
	out := new(GetModelMetadataResponse)
	if err := c.invoke(ctx, "GetModelMetadata", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ModelRegistryServer is the server API for the ModelRegistry service.
// Implementations should embed UnimplementedModelRegistryServer for forward
// compatibility.
type ModelRegistryServer interface {
	CreateModel(context.Context, *CreateModelRequest) (*CreateModelResponse, error)
	GetModel(context.Context, *GetModelRequest) (*GetModelResponse, error)
	ListModels(context.Context, *ListModelsRequest) (*ListModelsResponse, error)
	UpdateModel(context.Context, *UpdateModelRequest) (*UpdateModelResponse, error)
	DeleteModel(context.Context, *DeleteModelRequest) (*Empty, error)
	UpdateModelStatus(context.Context, *UpdateModelStatusRequest) (*UpdateModelStatusResponse, error)
	AddModelTags(context.Context, *AddModelTagsRequest) (*Empty, error)
	RemoveModelTags(context.Context, *RemoveModelTagsRequest) (*Empty, error)
	SetModelMetadata(context.Context, *SetModelMetadataRequest) (*Empty, error)
	GetModelMetadata(context.Context, *GetModelMetadataRequest) (*GetModelMetadataResponse, error)
}

type UnimplementedModelRegistryServer struct{}

func (UnimplementedModelRegistryServer) CreateModel(context.Context, *CreateModelRequest) (*CreateModelResponse, error) {
	return nil, errUnimplemented("CreateModel")
}

func (UnimplementedModelRegistryServer) GetModel(context.Context, *GetModelRequest) (*GetModelResponse, error) {
	return nil, errUnimplemented("GetModel")
}

func (UnimplementedModelRegistryServer) ListModels(context.Context, *ListModelsRequest) (*ListModelsResponse, error) {
	return nil, errUnimplemented("ListModels")
}

func (UnimplementedModelRegistryServer) UpdateModel(context.Context, *UpdateModelRequest) (*UpdateModelResponse, error) {
	return nil, errUnimplemented("UpdateModel")
}

func (UnimplementedModelRegistryServer) DeleteModel(context.Context, *DeleteModelRequest) (*Empty, error) {
	return nil, errUnimplemented("DeleteModel")
}

func (UnimplementedModelRegistryServer) UpdateModelStatus(context.Context, *UpdateModelStatusRequest) (*UpdateModelStatusResponse, error) {
	return nil, errUnimplemented("UpdateModelStatus")
}

func (UnimplementedModelRegistryServer) AddModelTags(context.Context, *AddModelTagsRequest) (*Empty, error) {
	return nil, errUnimplemented("AddModelTags")
}

func (UnimplementedModelRegistryServer) RemoveModelTags(context.Context, *RemoveModelTagsRequest) (*Empty, error) {
	return nil, errUnimplemented("RemoveModelTags")
}

func (UnimplementedModelRegistryServer) SetModelMetadata(context.Context, *SetModelMetadataRequest) (*Empty, error) {
	return nil, errUnimplemented("SetModelMetadata")
}

func (UnimplementedModelRegistryServer) GetModelMetadata(context.Context, *GetModelMetadataRequest) (*GetModelMetadataResponse, error) {
	return nil, errUnimplemented("GetModelMetadata")
}

// RegisterModelRegistryServer registers the service implementation with the
// gRPC server.
func RegisterModelRegistryServer(s grpc.ServiceRegistrar, srv ModelRegistryServer) {
	s.RegisterService(&ModelRegistryServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(ModelRegistryServer, context.Context, *Req) (*Resp, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ModelRegistryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ModelRegistryServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ModelRegistryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ModelRegistryServiceDesc is the grpc.ServiceDesc for the ModelRegistry
// service. It is exported for use with grpc.Server.RegisterService.
var ModelRegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: ModelRegistryServiceName,
	HandlerType: (*ModelRegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateModel", Handler: unaryHandler("CreateModel", ModelRegistryServer.CreateModel)},
		{MethodName: "GetModel", Handler: unaryHandler("GetModel", ModelRegistryServer.GetModel)},
		{MethodName: "ListModels", Handler: unaryHandler("ListModels", ModelRegistryServer.ListModels)},
		{MethodName: "UpdateModel", Handler: unaryHandler("UpdateModel", ModelRegistryServer.UpdateModel)},
		{MethodName: "DeleteModel", Handler: unaryHandler("DeleteModel", ModelRegistryServer.DeleteModel)},
		{MethodName: "UpdateModelStatus", Handler: unaryHandler("UpdateModelStatus", ModelRegistryServer.UpdateModelStatus)},
		{MethodName: "AddModelTags", Handler: unaryHandler("AddModelTags", ModelRegistryServer.AddModelTags)},
		{MethodName: "RemoveModelTags", Handler: unaryHandler("RemoveModelTags", ModelRegistryServer.RemoveModelTags)},
		{MethodName: "SetModelMetadata", Handler: unaryHandler("SetModelMetadata", ModelRegistryServer.SetModelMetadata)},
		{MethodName: "GetModelMetadata", Handler: unaryHandler("GetModelMetadata", ModelRegistryServer.GetModelMetadata)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shared/proto/model_registry.proto",
}
