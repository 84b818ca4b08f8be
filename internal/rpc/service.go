package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "logotherapy.v1.BookingService"

const (
	MethodRegister   = "/" + ServiceName + "/Register"
	MethodLogin      = "/" + ServiceName + "/Login"
	MethodLogout     = "/" + ServiceName + "/Logout"
	MethodMe         = "/" + ServiceName + "/Me"
	MethodListSlots  = "/" + ServiceName + "/ListSlots"
	MethodBook       = "/" + ServiceName + "/Book"
	MethodUpcoming   = "/" + ServiceName + "/Upcoming"
	MethodHistory    = "/" + ServiceName + "/History"
	MethodDailyQuote = "/" + ServiceName + "/DailyQuote"
	MethodArticles   = "/" + ServiceName + "/Articles"
)

type BookingServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Me(context.Context, *Empty) (*User, error)
	ListSlots(context.Context, *ListSlotsRequest) (*ListSlotsResponse, error)
	Book(context.Context, *BookRequest) (*BookResponse, error)
	Upcoming(context.Context, *Empty) (*AppointmentList, error)
	History(context.Context, *HistoryRequest) (*AppointmentList, error)
	DailyQuote(context.Context, *Empty) (*Quote, error)
	Articles(context.Context, *ArticlesRequest) (*ArticlesResponse, error)
}

// UnimplementedBookingServiceServer can be embedded to stay forward
// compatible.
type UnimplementedBookingServiceServer struct{}

func unimplemented(m string) error { return status.Errorf(codes.Unimplemented, "method %s not implemented", m) }

func (UnimplementedBookingServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedBookingServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedBookingServiceServer) Logout(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedBookingServiceServer) Me(context.Context, *Empty) (*User, error) {
	return nil, unimplemented("Me")
}
func (UnimplementedBookingServiceServer) ListSlots(context.Context, *ListSlotsRequest) (*ListSlotsResponse, error) {
	return nil, unimplemented("ListSlots")
}
func (UnimplementedBookingServiceServer) Book(context.Context, *BookRequest) (*BookResponse, error) {
	return nil, unimplemented("Book")
}
func (UnimplementedBookingServiceServer) Upcoming(context.Context, *Empty) (*AppointmentList, error) {
	return nil, unimplemented("Upcoming")
}
func (UnimplementedBookingServiceServer) History(context.Context, *HistoryRequest) (*AppointmentList, error) {
	return nil, unimplemented("History")
}
func (UnimplementedBookingServiceServer) DailyQuote(context.Context, *Empty) (*Quote, error) {
	return nil, unimplemented("DailyQuote")
}
func (UnimplementedBookingServiceServer) Articles(context.Context, *ArticlesRequest) (*ArticlesResponse, error) {
	return nil, unimplemented("Articles")
}

// unary builds the method descriptor for one request/response call.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp any](name, full string, call func(BookingServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BookingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BookingServiceServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var BookingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", MethodRegister, BookingServiceServer.Register),
		unary("Login", MethodLogin, BookingServiceServer.Login),
		unary("Logout", MethodLogout, BookingServiceServer.Logout),
		unary("Me", MethodMe, BookingServiceServer.Me),
		unary("ListSlots", MethodListSlots, BookingServiceServer.ListSlots),
		unary("Book", MethodBook, BookingServiceServer.Book),
		unary("Upcoming", MethodUpcoming, BookingServiceServer.Upcoming),
		unary("History", MethodHistory, BookingServiceServer.History),
		unary("DailyQuote", MethodDailyQuote, BookingServiceServer.DailyQuote),
		unary("Articles", MethodArticles, BookingServiceServer.Articles),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logotherapy/v1/booking.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingServiceDesc, srv)
}

// BookingServiceClient is the client side of the service.
type BookingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingServiceClient(cc grpc.ClientConnInterface) *BookingServiceClient {
	return &BookingServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *BookingServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *BookingServiceClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *BookingServiceClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodMe, in, opts)
}

func (c *BookingServiceClient) ListSlots(ctx context.Context, in *ListSlotsRequest, opts ...grpc.CallOption) (*ListSlotsResponse, error) {
	return invoke[ListSlotsResponse](ctx, c.cc, MethodListSlots, in, opts)
}

func (c *BookingServiceClient) Book(ctx context.Context, in *BookRequest, opts ...grpc.CallOption) (*BookResponse, error) {
	return invoke[BookResponse](ctx, c.cc, MethodBook, in, opts)
}

func (c *BookingServiceClient) Upcoming(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AppointmentList, error) {
	return invoke[AppointmentList](ctx, c.cc, MethodUpcoming, in, opts)
}

func (c *BookingServiceClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*AppointmentList, error) {
	return invoke[AppointmentList](ctx, c.cc, MethodHistory, in, opts)
}

func (c *BookingServiceClient) DailyQuote(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Quote, error) {
	return invoke[Quote](ctx, c.cc, MethodDailyQuote, in, opts)
}

func (c *BookingServiceClient) Articles(ctx context.Context, in *ArticlesRequest, opts ...grpc.CallOption) (*ArticlesResponse, error) {
	return invoke[ArticlesResponse](ctx, c.cc, MethodArticles, in, opts)
}
